package models

import "time"

// Department is a seeded department with an ordered onboarding checklist.
// Name is the canonical lowercase form used for lookups; DisplayName is
// what responses show (e.g. "Engineering").
type Department struct {
	ID          int    `json:"-" db:"id"`
	Name        string `json:"-" db:"name"`
	DisplayName string `json:"department" db:"display_name"`
}

// Task is a single onboarding task. ID is the stable key the agent uses
// (e.g. "eng_001") and is unique across all departments.
type Task struct {
	ID          string `json:"id" db:"task_key"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Order       int    `json:"order" db:"task_order"`
	HelpLink    string `json:"help_link,omitempty" db:"help_link"`
	DueInDays   int    `json:"due_in_days,omitempty" db:"due_in_days"`
	Completed   bool   `json:"completed" db:"completed"`

	// Department is the canonical name of the owning department. It is
	// carried for the completion mismatch check, never serialized.
	Department string `json:"-" db:"department"`
}

// TaskRef is the reduced task view returned as next_task in a ProgressUpdate.
type TaskRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Ref returns the reduced view of a task.
func (t *Task) Ref() *TaskRef {
	return &TaskRef{ID: t.ID, Title: t.Title, Description: t.Description}
}

// Employee is a seeded employee record used for personalized agent greetings.
type Employee struct {
	Name       string `json:"name" db:"name"`
	FullName   string `json:"full_name" db:"full_name"`
	Department string `json:"department" db:"department"`
	Manager    string `json:"manager" db:"manager"`
	Team       string `json:"team" db:"team"`
	StartDate  string `json:"start_date" db:"start_date"`
	Office     string `json:"office" db:"office"`
}

// Completion is one durable completion record. At most one exists per task.
type Completion struct {
	TaskID      string    `json:"task_id" db:"task_id"`
	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
}

// ChecklistView is the per-department task list with completion flags
// stamped, plus the derived progress summary.
type ChecklistView struct {
	Department           string `json:"department"`
	Tasks                []Task `json:"tasks"`
	TotalTasks           int    `json:"total_tasks"`
	CompletionPercentage int    `json:"completion_percentage"`
	NextTask             *Task  `json:"next_task"`
}

// ProgressUpdate is the result of a completion submission, including the
// recomputed aggregates over the task's department.
type ProgressUpdate struct {
	TaskID               string   `json:"task_id"`
	Completed            bool     `json:"completed"`
	Department           string   `json:"department"`
	CompletionPercentage int      `json:"completion_percentage"`
	RemainingTasks       int      `json:"remaining_tasks"`
	AllComplete          bool     `json:"all_complete"`
	NextTask             *TaskRef `json:"next_task,omitempty"`
}

// CompleteTaskInput is the request body for POST /complete-task. Presence
// validation is done by the tracker so missing fields surface as the
// structured MISSING_FIELD error rather than a schema rejection.
type CompleteTaskInput struct {
	TaskID     string `json:"task_id,omitempty" maxLength:"20" doc:"ID of the task to mark complete (e.g. 'eng_001')"`
	Department string `json:"department,omitempty" maxLength:"50" doc:"Department the task belongs to"`
}
