// Package progress tracks per-department completion state over the catalog's
// tasks and computes the derived progress aggregates: completion percentage,
// remaining count, and the next incomplete task in checklist order.
package progress

import (
	"math"
	"strings"

	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/catalog"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/models"
)

// CompletionStore is the durable record store keyed by task id. Upsert must
// be atomic and idempotent: completing an already-complete task is a no-op,
// and concurrent completions of the same task produce a single record.
type CompletionStore interface {
	GetCompletion(taskID string) (bool, error)
	UpsertCompletion(taskID string) error
}

// Tracker computes checklist views and records task completions.
type Tracker struct {
	catalog *catalog.Catalog
	store   CompletionStore
}

// New creates a tracker over the given catalog and completion store
func New(cat *catalog.Catalog, store CompletionStore) *Tracker {
	return &Tracker{catalog: cat, store: store}
}

// Checklist returns a department's ordered task list with completion flags
// stamped, plus the derived progress summary. Task order is preserved
// exactly as the catalog defines it.
func (t *Tracker) Checklist(department string) (*models.ChecklistView, error) {
	dept, err := t.catalog.GetDepartment(department)
	if err != nil {
		return nil, err
	}

	tasks, err := t.stampedTasks(dept)
	if err != nil {
		return nil, err
	}

	// Return empty array instead of nil
	if tasks == nil {
		tasks = []models.Task{}
	}

	completed := completedCount(tasks)

	return &models.ChecklistView{
		Department:           dept.DisplayName,
		Tasks:                tasks,
		TotalTasks:           len(tasks),
		CompletionPercentage: completionPercentage(completed, len(tasks)),
		NextTask:             nextIncomplete(tasks),
	}, nil
}

// CompleteTask marks a task complete and returns the recomputed progress for
// its department. The upsert is idempotent: completing a task twice yields
// the same successful result both times. A task id that exists in a
// different department than the one supplied is reported as not found, so
// task ids never leak across departments.
func (t *Tracker) CompleteTask(taskID, department string) (*models.ProgressUpdate, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, models.NewMissingField("task_id")
	}
	if strings.TrimSpace(department) == "" {
		return nil, models.NewMissingField("department")
	}

	task, err := t.catalog.GetTask(taskID, department)
	if err != nil {
		return nil, err
	}
	if task.Department != catalog.Fold(department) {
		return nil, models.NewTaskNotFound(taskID, department)
	}

	if err := t.store.UpsertCompletion(task.ID); err != nil {
		return nil, models.NewStorageError(err)
	}

	dept, err := t.catalog.GetDepartment(department)
	if err != nil {
		return nil, err
	}
	tasks, err := t.stampedTasks(dept)
	if err != nil {
		return nil, err
	}

	completed := completedCount(tasks)
	pct := completionPercentage(completed, len(tasks))

	update := &models.ProgressUpdate{
		TaskID:               task.ID,
		Completed:            true,
		Department:           dept.DisplayName,
		CompletionPercentage: pct,
		RemainingTasks:       len(tasks) - completed,
		AllComplete:          pct == 100,
	}
	if next := nextIncomplete(tasks); next != nil {
		update.NextTask = next.Ref()
	}

	return update, nil
}

// stampedTasks joins the catalog's ordered task list with the completion
// record set. An absent record means incomplete.
func (t *Tracker) stampedTasks(dept *models.Department) ([]models.Task, error) {
	tasks, err := t.catalog.Tasks(dept)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		done, err := t.store.GetCompletion(tasks[i].ID)
		if err != nil {
			return nil, models.NewStorageError(err)
		}
		tasks[i].Completed = done
	}

	return tasks, nil
}

func completedCount(tasks []models.Task) int {
	n := 0
	for _, task := range tasks {
		if task.Completed {
			n++
		}
	}
	return n
}

// completionPercentage is round(100 * completed / total), 0 for an empty
// checklist.
func completionPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// nextIncomplete returns the lowest-order incomplete task, or nil when the
// checklist is fully complete. Tasks arrive already sorted.
func nextIncomplete(tasks []models.Task) *models.Task {
	for i := range tasks {
		if !tasks[i].Completed {
			return &tasks[i]
		}
	}
	return nil
}
