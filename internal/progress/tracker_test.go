package progress

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/catalog"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory catalog and completion store for tracker tests.
type fakeStore struct {
	depts     map[string]*models.Department
	tasks     map[string][]models.Task
	emps      map[string]*models.Employee
	completed map[string]bool
	err       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		depts:     map[string]*models.Department{},
		tasks:     map[string][]models.Task{},
		emps:      map[string]*models.Employee{},
		completed: map[string]bool{},
	}
}

func (f *fakeStore) addDepartment(name, display string, tasks ...models.Task) {
	f.depts[name] = &models.Department{ID: len(f.depts) + 1, Name: name, DisplayName: display}
	for i := range tasks {
		tasks[i].Department = name
	}
	f.tasks[name] = tasks
}

func (f *fakeStore) GetDepartment(name string) (*models.Department, error) {
	return f.depts[name], f.err
}

func (f *fakeStore) ListDepartments() ([]models.Department, error) {
	var depts []models.Department
	for _, d := range f.depts {
		depts = append(depts, *d)
	}
	return depts, f.err
}

func (f *fakeStore) TasksByDepartment(name string) ([]models.Task, error) {
	tasks := make([]models.Task, len(f.tasks[name]))
	copy(tasks, f.tasks[name])
	return tasks, f.err
}

func (f *fakeStore) GetTask(taskKey string) (*models.Task, error) {
	for _, tasks := range f.tasks {
		for _, task := range tasks {
			if task.ID == taskKey {
				t := task
				return &t, f.err
			}
		}
	}
	return nil, f.err
}

func (f *fakeStore) GetEmployee(name string) (*models.Employee, error) {
	return f.emps[name], f.err
}

func (f *fakeStore) GetCompletion(taskID string) (bool, error) {
	return f.completed[taskID], f.err
}

func (f *fakeStore) UpsertCompletion(taskID string) error {
	if f.err != nil {
		return f.err
	}
	f.completed[taskID] = true
	return nil
}

func engineeringTasks() []models.Task {
	return []models.Task{
		{ID: "eng_001", Title: "Set up development environment", Description: "Install tools", Order: 1},
		{ID: "eng_002", Title: "Complete security training", Description: "LMS module", Order: 2, DueInDays: 7},
		{ID: "eng_003", Title: "Attend team architecture sync", Description: "Weekly sync", Order: 3},
		{ID: "eng_004", Title: "Submit your first pull request", Description: "Good first issue", Order: 4},
	}
}

func newTracker(store *fakeStore) *Tracker {
	return New(catalog.New(store), store)
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.addDepartment("engineering", "Engineering", engineeringTasks()...)
	store.addDepartment("sales", "Sales",
		models.Task{ID: "sal_001", Title: "Complete CRM onboarding", Description: "Salesforce", Order: 1},
		models.Task{ID: "sal_002", Title: "Shadow two discovery calls", Description: "With manager", Order: 2},
	)
	return store
}

func TestChecklistOrdering(t *testing.T) {
	tracker := newTracker(seededStore())

	view, err := tracker.Checklist("Engineering")
	require.NoError(t, err)

	assert.Equal(t, "Engineering", view.Department)
	assert.Equal(t, 4, view.TotalTasks)
	require.Len(t, view.Tasks, 4)
	for i := 1; i < len(view.Tasks); i++ {
		assert.Greater(t, view.Tasks[i].Order, view.Tasks[i-1].Order)
	}
	assert.Equal(t, 0, view.CompletionPercentage)
	require.NotNil(t, view.NextTask)
	assert.Equal(t, "eng_001", view.NextTask.ID)
}

func TestChecklistCaseInsensitiveDepartment(t *testing.T) {
	tracker := newTracker(seededStore())

	upper, err := tracker.Checklist("Engineering")
	require.NoError(t, err)
	lower, err := tracker.Checklist("engineering")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
}

func TestChecklistUnknownDepartment(t *testing.T) {
	tracker := newTracker(seededStore())

	_, err := tracker.Checklist("Zzz")

	var appErr *models.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeDepartmentNotFound, appErr.Code)
}

func TestChecklistEmptyDepartmentIsZeroPercent(t *testing.T) {
	store := seededStore()
	store.addDepartment("facilities", "Facilities")
	tracker := newTracker(store)

	view, err := tracker.Checklist("Facilities")
	require.NoError(t, err)

	assert.Equal(t, 0, view.TotalTasks)
	assert.Equal(t, 0, view.CompletionPercentage)
	assert.Nil(t, view.NextTask)
}

func TestChecklistPercentageAtEveryStep(t *testing.T) {
	store := seededStore()
	tracker := newTracker(store)
	tasks := engineeringTasks()

	for k := 0; k <= len(tasks); k++ {
		view, err := tracker.Checklist("engineering")
		require.NoError(t, err)
		want := (100*k + len(tasks)/2) / len(tasks)
		assert.Equalf(t, want, view.CompletionPercentage, "after %d completions", k)

		if k < len(tasks) {
			_, err = tracker.CompleteTask(tasks[k].ID, "engineering")
			require.NoError(t, err)
		}
	}
}

func TestCompleteTaskProgression(t *testing.T) {
	tracker := newTracker(seededStore())

	update, err := tracker.CompleteTask("eng_001", "Engineering")
	require.NoError(t, err)

	assert.Equal(t, "eng_001", update.TaskID)
	assert.True(t, update.Completed)
	assert.Equal(t, "Engineering", update.Department)
	assert.Equal(t, 25, update.CompletionPercentage)
	assert.Equal(t, 3, update.RemainingTasks)
	assert.False(t, update.AllComplete)
	require.NotNil(t, update.NextTask)
	assert.Equal(t, "eng_002", update.NextTask.ID)
	assert.Equal(t, "Complete security training", update.NextTask.Title)
}

func TestCompleteAllTasks(t *testing.T) {
	tracker := newTracker(seededStore())

	var update *models.ProgressUpdate
	var err error
	for _, task := range engineeringTasks() {
		update, err = tracker.CompleteTask(task.ID, "engineering")
		require.NoError(t, err)
	}

	assert.Equal(t, 100, update.CompletionPercentage)
	assert.Equal(t, 0, update.RemainingTasks)
	assert.True(t, update.AllComplete)
	assert.Nil(t, update.NextTask)
}

func TestCompleteTaskIdempotent(t *testing.T) {
	tracker := newTracker(seededStore())

	first, err := tracker.CompleteTask("eng_001", "engineering")
	require.NoError(t, err)
	second, err := tracker.CompleteTask("eng_001", "engineering")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 25, second.CompletionPercentage)
}

func TestCompleteTaskOutOfOrder(t *testing.T) {
	tracker := newTracker(seededStore())

	// Completing a later task leaves the earliest incomplete task as next
	update, err := tracker.CompleteTask("eng_003", "engineering")
	require.NoError(t, err)
	require.NotNil(t, update.NextTask)
	assert.Equal(t, "eng_001", update.NextTask.ID)

	update, err = tracker.CompleteTask("eng_001", "engineering")
	require.NoError(t, err)
	require.NotNil(t, update.NextTask)
	assert.Equal(t, "eng_002", update.NextTask.ID)
}

func TestCompleteTaskDepartmentMismatch(t *testing.T) {
	tracker := newTracker(seededStore())

	_, err := tracker.CompleteTask("eng_001", "Sales")

	var appErr *models.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeTaskNotFound, appErr.Code)
}

func TestCompleteTaskUnknownTask(t *testing.T) {
	tracker := newTracker(seededStore())

	_, err := tracker.CompleteTask("eng_999", "Engineering")

	var appErr *models.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeTaskNotFound, appErr.Code)
}

func TestCompleteTaskMissingFields(t *testing.T) {
	tracker := newTracker(seededStore())

	cases := []struct {
		name       string
		taskID     string
		department string
		field      string
	}{
		{"missing task id", "", "Engineering", "task_id"},
		{"blank task id", "   ", "Engineering", "task_id"},
		{"missing department", "eng_001", "", "department"},
		{"blank department", "eng_001", "  ", "department"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tracker.CompleteTask(tc.taskID, tc.department)

			var appErr *models.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeMissingField, appErr.Code)
			details, ok := appErr.Details.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tc.field, details["field"])
		})
	}
}

func TestCompleteTaskStorageError(t *testing.T) {
	store := seededStore()
	tracker := newTracker(store)
	store.err = errors.New("disk is on fire")

	_, err := tracker.CompleteTask("eng_001", "engineering")

	var appErr *models.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeStorageError, appErr.Code)
	assert.ErrorContains(t, appErr.Unwrap(), "disk is on fire")
}

func TestDuplicateOrderTieBreak(t *testing.T) {
	store := newFakeStore()
	// Malformed seed: two tasks share order 1. The smaller id wins.
	store.addDepartment("engineering", "Engineering",
		models.Task{ID: "eng_002", Title: "b", Description: "b", Order: 1},
		models.Task{ID: "eng_001", Title: "a", Description: "a", Order: 1},
	)
	tracker := newTracker(store)

	view, err := tracker.Checklist("engineering")
	require.NoError(t, err)
	require.NotNil(t, view.NextTask)
	assert.Equal(t, "eng_001", view.NextTask.ID)
}

func TestCompletionPercentageRounding(t *testing.T) {
	store := newFakeStore()
	var tasks []models.Task
	for i := 1; i <= 3; i++ {
		tasks = append(tasks, models.Task{
			ID:          fmt.Sprintf("hr_%03d", i),
			Title:       fmt.Sprintf("task %d", i),
			Description: "d",
			Order:       i,
		})
	}
	store.addDepartment("hr", "HR", tasks...)
	tracker := newTracker(store)

	update, err := tracker.CompleteTask("hr_001", "hr")
	require.NoError(t, err)
	assert.Equal(t, 33, update.CompletionPercentage)

	update, err = tracker.CompleteTask("hr_002", "hr")
	require.NoError(t, err)
	assert.Equal(t, 67, update.CompletionPercentage)
}
