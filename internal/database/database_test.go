package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "onboarding_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Seed())
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Re-running the seed must not duplicate rows
	require.NoError(t, db.Seed())

	tasks, err := db.CountTasks()
	require.NoError(t, err)
	assert.Equal(t, 16, tasks)

	emps, err := db.CountEmployees()
	require.NoError(t, err)
	assert.Equal(t, 4, emps)

	depts, err := db.ListDepartments()
	require.NoError(t, err)
	assert.Len(t, depts, 4)
}

func TestGetDepartment(t *testing.T) {
	db := newTestDB(t)

	dept, err := db.GetDepartment("engineering")
	require.NoError(t, err)
	require.NotNil(t, dept)
	assert.Equal(t, "Engineering", dept.DisplayName)

	missing, err := db.GetDepartment("zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTasksByDepartmentOrdering(t *testing.T) {
	db := newTestDB(t)

	tasks, err := db.TasksByDepartment("engineering")
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	for i, task := range tasks {
		assert.Equal(t, i+1, task.Order)
		assert.Equal(t, "engineering", task.Department)
	}
	assert.Equal(t, "eng_001", tasks[0].ID)
	assert.Equal(t, "eng_004", tasks[3].ID)
	assert.Equal(t, 7, tasks[1].DueInDays)
}

func TestGetTask(t *testing.T) {
	db := newTestDB(t)

	task, err := db.GetTask("sal_002")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "Shadow two discovery calls", task.Title)
	assert.Equal(t, "sales", task.Department)

	missing, err := db.GetTask("sal_999")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetEmployee(t *testing.T) {
	db := newTestDB(t)

	emp, err := db.GetEmployee("jacob")
	require.NoError(t, err)
	require.NotNil(t, emp)
	assert.Equal(t, "Jacob George", emp.FullName)
	assert.Equal(t, "Engineering", emp.Department)
	assert.Equal(t, "Sarah Chen", emp.Manager)

	missing, err := db.GetEmployee("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpsertCompletionIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	done, err := db.GetCompletion("eng_001")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, db.UpsertCompletion("eng_001"))
	require.NoError(t, db.UpsertCompletion("eng_001"))

	done, err = db.GetCompletion("eng_001")
	require.NoError(t, err)
	assert.True(t, done)

	// One record only, despite the double upsert
	count, err := db.CountCompletions()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
