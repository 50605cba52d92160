// Package catalog exposes read-only lookups over the seeded onboarding data:
// departments, their ordered task lists, and employee records. All name
// lookups fold to the canonical lowercase form at this boundary; storage
// only ever sees canonical keys.
package catalog

import (
	"sort"
	"strings"

	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/models"
)

// Store is the persistence contract the catalog reads from. Lookups take
// canonical names and return nil without error when nothing matches.
type Store interface {
	GetDepartment(name string) (*models.Department, error)
	ListDepartments() ([]models.Department, error)
	TasksByDepartment(name string) ([]models.Task, error)
	GetTask(taskKey string) (*models.Task, error)
	GetEmployee(name string) (*models.Employee, error)
}

// Catalog resolves departments, tasks, and employees from seeded data.
type Catalog struct {
	store Store
}

// New creates a catalog over the given store
func New(store Store) *Catalog {
	return &Catalog{store: store}
}

// Fold normalizes a user-supplied name to its canonical form. Matching is
// exact after folding; there is no fuzzy or partial matching.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetDepartment looks up a department by name, case-insensitively.
func (c *Catalog) GetDepartment(name string) (*models.Department, error) {
	dept, err := c.store.GetDepartment(Fold(name))
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if dept == nil {
		return nil, models.NewDepartmentNotFound(name, c.validDepartments())
	}
	return dept, nil
}

// Tasks returns a department's tasks sorted ascending by order. Order values
// are unique per department at seed time; if a malformed seed ever produces
// duplicates, the smaller task id wins.
func (c *Catalog) Tasks(dept *models.Department) ([]models.Task, error) {
	tasks, err := c.store.TasksByDepartment(dept.Name)
	if err != nil {
		return nil, models.NewStorageError(err)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Order != tasks[j].Order {
			return tasks[i].Order < tasks[j].Order
		}
		return tasks[i].ID < tasks[j].ID
	})

	return tasks, nil
}

// GetTask looks up a task by its stable id across all departments.
func (c *Catalog) GetTask(taskID, department string) (*models.Task, error) {
	task, err := c.store.GetTask(taskID)
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if task == nil {
		return nil, models.NewTaskNotFound(taskID, department)
	}
	return task, nil
}

// GetEmployee looks up an employee record by first name, case-insensitively.
func (c *Catalog) GetEmployee(name string) (*models.Employee, error) {
	emp, err := c.store.GetEmployee(Fold(name))
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if emp == nil {
		return nil, models.NewEmployeeNotFound(name)
	}
	return emp, nil
}

// validDepartments lists the seeded department display names for error
// details. A storage failure here degrades to an empty list rather than
// masking the original not-found.
func (c *Catalog) validDepartments() []string {
	depts, err := c.store.ListDepartments()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(depts))
	for _, d := range depts {
		names = append(names, d.DisplayName)
	}
	return names
}
