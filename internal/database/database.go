package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/models"
	_ "modernc.org/sqlite"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the database schema
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS departments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_key TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		task_order INTEGER NOT NULL,
		help_link TEXT NOT NULL DEFAULT '',
		due_in_days INTEGER NOT NULL DEFAULT 0,
		department_id INTEGER NOT NULL REFERENCES departments(id)
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_department_order ON tasks(department_id, task_order);

	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		department_id INTEGER NOT NULL REFERENCES departments(id),
		manager TEXT NOT NULL DEFAULT '',
		team TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL DEFAULT '',
		office TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS task_completions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_key TEXT NOT NULL UNIQUE REFERENCES tasks(task_key),
		completed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetDepartment retrieves a department by its canonical (lowercase) name.
// Returns nil without error when no such department exists.
func (db *DB) GetDepartment(name string) (*models.Department, error) {
	var dept models.Department
	err := db.conn.QueryRow(
		"SELECT id, name, display_name FROM departments WHERE name = ?",
		name,
	).Scan(&dept.ID, &dept.Name, &dept.DisplayName)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &dept, nil
}

// ListDepartments retrieves all departments in seed order
func (db *DB) ListDepartments() ([]models.Department, error) {
	rows, err := db.conn.Query("SELECT id, name, display_name FROM departments ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var depts []models.Department
	for rows.Next() {
		var dept models.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		depts = append(depts, dept)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating departments: %w", err)
	}

	return depts, nil
}

// TasksByDepartment retrieves a department's tasks ordered by task_order,
// breaking ties on task_key.
func (db *DB) TasksByDepartment(name string) ([]models.Task, error) {
	rows, err := db.conn.Query(`
		SELECT t.task_key, t.title, t.description, t.task_order, t.help_link, t.due_in_days, d.name
		FROM tasks t
		JOIN departments d ON d.id = t.department_id
		WHERE d.name = ?
		ORDER BY t.task_order, t.task_key`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Order,
			&task.HelpLink, &task.DueInDays, &task.Department); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves a task by its stable key, in any department.
// Returns nil without error when no such task exists.
func (db *DB) GetTask(taskKey string) (*models.Task, error) {
	var task models.Task
	err := db.conn.QueryRow(`
		SELECT t.task_key, t.title, t.description, t.task_order, t.help_link, t.due_in_days, d.name
		FROM tasks t
		JOIN departments d ON d.id = t.department_id
		WHERE t.task_key = ?`,
		taskKey,
	).Scan(&task.ID, &task.Title, &task.Description, &task.Order,
		&task.HelpLink, &task.DueInDays, &task.Department)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// GetEmployee retrieves an employee by canonical (lowercase) first name.
// Returns nil without error when no such employee exists.
func (db *DB) GetEmployee(name string) (*models.Employee, error) {
	var emp models.Employee
	err := db.conn.QueryRow(`
		SELECT e.name, e.full_name, d.display_name, e.manager, e.team, e.start_date, e.office
		FROM employees e
		JOIN departments d ON d.id = e.department_id
		WHERE e.name = ?`,
		name,
	).Scan(&emp.Name, &emp.FullName, &emp.Department, &emp.Manager, &emp.Team, &emp.StartDate, &emp.Office)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &emp, nil
}

// GetCompletion reports whether a completion record exists for the task key
func (db *DB) GetCompletion(taskKey string) (bool, error) {
	var exists int
	err := db.conn.QueryRow(
		"SELECT COUNT(1) FROM task_completions WHERE task_key = ?",
		taskKey,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to get completion: %w", err)
	}

	return exists > 0, nil
}

// UpsertCompletion records a task as completed. The conflict target makes
// the write atomic and idempotent: a second completion of the same task is
// a no-op and concurrent completions cannot produce duplicate rows.
func (db *DB) UpsertCompletion(taskKey string) error {
	_, err := db.conn.Exec(`
		INSERT INTO task_completions (task_key, completed_at) VALUES (?, ?)
		ON CONFLICT(task_key) DO NOTHING`,
		taskKey, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert completion: %w", err)
	}

	return nil
}

// CountTasks returns the number of seeded tasks
func (db *DB) CountTasks() (int, error) {
	return db.count("SELECT COUNT(*) FROM tasks")
}

// CountEmployees returns the number of seeded employees
func (db *DB) CountEmployees() (int, error) {
	return db.count("SELECT COUNT(*) FROM employees")
}

// CountCompletions returns the number of completion records
func (db *DB) CountCompletions() (int, error) {
	return db.count("SELECT COUNT(*) FROM task_completions")
}

func (db *DB) count(query string) (int, error) {
	var n int
	if err := db.conn.QueryRow(query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}
