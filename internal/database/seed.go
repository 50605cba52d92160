package database

import "fmt"

// Seed data for the closed set of departments, their ordered checklists, and
// the employee records used for agent greetings. Applied on every startup;
// existing rows are skipped, never duplicated, and completion state is never
// touched.

type seedTask struct {
	Key         string
	Title       string
	Description string
	Order       int
	HelpLink    string
	DueInDays   int
}

type seedDepartment struct {
	Name        string
	DisplayName string
	Tasks       []seedTask
}

type seedEmployee struct {
	Name       string
	FullName   string
	Department string
	Manager    string
	Team       string
	StartDate  string
	Office     string
}

var seedDepartments = []seedDepartment{
	{
		Name:        "engineering",
		DisplayName: "Engineering",
		Tasks: []seedTask{
			{
				Key:   "eng_001",
				Title: "Set up development environment",
				Description: "Install VS Code, Docker, Git, and clone the team repository. " +
					"Follow the README in the team repo for environment setup steps.",
				Order: 1,
			},
			{
				Key:   "eng_002",
				Title: "Complete security training",
				Description: "Finish the mandatory security awareness module in the LMS. " +
					"Takes approximately 45 minutes. Certificate auto-uploads to your profile.",
				Order:     2,
				DueInDays: 7,
			},
			{
				Key:   "eng_003",
				Title: "Attend team architecture sync",
				Description: "Join the weekly architecture sync (Thursdays, 10am PT). " +
					"Calendar invite sent by your manager on Day 1.",
				Order: 3,
			},
			{
				Key:   "eng_004",
				Title: "Submit your first pull request",
				Description: "Pick a 'good first issue' from the backlog, make the change, " +
					"and open a PR for review. This gets you familiar with the team's " +
					"code review process.",
				Order: 4,
			},
		},
	},
	{
		Name:        "sales",
		DisplayName: "Sales",
		Tasks: []seedTask{
			{
				Key:   "sal_001",
				Title: "Complete CRM onboarding",
				Description: "Log in to Salesforce, complete the intro walkthrough, " +
					"and verify your assigned territory and accounts are correct.",
				Order: 1,
			},
			{
				Key:   "sal_002",
				Title: "Shadow two discovery calls",
				Description: "Coordinate with your manager to shadow two live discovery calls " +
					"in your first week. Take notes and debrief afterward.",
				Order: 2,
			},
			{
				Key:   "sal_003",
				Title: "Review product positioning deck",
				Description: "Read the latest competitive positioning deck in SharePoint. " +
					"Confirm with your manager which version is current before reading.",
				Order: 3,
			},
			{
				Key:   "sal_004",
				Title: "Complete sales methodology certification",
				Description: "Finish the MEDDIC certification course in the LMS. " +
					"Required before leading your first customer call independently.",
				Order:     4,
				DueInDays: 14,
			},
		},
	},
	{
		Name:        "marketing",
		DisplayName: "Marketing",
		Tasks: []seedTask{
			{
				Key:   "mkt_001",
				Title: "Access brand asset library",
				Description: "Log in to the DAM (Digital Asset Management) system and confirm " +
					"access to the brand kit, logo files, and approved templates.",
				Order: 1,
			},
			{
				Key:   "mkt_002",
				Title: "Review content calendar",
				Description: "Access the shared content calendar in SharePoint and introduce " +
					"yourself in the #content-team Slack channel.",
				Order: 2,
			},
			{
				Key:   "mkt_003",
				Title: "Complete data privacy training",
				Description: "Finish the GDPR and data privacy module in the LMS. " +
					"Required for anyone handling campaign data or contact lists.",
				Order:     3,
				DueInDays: 7,
			},
			{
				Key:   "mkt_004",
				Title: "Attend campaign planning standup",
				Description: "Join the weekly campaign planning standup (Tuesdays, 9am PT). " +
					"Calendar invite sent by your manager.",
				Order: 4,
			},
		},
	},
	{
		Name:        "hr",
		DisplayName: "HR",
		Tasks: []seedTask{
			{
				Key:   "hr_001",
				Title: "Complete HRIS system access",
				Description: "Log in to Workday and verify your employee profile is complete " +
					"and accurate. Flag any discrepancies to IT immediately.",
				Order: 1,
			},
			{
				Key:   "hr_002",
				Title: "Review HR policy documentation",
				Description: "Read the current employee handbook and HR policy library " +
					"in SharePoint. Confirm version is current with your manager.",
				Order: 2,
			},
			{
				Key:   "hr_003",
				Title: "Shadow a benefits enrollment session",
				Description: "Sit in on an upcoming benefits Q&A session to understand " +
					"the enrollment process from the employee perspective.",
				Order: 3,
			},
			{
				Key:   "hr_004",
				Title: "Complete employment law training",
				Description: "Finish the employment law fundamentals module in the LMS. " +
					"Required for all HR team members before handling employee relations cases.",
				Order:     4,
				DueInDays: 14,
			},
		},
	},
}

var seedEmployees = []seedEmployee{
	{
		Name:       "jacob",
		FullName:   "Jacob George",
		Department: "engineering",
		Manager:    "Sarah Chen",
		Team:       "Platform Infrastructure",
		StartDate:  "2026-03-01",
		Office:     "Remote",
	},
	{
		Name:       "alex",
		FullName:   "Alex Rivera",
		Department: "sales",
		Manager:    "Marcus Webb",
		Team:       "Enterprise Accounts",
		StartDate:  "2026-03-01",
		Office:     "Remote",
	},
	{
		Name:       "jordan",
		FullName:   "Jordan Kim",
		Department: "marketing",
		Manager:    "Priya Nair",
		Team:       "Brand & Content",
		StartDate:  "2026-03-01",
		Office:     "Remote",
	},
	{
		Name:       "morgan",
		FullName:   "Morgan Patel",
		Department: "hr",
		Manager:    "Linda Torres",
		Team:       "People Operations",
		StartDate:  "2026-03-01",
		Office:     "Remote",
	},
}

// Seed populates departments, tasks, and employees. Safe to call on every
// startup: rows that already exist are skipped via INSERT OR IGNORE.
func (db *DB) Seed() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, dept := range seedDepartments {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO departments (name, display_name) VALUES (?, ?)",
			dept.Name, dept.DisplayName,
		); err != nil {
			return fmt.Errorf("failed to seed department %s: %w", dept.Name, err)
		}

		for _, task := range dept.Tasks {
			if _, err := tx.Exec(`
				INSERT OR IGNORE INTO tasks (task_key, title, description, task_order, help_link, due_in_days, department_id)
				VALUES (?, ?, ?, ?, ?, ?, (SELECT id FROM departments WHERE name = ?))`,
				task.Key, task.Title, task.Description, task.Order, task.HelpLink, task.DueInDays, dept.Name,
			); err != nil {
				return fmt.Errorf("failed to seed task %s: %w", task.Key, err)
			}
		}
	}

	for _, emp := range seedEmployees {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO employees (name, full_name, department_id, manager, team, start_date, office)
			VALUES (?, ?, (SELECT id FROM departments WHERE name = ?), ?, ?, ?, ?)`,
			emp.Name, emp.FullName, emp.Department, emp.Manager, emp.Team, emp.StartDate, emp.Office,
		); err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", emp.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return nil
}
