package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/catalog"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/database"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/models"
	"github.com/jacobgeorge3/copilot-onboarding-agent/internal/progress"
)

// Server holds the API server dependencies
type Server struct {
	catalog *catalog.Catalog
	tracker *progress.Tracker
	db      *database.DB
}

// NewServer creates a new API server
func NewServer(cat *catalog.Catalog, tracker *progress.Tracker, db *database.DB) *Server {
	return &Server{
		catalog: cat,
		tracker: tracker,
		db:      db,
	}
}

// RegisterRoutes registers all API routes with the Huma API
func (s *Server) RegisterRoutes(api huma.API) {
	// GET /health - Health check
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Liveness probe used by the hosting platform",
		Tags:        []string{"health"},
	}, s.health)

	// GET /health/info - Catalog and completion statistics
	huma.Register(api, huma.Operation{
		OperationID: "health-info",
		Method:      http.MethodGet,
		Path:        "/health/info",
		Summary:     "Service information",
		Description: "Get catalog sizes and completion statistics",
		Tags:        []string{"health"},
	}, s.healthInfo)

	// GET /employee/{name} - Fetch an employee record
	huma.Register(api, huma.Operation{
		OperationID: "get-employee",
		Method:      http.MethodGet,
		Path:        "/employee/{name}",
		Summary:     "Get an employee",
		Description: "Fetch an employee record for the agent greeting. Lookup is case-insensitive.",
		Tags:        []string{"onboarding"},
	}, s.getEmployee)

	// GET /onboarding/{department} - Fetch a department checklist
	huma.Register(api, huma.Operation{
		OperationID: "get-onboarding-checklist",
		Method:      http.MethodGet,
		Path:        "/onboarding/{department}",
		Summary:     "Get a department checklist",
		Description: "Fetch the ordered onboarding task checklist for a department with live completion state",
		Tags:        []string{"onboarding"},
	}, s.getChecklist)

	// POST /complete-task - Mark a task complete
	huma.Register(api, huma.Operation{
		OperationID: "complete-task",
		Method:      http.MethodPost,
		Path:        "/complete-task",
		Summary:     "Complete a task",
		Description: "Mark a task complete and return the updated progress with the next task in order",
		Tags:        []string{"onboarding"},
	}, s.completeTask)
}

// Request/Response types

type GetEmployeeRequest struct {
	Name string `path:"name" maxLength:"50" doc:"Employee first name, case-insensitive"`
}

type GetEmployeeResponse struct {
	Body models.Employee
}

type GetChecklistRequest struct {
	Department string `path:"department" maxLength:"50" doc:"Department name, case-insensitive"`
}

type GetChecklistResponse struct {
	Body models.ChecklistView
}

type CompleteTaskRequest struct {
	Body models.CompleteTaskInput
}

type CompleteTaskResponse struct {
	Body models.ProgressUpdate
}

// Handler implementations

func (s *Server) getEmployee(ctx context.Context, input *GetEmployeeRequest) (*GetEmployeeResponse, error) {
	employee, err := s.catalog.GetEmployee(input.Name)
	if err != nil {
		return nil, coreError(err)
	}

	return &GetEmployeeResponse{Body: *employee}, nil
}

func (s *Server) getChecklist(ctx context.Context, input *GetChecklistRequest) (*GetChecklistResponse, error) {
	view, err := s.tracker.Checklist(input.Department)
	if err != nil {
		return nil, coreError(err)
	}

	return &GetChecklistResponse{Body: *view}, nil
}

func (s *Server) completeTask(ctx context.Context, input *CompleteTaskRequest) (*CompleteTaskResponse, error) {
	update, err := s.tracker.CompleteTask(input.Body.TaskID, input.Body.Department)
	if err != nil {
		return nil, coreError(err)
	}

	return &CompleteTaskResponse{Body: *update}, nil
}

type HealthResponse struct {
	Body struct {
		Status string `json:"status" doc:"Service status"`
	}
}

func (s *Server) health(ctx context.Context, input *struct{}) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = "ok"
	return resp, nil
}

type HealthInfoResponse struct {
	Body struct {
		Status      string   `json:"status" doc:"Service status"`
		Departments []string `json:"departments" doc:"Seeded department names"`
		Tasks       int      `json:"tasks" doc:"Number of seeded tasks"`
		Employees   int      `json:"employees" doc:"Number of seeded employees"`
		Completions int      `json:"completions" doc:"Number of completion records"`
	}
}

func (s *Server) healthInfo(ctx context.Context, input *struct{}) (*HealthInfoResponse, error) {
	resp := &HealthInfoResponse{}
	resp.Body.Status = "ok"

	depts, err := s.db.ListDepartments()
	if err != nil {
		return nil, coreError(models.NewStorageError(err))
	}
	for _, d := range depts {
		resp.Body.Departments = append(resp.Body.Departments, d.DisplayName)
	}

	// Statistics are best-effort; a failed count reads as -1
	if resp.Body.Tasks, err = s.db.CountTasks(); err != nil {
		resp.Body.Tasks = -1
	}
	if resp.Body.Employees, err = s.db.CountEmployees(); err != nil {
		resp.Body.Employees = -1
	}
	if resp.Body.Completions, err = s.db.CountCompletions(); err != nil {
		resp.Body.Completions = -1
	}

	return resp, nil
}
