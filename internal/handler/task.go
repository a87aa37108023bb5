package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/task"
)

// CreateTaskRequest represents the request to schedule field work
type CreateTaskRequest struct {
	FieldID       string    `json:"field_id" validate:"required"`
	Type          string    `json:"type" validate:"required,tasktype"`
	Crop          string    `json:"crop" validate:"max=100"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
}

// CompleteTaskRequest represents the request to mark a task done
type CompleteTaskRequest struct {
	KilosHarvested float64 `json:"kilos_harvested" validate:"gte=0"`
}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskSvc task.Service
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskSvc task.Service) *TaskHandler {
	return &TaskHandler{
		taskSvc: taskSvc,
	}
}

// Create handles scheduling a task on a field
// @Summary Schedule a task
// @Description Schedule planting, watering, fertilizing or harvesting work on a field
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task details"
// @Success 201 {object} domain.Task "Task created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 409 {object} ErrorResponse "Field is archived"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CreateTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "CreateTask"); err != nil {
		return
	}

	log.Info("Create task request received", "field_id", req.FieldID, "type", req.Type)

	created, err := h.taskSvc.CreateTask(r.Context(), &domain.Task{
		FieldID:       req.FieldID,
		Type:          domain.TaskType(req.Type),
		Crop:          req.Crop,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		respondServiceError(w, r, "CreateTask", err)
		return
	}

	log.Info("Task created", "task_id", created.ID, "field_id", created.FieldID, "type", created.Type)
	respondJSON(w, http.StatusCreated, created)
}

// Get handles fetching a single task
// @Summary Get a task
// @Description Fetch a task by its ID
// @Tags tasks
// @Produce json
// @Param taskID path string true "Task ID"
// @Success 200 {object} domain.Task "Task found"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tasks/{taskID} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	t, err := h.taskSvc.GetTask(r.Context(), taskID)
	if err != nil {
		respondServiceError(w, r, "GetTask", err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// List handles listing an owner's tasks
// @Summary List tasks
// @Description List tasks for an owner, optionally scoped to one field
// @Tags tasks
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Param field_id query string false "Field ID to filter by"
// @Success 200 {array} domain.Task "Tasks"
// @Failure 400 {object} ErrorResponse "Missing owner_id"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}
	fieldID := GetOptionalQueryParam(r, "field_id", "")

	tasks, err := h.taskSvc.ListTasks(r.Context(), ownerID, fieldID)
	if err != nil {
		respondServiceError(w, r, "ListTasks", err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// Complete handles marking a task done
// @Summary Complete a task
// @Description Mark a task completed. Planting moves the field to planted; a harvest records kilos and archives the field.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskID path string true "Task ID"
// @Param request body CompleteTaskRequest true "Completion details"
// @Success 200 {object} domain.Task "Task completed"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 409 {object} ErrorResponse "Task already completed or field archived"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tasks/{taskID}/complete [post]
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	taskID := chi.URLParam(r, "taskID")

	var req CompleteTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "CompleteTask"); err != nil {
		return
	}

	completed, err := h.taskSvc.CompleteTask(r.Context(), taskID, req.KilosHarvested)
	if err != nil {
		respondServiceError(w, r, "CompleteTask", err)
		return
	}

	log.Info("Task completed",
		"task_id", completed.ID,
		"field_id", completed.FieldID,
		"type", completed.Type,
		"kilos", completed.KilosHarvested)

	respondJSON(w, http.StatusOK, completed)
}
