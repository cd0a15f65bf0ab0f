package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"task-tracker-api/internal/domain"
	"task-tracker-api/internal/http/dto"
	"task-tracker-api/internal/service"
	"task-tracker-api/internal/validation"
)

// maxBodyBytes caps how much of a request body is read.
const maxBodyBytes = 10 << 20

type TaskService interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, in domain.NewTask) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	ToggleTask(ctx context.Context, id string) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) (service.DeleteResult, error)
}

type TaskHandler struct {
	taskService TaskService
	logger      *log.Logger
}

func New(taskService TaskService, logger *log.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	response := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, dto.NewTaskResponse(task))
	}

	writeJSON(w, http.StatusOK, response)
}

// POST /api/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	in, err := validation.ValidateCreate(payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Debug("task created", "id", task.ID)
	writeJSON(w, http.StatusCreated, dto.NewTaskResponse(task))
}

// PUT /api/tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	payload, err := readPayload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	patch, err := validation.ValidateUpdate(payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, patch)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Debug("task updated", "id", task.ID)
	writeJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

// PATCH /api/tasks/{id}/toggle
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.ToggleTask(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Debug("task toggled", "id", task.ID, "completed", task.Completed)
	writeJSON(w, http.StatusOK, dto.NewTaskResponse(task))
}

// DELETE /api/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.taskService.DeleteTask(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Debug("task deleted", "id", res.ID)
	writeJSON(w, http.StatusOK, dto.DeleteTaskResponse{Message: res.Message, ID: res.ID})
}

func readPayload(w http.ResponseWriter, r *http.Request) (validation.Payload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, validation.InvalidBody()
	}
	return validation.ParsePayload(body)
}
