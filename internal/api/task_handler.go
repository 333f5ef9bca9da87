package api

import (
	"net/http"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api/shared"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service"
)

// TaskHandler handles task API requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.taskService.CreateTask(r.Context(), service.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DomainID:    req.DomainID,
		SubDomainID: req.SubDomainID,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, t)
}

// Get handles GET /tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := requirePathUUID(w, r, "taskID")
	if !ok {
		return
	}

	t, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// List handles GET /tasks. An optional domain_id query parameter narrows
// the listing to one domain (including its sub-domains).
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var (
		tasks []*domain.Task
		err   error
	)
	if raw := r.URL.Query().Get("domain_id"); raw != "" {
		domainID, parseErr := parseQueryUUID(raw, "domain_id")
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, parseErr.Error())
			return
		}
		tasks, err = h.taskService.ListTasksByDomain(r.Context(), userID, domainID)
	} else {
		tasks, err = h.taskService.ListTasks(r.Context(), userID)
	}
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// Update handles PUT /tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := requirePathUUID(w, r, "taskID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t, err := h.taskService.UpdateTask(r.Context(), service.UpdateTaskInput{
		UserID:      userID,
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		DomainID:    req.DomainID,
		SubDomainID: req.SubDomainID,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// Delete handles DELETE /tasks/{taskID}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := requirePathUUID(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
