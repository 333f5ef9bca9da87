package api

import (
	"net/http"

	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/api/shared"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/domain"
	"github.com/bashlor/Rapid-Work-Tracker-sub000/internal/service"
)

// SessionHandler handles session and time tracking API requests.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler with the given dependencies.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Create handles POST /sessions.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.sessionService.CreateSession(r.Context(), service.CreateSessionInput{
		UserID:      userID,
		TaskID:      req.TaskID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sess)
}

// List handles GET /sessions. Optional query parameters narrow the listing:
// task_id filters by task, start/end filter by time range.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()

	var (
		sessions []*domain.Session
		err      error
	)
	switch {
	case query.Get("task_id") != "":
		taskID, parseErr := parseQueryUUID(query.Get("task_id"), "task_id")
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, parseErr.Error())
			return
		}
		sessions, err = h.sessionService.ListSessionsByTask(r.Context(), userID, taskID)

	case query.Get("start") != "" && query.Get("end") != "":
		start, parseErr := domain.ParseDateTime(query.Get("start"))
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "start has invalid format")
			return
		}
		end, parseErr := domain.ParseDateTime(query.Get("end"))
		if parseErr != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "end has invalid format")
			return
		}
		sessions, err = h.sessionService.ListSessionsBetween(r.Context(), userID, start, end)

	default:
		sessions, err = h.sessionService.ListSessions(r.Context(), userID)
	}
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionListResponse{Sessions: sessions})
}

// Update handles PATCH /sessions/{sessionID}. Description and end time can
// be changed; either or both may appear in the payload.
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := requirePathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.Description == nil && req.EndTime == nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Nothing to update")
		return
	}

	var (
		sess *domain.Session
		err  error
	)
	if req.Description != nil {
		sess, err = h.sessionService.UpdateSessionDescription(r.Context(), userID, sessionID, *req.Description)
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
	}
	if req.EndTime != nil {
		sess, err = h.sessionService.UpdateSessionEndTime(r.Context(), userID, sessionID, *req.EndTime)
		if err != nil {
			RespondWithMappedError(w, r, err)
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sess)
}

// UpdateMany handles PUT /sessions, replacing several sessions atomically.
func (h *SessionHandler) UpdateMany(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateSessionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	changes := make([]service.SessionChange, 0, len(req.Sessions))
	for _, sc := range req.Sessions {
		changes = append(changes, service.SessionChange{
			SessionID:   sc.SessionID,
			TaskID:      sc.TaskID,
			StartTime:   sc.StartTime,
			EndTime:     sc.EndTime,
			Description: sc.Description,
		})
	}

	sessions, err := h.sessionService.UpdateSessions(r.Context(), service.UpdateSessionsInput{
		UserID:   userID,
		Sessions: changes,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionListResponse{Sessions: sessions})
}

// Delete handles DELETE /sessions/{sessionID}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	sessionID, ok := requirePathUUID(w, r, "sessionID")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), userID, sessionID); err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StartTracking handles POST /tracking/start.
func (h *SessionHandler) StartTracking(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StartTrackingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	active, err := h.sessionService.StartTracking(r.Context(), userID, req.TaskID, req.Description, req.StartTime)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, active)
}

// StopTracking handles POST /tracking/stop.
func (h *SessionHandler) StopTracking(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StopTrackingRequest
	if err := shared.DecodeJSON(r, &req); err != nil && r.ContentLength > 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	sess, err := h.sessionService.StopTracking(r.Context(), userID, req.EndTime)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sess)
}

// CurrentTracking handles GET /tracking/current.
func (h *SessionHandler) CurrentTracking(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	active, err := h.sessionService.CurrentSession(r.Context(), userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, active)
}
