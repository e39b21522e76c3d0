package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inkstone/internal/httputil"

	novelSvc "inkstone/internal/domain/services/novel"
)

// ManuscriptHandler handles manuscript HTTP requests
type ManuscriptHandler struct {
	manuscripts novelSvc.ManuscriptService
	logger      *slog.Logger
}

// NewManuscriptHandler creates a new manuscript handler
func NewManuscriptHandler(manuscripts novelSvc.ManuscriptService, logger *slog.Logger) *ManuscriptHandler {
	return &ManuscriptHandler{
		manuscripts: manuscripts,
		logger:      logger,
	}
}

// CreateManuscript creates a new manuscript
// POST /api/manuscripts
func (h *ManuscriptHandler) CreateManuscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req novelSvc.CreateManuscriptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	m, err := h.manuscripts.CreateManuscript(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, m)
}

// ListManuscripts retrieves all manuscripts for the user
// GET /api/manuscripts
func (h *ManuscriptHandler) ListManuscripts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	manuscripts, err := h.manuscripts.ListManuscripts(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, manuscripts)
}

// GetManuscript retrieves a manuscript by ID
// GET /api/manuscripts/{id}
func (h *ManuscriptHandler) GetManuscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.manuscripts.GetManuscript(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, m)
}

// UpdateManuscript updates a manuscript
// PATCH /api/manuscripts/{id}
func (h *ManuscriptHandler) UpdateManuscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req novelSvc.UpdateManuscriptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.manuscripts.UpdateManuscript(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, m)
}

// DeleteManuscript soft-deletes a manuscript
// DELETE /api/manuscripts/{id}
func (h *ManuscriptHandler) DeleteManuscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.manuscripts.DeleteManuscript(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *ManuscriptHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
