package handler

import (
	"log/slog"
	"net/http"

	"inkstone/internal/httputil"

	assistSvc "inkstone/internal/domain/services/assist"
)

// AssistHandler handles AI drafting requests
type AssistHandler struct {
	assist assistSvc.Service
	logger *slog.Logger
}

// NewAssistHandler creates a new assist handler
func NewAssistHandler(assist assistSvc.Service, logger *slog.Logger) *AssistHandler {
	return &AssistHandler{
		assist: assist,
		logger: logger,
	}
}

// Draft generates assistance text for a chapter
// POST /api/assist/draft
func (h *AssistHandler) Draft(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req assistSvc.DraftRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	text, err := h.assist.Draft(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}
