package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"inkstone/internal/httputil"

	novelSvc "inkstone/internal/domain/services/novel"
)

// ContentHandler handles chapter content HTTP requests
type ContentHandler struct {
	content novelSvc.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(content novelSvc.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		content: content,
		logger:  logger,
	}
}

// SaveContent saves a new chapter body
// PUT /api/chapters/{id}/content
func (h *ContentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	chapterID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req novelSvc.SaveContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID
	req.ChapterID = chapterID

	content, err := h.content.SaveContent(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// GetContent retrieves the current chapter body
// GET /api/chapters/{id}/content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	chapterID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	content, err := h.content.GetContent(r.Context(), userID, chapterID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, content)
}

// ListVersions lists archived content versions, newest first
// GET /api/chapters/{id}/content/versions
func (h *ContentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	chapterID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	versions, err := h.content.ListVersions(r.Context(), userID, chapterID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// GetVersion retrieves one archived content version
// GET /api/chapters/{id}/content/versions/{version}
func (h *ContentHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	chapterID, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil || version < 1 {
		httputil.RespondError(w, http.StatusBadRequest, "version must be a positive integer")
		return
	}

	v, err := h.content.GetVersion(r.Context(), userID, chapterID, version)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, v)
}
