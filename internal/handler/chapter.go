package handler

import (
	"log/slog"
	"net/http"

	"inkstone/internal/httputil"

	novelSvc "inkstone/internal/domain/services/novel"
)

// ChapterHandler handles chapter HTTP requests
type ChapterHandler struct {
	chapters novelSvc.ChapterService
	tree     novelSvc.TreeService
	logger   *slog.Logger
}

// NewChapterHandler creates a new chapter handler
func NewChapterHandler(chapters novelSvc.ChapterService, tree novelSvc.TreeService, logger *slog.Logger) *ChapterHandler {
	return &ChapterHandler{
		chapters: chapters,
		tree:     tree,
		logger:   logger,
	}
}

// CreateChapter appends a chapter directly to a manuscript or under a volume
// POST /api/chapters
func (h *ChapterHandler) CreateChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req novelSvc.CreateChapterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	c, err := h.chapters.CreateChapter(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, c)
}

// GetChapter retrieves a chapter by ID
// GET /api/chapters/{id}
func (h *ChapterHandler) GetChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.chapters.GetChapter(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// UpdateChapter renames a chapter
// PATCH /api/chapters/{id}
func (h *ChapterHandler) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	var req novelSvc.UpdateChapterRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.chapters.UpdateChapter(r.Context(), userID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// DeleteChapter removes a chapter with its content and version history
// DELETE /api/chapters/{id}
func (h *ChapterHandler) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.chapters.DeleteChapter(r.Context(), userID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PublishChapter moves a chapter to PUBLISHED
// POST /api/chapters/{id}/publish
func (h *ChapterHandler) PublishChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.chapters.PublishChapter(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// UnpublishChapter moves a chapter back to DRAFT
// POST /api/chapters/{id}/unpublish
func (h *ChapterHandler) UnpublishChapter(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.chapters.UnpublishChapter(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, c)
}

// GetTree returns the manuscript's full structure
// GET /api/manuscripts/{id}/tree
func (h *ChapterHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	tree, err := h.tree.GetTree(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
