package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"inkstone/internal/httputil"

	novelSvc "inkstone/internal/domain/services/novel"
)

// ExportHandler serves manuscript downloads
type ExportHandler struct {
	export novelSvc.ExportService
	logger *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(export novelSvc.ExportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		export: export,
		logger: logger,
	}
}

// ExportText downloads the manuscript as plain text
// GET /api/manuscripts/{id}/export/text?preserve_formatting=1&include_metadata=1
func (h *ExportHandler) ExportText(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := &novelSvc.ExportOptions{
		PreserveFormatting: q.Get("preserve_formatting") == "1" || q.Get("preserve_formatting") == "true",
		IncludeMetadata:    q.Get("include_metadata") == "1" || q.Get("include_metadata") == "true",
	}

	result, err := h.export.ExportText(r.Context(), userID, id, opts)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondDownload(w, result, "txt")
}

// ExportMarkdown downloads the manuscript as Markdown
// GET /api/manuscripts/{id}/export/markdown
func (h *ExportHandler) ExportMarkdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.export.ExportMarkdown(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	h.respondDownload(w, result, "md")
}

// respondDownload writes the rendered document as an attachment. The filename
// is manuscript name + timestamp, RFC 5987 encoded for non-ASCII names.
func (h *ExportHandler) respondDownload(w http.ResponseWriter, result *novelSvc.ExportResult, ext string) {
	filename := fmt.Sprintf("%s-%s.%s",
		result.ManuscriptName, time.Now().Format("20060102-150405"), ext)

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	if result.SkippedChapters > 0 {
		w.Header().Set("X-Skipped-Chapters", fmt.Sprintf("%d", result.SkippedChapters))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(result.Content)); err != nil {
		h.logger.Warn("export write failed", "error", err)
	}
}

// SettingsHandler serves the resolved lore for a manuscript
type SettingsHandler struct {
	settings novelSvc.SettingsService
	logger   *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settings novelSvc.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		logger:   logger,
	}
}

// GetSettings returns the effective lore set for a manuscript
// GET /api/manuscripts/{id}/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r, "id")
	if !ok {
		return
	}

	resolved, err := h.settings.Resolve(r.Context(), userID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resolved)
}
