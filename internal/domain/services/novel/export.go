package novel

import (
	"context"
)

// ExportService renders a manuscript's structure into flat export documents.
type ExportService interface {
	// ExportText renders the manuscript as plain text with localized volume
	// and chapter headings
	ExportText(ctx context.Context, userID, manuscriptID string, opts *ExportOptions) (*ExportResult, error)

	// ExportMarkdown renders the manuscript as a Markdown document with a
	// generated table of contents
	ExportMarkdown(ctx context.Context, userID, manuscriptID string) (*ExportResult, error)
}

// ExportOptions controls plain-text rendering.
type ExportOptions struct {
	// PreserveFormatting skips markdown stripping of chapter bodies
	PreserveFormatting bool `json:"preserve_formatting,omitempty"`
	// IncludeMetadata emits the creation/edit dates, totals and source
	// outline block under the title
	IncludeMetadata bool `json:"include_metadata,omitempty"`
}

// ExportResult is the rendered document plus what the download responder
// needs to serve it.
type ExportResult struct {
	Content        string `json:"content"`
	ManuscriptName string `json:"manuscript_name"`
	ContentType    string `json:"content_type"`
	// SkippedChapters counts chapters dropped from a batch render because
	// their content failed to load; failures are isolated, not fatal
	SkippedChapters int `json:"skipped_chapters,omitempty"`
}
