package novel

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	models "inkstone/internal/domain/models/novel"
	novelRepo "inkstone/internal/domain/repositories/novel"
	novelSvc "inkstone/internal/domain/services/novel"
	"inkstone/internal/utils"
)

// exportService renders a manuscript tree into a single downloadable
// document. Rendering is pure once the tree and bodies are in memory; a
// chapter whose body fails to load is skipped, not fatal.
type exportService struct {
	contentRepo novelRepo.ContentRepository
	tree        novelSvc.TreeService
	logger      *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	contentRepo novelRepo.ContentRepository,
	tree novelSvc.TreeService,
	logger *slog.Logger,
) novelSvc.ExportService {
	return &exportService{
		contentRepo: contentRepo,
		tree:        tree,
		logger:      logger,
	}
}

// exportChapter is a chapter plus its loaded body, ready for rendering.
type exportChapter struct {
	chapter models.Chapter
	body    string
}

type exportVolume struct {
	volume   models.Volume
	chapters []exportChapter
}

// loadTree fetches the manuscript tree and every chapter body. Chapters with
// no content yet render with an empty body; load failures are counted and the
// chapter dropped.
func (s *exportService) loadTree(ctx context.Context, userID, manuscriptID string) (*models.ManuscriptTree, []exportChapter, []exportVolume, int, error) {
	tree, err := s.tree.GetTree(ctx, userID, manuscriptID)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	skipped := 0
	load := func(chapters []models.Chapter) []exportChapter {
		out := make([]exportChapter, 0, len(chapters))
		for i := range chapters {
			content, err := s.contentRepo.GetByChapter(ctx, chapters[i].ID)
			switch {
			case err == nil:
				out = append(out, exportChapter{chapter: chapters[i], body: content.Body})
			case isNotFound(err):
				out = append(out, exportChapter{chapter: chapters[i]})
			default:
				s.logger.Warn("skipping chapter in export",
					"chapter_id", chapters[i].ID,
					"error", err,
				)
				skipped++
			}
		}
		return out
	}

	direct := load(tree.DirectChapters)
	volumes := make([]exportVolume, 0, len(tree.Volumes))
	for i := range tree.Volumes {
		volumes = append(volumes, exportVolume{
			volume:   tree.Volumes[i].Volume,
			chapters: load(tree.Volumes[i].Chapters),
		})
	}

	return tree, direct, volumes, skipped, nil
}

// ExportText renders the manuscript as plain text: title underlined with '=',
// an optional metadata block, direct chapters first (title only), then each
// volume under a 第n卷 heading with 第n章 chapter headings.
func (s *exportService) ExportText(ctx context.Context, userID, manuscriptID string, opts *novelSvc.ExportOptions) (*novelSvc.ExportResult, error) {
	if opts == nil {
		opts = &novelSvc.ExportOptions{}
	}

	tree, direct, volumes, skipped, err := s.loadTree(ctx, userID, manuscriptID)
	if err != nil {
		return nil, err
	}
	m := tree.Manuscript

	var b strings.Builder
	b.WriteString(m.Name + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(m.Name))*2) + "\n\n")

	if opts.IncludeMetadata {
		fmt.Fprintf(&b, "Created: %s\n", m.CreatedAt.Format("2006-01-02"))
		if m.LastEditedAt != nil {
			fmt.Fprintf(&b, "Last edited: %s\n", m.LastEditedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(&b, "Total words: %d\n", m.TotalWords)
		fmt.Fprintf(&b, "Chapters: %d\n", tree.ChapterCount())
		if m.OutlineID != nil {
			fmt.Fprintf(&b, "Outline: %s\n", *m.OutlineID)
		}
		b.WriteString("\n")
	}

	renderBody := func(body string) string {
		if opts.PreserveFormatting {
			return body
		}
		return utils.StripMarkdown(body)
	}

	// Direct chapters carry their own title, no generated ordinal
	for _, ec := range direct {
		b.WriteString(ec.chapter.Title + "\n\n")
		b.WriteString(renderBody(ec.body) + "\n\n")
	}

	for vi, ev := range volumes {
		fmt.Fprintf(&b, "第%s卷 %s\n\n", utils.ChineseNumeral(vi+1), ev.volume.Title)
		for ci, ec := range ev.chapters {
			fmt.Fprintf(&b, "第%s章 %s\n\n", utils.ChineseNumeral(ci+1), ec.chapter.Title)
			b.WriteString(renderBody(ec.body) + "\n\n")
		}
	}

	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "Total words: %d\n", m.TotalWords)
	fmt.Fprintf(&b, "Exported: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	return &novelSvc.ExportResult{
		Content:         b.String(),
		ManuscriptName:  m.Name,
		ContentType:     "text/plain; charset=utf-8",
		SkippedChapters: skipped,
	}, nil
}

// ExportMarkdown renders the manuscript as Markdown: an H1 title, a table of
// contents linking to slugified anchors, then each chapter as an H2 section
// with its raw body and a horizontal rule. Only volume-owned chapters receive
// generated ordinals; direct chapters appear under their own titles.
func (s *exportService) ExportMarkdown(ctx context.Context, userID, manuscriptID string) (*novelSvc.ExportResult, error) {
	tree, direct, volumes, skipped, err := s.loadTree(ctx, userID, manuscriptID)
	if err != nil {
		return nil, err
	}
	m := tree.Manuscript

	type section struct {
		heading string
		body    string
	}
	sections := make([]section, 0, tree.ChapterCount())
	for _, ec := range direct {
		sections = append(sections, section{heading: ec.chapter.Title, body: ec.body})
	}
	for vi, ev := range volumes {
		for ci, ec := range ev.chapters {
			heading := fmt.Sprintf("第%s卷 第%s章 %s",
				utils.ChineseNumeral(vi+1), utils.ChineseNumeral(ci+1), ec.chapter.Title)
			sections = append(sections, section{heading: heading, body: ec.body})
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", m.Name)

	b.WriteString("## 目录\n\n")
	for _, sec := range sections {
		fmt.Fprintf(&b, "- [%s](#%s)\n", sec.heading, slugify(sec.heading))
	}
	b.WriteString("\n")

	for _, sec := range sections {
		fmt.Fprintf(&b, "## %s\n\n", sec.heading)
		b.WriteString(sec.body + "\n\n---\n\n")
	}

	return &novelSvc.ExportResult{
		Content:         strings.TrimRight(b.String(), "\n") + "\n",
		ManuscriptName:  m.Name,
		ContentType:     "text/markdown; charset=utf-8",
		SkippedChapters: skipped,
	}, nil
}

var slugStripRe = regexp.MustCompile(`[^\p{L}\p{N}\- ]+`)

// slugify lowers a heading into a GitHub-style anchor: punctuation dropped,
// spaces to hyphens, CJK letters kept as-is.
func slugify(heading string) string {
	s := strings.ToLower(heading)
	s = slugStripRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "-")
}
