package novel

import (
	"context"
	"strings"
	"testing"

	novelSvc "inkstone/internal/domain/services/novel"
)

func TestExportText_HeadingsAndOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "星海拾遗")
	prologue := createDirectChapter(t, env, userID, mID, "楔子")
	vID := createTestVolume(t, env, userID, mID, "初入星门")
	c1 := createNestedChapter(t, env, userID, vID, "远行")
	c2 := createNestedChapter(t, env, userID, vID, "归途")

	for id, body := range map[string]string{
		prologue: "很久以前。",
		c1:       "第一段。",
		c2:       "第二段。",
	} {
		if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
			UserID: userID, ChapterID: id, Body: body,
		}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	result, err := env.export.ExportText(ctx, userID, mID, nil)
	if err != nil {
		t.Fatalf("ExportText failed: %v", err)
	}

	if !strings.HasPrefix(result.Content, "星海拾遗\n========\n") {
		t.Errorf("missing underlined title, got prefix %q", result.Content[:40])
	}
	for _, want := range []string{
		"楔子\n\n很久以前。",
		"第一卷 初入星门",
		"第一章 远行",
		"第二章 归途",
		"--------------------------------\n",
		"Total words: 13",
	} {
		if !strings.Contains(result.Content, want) {
			t.Errorf("export missing %q\n%s", want, result.Content)
		}
	}

	// Prologue (direct chapter) comes before the volume
	if strings.Index(result.Content, "楔子") > strings.Index(result.Content, "第一卷") {
		t.Error("direct chapter should precede volumes")
	}
	if result.ContentType != "text/plain; charset=utf-8" {
		t.Errorf("unexpected content type %q", result.ContentType)
	}
	if result.SkippedChapters != 0 {
		t.Errorf("expected no skipped chapters, got %d", result.SkippedChapters)
	}
}

func TestExportText_FormattingOptions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")
	cID := createDirectChapter(t, env, userID, mID, "Intro")
	if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "Some **bold** and *italic* text",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stripped, err := env.export.ExportText(ctx, userID, mID, nil)
	if err != nil {
		t.Fatalf("ExportText failed: %v", err)
	}
	if !strings.Contains(stripped.Content, "Some bold and italic text") {
		t.Errorf("expected markdown stripped, got:\n%s", stripped.Content)
	}

	preserved, err := env.export.ExportText(ctx, userID, mID, &novelSvc.ExportOptions{PreserveFormatting: true})
	if err != nil {
		t.Fatalf("ExportText failed: %v", err)
	}
	if !strings.Contains(preserved.Content, "Some **bold** and *italic* text") {
		t.Errorf("expected markdown preserved, got:\n%s", preserved.Content)
	}
}

func TestExportText_MetadataBlock(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")
	cID := createDirectChapter(t, env, userID, mID, "Intro")
	if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "hello world",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	result, err := env.export.ExportText(ctx, userID, mID, &novelSvc.ExportOptions{IncludeMetadata: true})
	if err != nil {
		t.Fatalf("ExportText failed: %v", err)
	}
	for _, want := range []string{"Created: ", "Last edited: ", "Total words: 10\n", "Chapters: 1\n"} {
		if !strings.Contains(result.Content, want) {
			t.Errorf("metadata block missing %q\n%s", want, result.Content)
		}
	}
}

func TestExportMarkdown_TOCAndSections(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "星海拾遗")
	vID := createTestVolume(t, env, userID, mID, "初入星门")
	cID := createNestedChapter(t, env, userID, vID, "远行")
	if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "正文**加粗**保留。",
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	result, err := env.export.ExportMarkdown(ctx, userID, mID)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# 星海拾遗\n",
		"## 目录\n",
		"- [第一卷 第一章 远行](#第一卷-第一章-远行)\n",
		"## 第一卷 第一章 远行\n",
		"正文**加粗**保留。",
		"\n---\n",
	} {
		if !strings.Contains(result.Content, want) {
			t.Errorf("markdown export missing %q\n%s", want, result.Content)
		}
	}
	if result.ContentType != "text/markdown; charset=utf-8" {
		t.Errorf("unexpected content type %q", result.ContentType)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"第一卷 第一章 远行", "第一卷-第一章-远行"},
		{"Chapter One: The Beginning!", "chapter-one-the-beginning"},
		{"Mixed 混合 Heading", "mixed-混合-heading"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
