package novel

import (
	"context"
	"errors"
	"testing"

	"inkstone/internal/domain"
	novelSvc "inkstone/internal/domain/services/novel"
)

func createTestManuscript(t *testing.T, env *testEnv, userID, name string) string {
	t.Helper()
	m, err := env.manuscripts.CreateManuscript(context.Background(), &novelSvc.CreateManuscriptRequest{
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		t.Fatalf("CreateManuscript failed: %v", err)
	}
	return m.ID
}

func createDirectChapter(t *testing.T, env *testEnv, userID, manuscriptID, title string) string {
	t.Helper()
	c, err := env.chapters.CreateChapter(context.Background(), &novelSvc.CreateChapterRequest{
		UserID:       userID,
		ManuscriptID: &manuscriptID,
		Title:        title,
	})
	if err != nil {
		t.Fatalf("CreateChapter failed: %v", err)
	}
	return c.ID
}

// TestSaveContent_WordCountAndAggregates verifies that saving a body updates
// the chapter word count and the manuscript total in one step.
func TestSaveContent_WordCountAndAggregates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")
	cID := createDirectChapter(t, env, userID, mID, "Intro")

	content, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID:    userID,
		ChapterID: cID,
		Body:      "hello world",
	})
	if err != nil {
		t.Fatalf("SaveContent failed: %v", err)
	}
	if content.Version != 1 {
		t.Errorf("expected version 1, got %d", content.Version)
	}

	c, err := env.chapters.GetChapter(ctx, userID, cID)
	if err != nil {
		t.Fatalf("GetChapter failed: %v", err)
	}
	// "hello world" minus whitespace is "helloworld", 10 runes
	if c.WordCount != 10 {
		t.Errorf("expected word count 10, got %d", c.WordCount)
	}

	m, err := env.manuscripts.GetManuscript(ctx, userID, mID)
	if err != nil {
		t.Fatalf("GetManuscript failed: %v", err)
	}
	if m.TotalWords != 10 {
		t.Errorf("expected total words 10, got %d", m.TotalWords)
	}
	if m.PublishedWords != 0 {
		t.Errorf("expected published words 0 for draft chapter, got %d", m.PublishedWords)
	}
	if m.LastEditedChapterID == nil || *m.LastEditedChapterID != cID {
		t.Errorf("expected last edited chapter %s, got %v", cID, m.LastEditedChapterID)
	}
}

// TestSaveContent_VersionMonotonicity verifies that after N saves the version
// is N and exactly N-1 history rows exist, each holding the superseded body.
func TestSaveContent_VersionMonotonicity(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")
	cID := createDirectChapter(t, env, userID, mID, "Intro")

	if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "A",
	}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	content, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "AB",
	})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	if content.Version != 2 {
		t.Errorf("expected version 2 after two saves, got %d", content.Version)
	}
	if content.Body != "AB" {
		t.Errorf("expected current body %q, got %q", "AB", content.Body)
	}

	versions, err := env.content.ListVersions(ctx, userID, cID)
	if err != nil {
		t.Fatalf("ListVersions failed: %v", err)
	}
	if len(versions) != 1 {
		t.Fatalf("expected exactly 1 history row, got %d", len(versions))
	}
	if versions[0].Version != 1 || versions[0].Body != "A" {
		t.Errorf("expected history row (version 1, body %q), got (version %d, body %q)",
			"A", versions[0].Version, versions[0].Body)
	}
}

// TestSaveContent_BaseVersionConflict verifies the optimistic concurrency
// check: a save carrying a stale base version is rejected, one without a
// base version wins silently.
func TestSaveContent_BaseVersionConflict(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")
	cID := createDirectChapter(t, env, userID, mID, "Intro")

	if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "first",
	}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "second",
	}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	stale := 1
	_, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "late writer", BaseVersion: &stale,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict error for stale base version, got %v", err)
	}

	// Without base version the save is last-write-wins
	content, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: userID, ChapterID: cID, Body: "late writer wins",
	})
	if err != nil {
		t.Fatalf("last-write-wins save failed: %v", err)
	}
	if content.Version != 3 {
		t.Errorf("expected version 3, got %d", content.Version)
	}
}

// TestSaveContent_OwnershipDenied verifies that no content operation on user
// A's chapter succeeds when invoked by user B.
func TestSaveContent_OwnershipDenied(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	mID := createTestManuscript(t, env, "user-a", "A's Novel")
	cID := createDirectChapter(t, env, "user-a", mID, "Chapter 1")

	_, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID: "user-b", ChapterID: cID, Body: "intrusion",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden error for foreign user save, got %v", err)
	}

	if _, err := env.content.GetContent(ctx, "user-b", cID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden error for foreign user read, got %v", err)
	}
}

// TestGetVersion retrieves an archived body by version number.
func TestGetVersion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")
	cID := createDirectChapter(t, env, userID, mID, "Intro")

	bodies := []string{"v1 body", "v2 body", "v3 body"}
	for _, body := range bodies {
		if _, err := env.content.SaveContent(ctx, &novelSvc.SaveContentRequest{
			UserID: userID, ChapterID: cID, Body: body,
		}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	v, err := env.content.GetVersion(ctx, userID, cID, 2)
	if err != nil {
		t.Fatalf("GetVersion failed: %v", err)
	}
	if v.Body != "v2 body" {
		t.Errorf("expected body %q at version 2, got %q", "v2 body", v.Body)
	}

	if _, err := env.content.GetVersion(ctx, userID, cID, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for missing version, got %v", err)
	}
}
