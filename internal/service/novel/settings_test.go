package novel

import (
	"context"
	"strings"
	"testing"

	models "inkstone/internal/domain/models/novel"
	novelSvc "inkstone/internal/domain/services/novel"
)

func addLore(env *testEnv, category models.LoreCategory, id, name, description string) {
	env.loreRepo.add(models.LoreEntity{
		ID:          id,
		UserID:      "user-1",
		Category:    category,
		Name:        name,
		Description: description,
	})
}

// TestResolve_ProjectReplacesManuscriptLists links a manuscript to a project
// and verifies the project's lore lists win wholesale over the manuscript's.
func TestResolve_ProjectReplacesManuscriptLists(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	addLore(env, models.LoreCharacter, "5", "Lin Wei", "A stubborn cartographer")
	addLore(env, models.LoreCharacter, "9", "Old Shen", "The retired gate warden")

	mID := createTestManuscript(t, env, userID, "Test")
	projectID := "proj-1"
	env.projectRepo.projects[projectID] = &models.Project{
		ID:           projectID,
		UserID:       userID,
		Name:         "Shared World",
		CharacterIDs: []string{"5"},
	}
	if _, err := env.manuscripts.UpdateManuscript(ctx, userID, mID, &novelSvc.UpdateManuscriptRequest{
		ProjectID:    &projectID,
		CharacterIDs: []string{"9"},
	}); err != nil {
		t.Fatalf("UpdateManuscript failed: %v", err)
	}

	resolved, err := env.settings.Resolve(ctx, userID, mID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved.Characters) != 1 {
		t.Fatalf("expected 1 character, got %d", len(resolved.Characters))
	}
	if resolved.Characters[0].ID != "5" {
		t.Errorf("expected project character 5, got %s", resolved.Characters[0].ID)
	}
}

// TestResolve_DanglingIDsDropped references a mix of real and missing lore
// ids; the missing ones must not surface and must not fail the call.
func TestResolve_DanglingIDsDropped(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	addLore(env, models.LoreCharacter, "c1", "Hero", "The one who stays")
	addLore(env, models.LoreWorld, "w1", "The Rift", "A sea of broken stone")

	mID := createTestManuscript(t, env, userID, "Test")
	if _, err := env.manuscripts.UpdateManuscript(ctx, userID, mID, &novelSvc.UpdateManuscriptRequest{
		CharacterIDs: []string{"c1", "gone"},
		WorldIDs:     []string{"missing", "w1"},
		SystemIDs:    []string{"also-gone"},
	}); err != nil {
		t.Fatalf("UpdateManuscript failed: %v", err)
	}

	resolved, err := env.settings.Resolve(ctx, userID, mID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(resolved.Characters) != 1 || resolved.Characters[0].ID != "c1" {
		t.Errorf("expected only character c1, got %v", resolved.Characters)
	}
	if len(resolved.Worlds) != 1 || resolved.Worlds[0].ID != "w1" {
		t.Errorf("expected only world w1, got %v", resolved.Worlds)
	}
	if len(resolved.Systems) != 0 {
		t.Errorf("expected no systems, got %v", resolved.Systems)
	}
}

// TestResolve_DanglingProjectYieldsEmptySettings points a manuscript at a
// project that does not exist; the result is empty, not an error.
func TestResolve_DanglingProjectYieldsEmptySettings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	addLore(env, models.LoreCharacter, "c1", "Hero", "The one who stays")

	mID := createTestManuscript(t, env, userID, "Test")
	projectID := "proj-1"
	env.projectRepo.projects[projectID] = &models.Project{
		ID: projectID, UserID: userID, Name: "Shared World",
	}
	if _, err := env.manuscripts.UpdateManuscript(ctx, userID, mID, &novelSvc.UpdateManuscriptRequest{
		ProjectID:    &projectID,
		CharacterIDs: []string{"c1"},
	}); err != nil {
		t.Fatalf("UpdateManuscript failed: %v", err)
	}
	// The project disappears after linking
	delete(env.projectRepo.projects, projectID)

	resolved, err := env.settings.Resolve(ctx, userID, mID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !resolved.Empty() {
		t.Errorf("expected empty settings for dangling project, got %+v", resolved)
	}
}

func TestBuildContext_Formatting(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	addLore(env, models.LoreCharacter, "c1", "Lin Wei", "A stubborn cartographer")
	addLore(env, models.LoreCharacter, "c2", "Old Shen", "The retired gate warden")
	addLore(env, models.LoreWorld, "w1", "The Rift", "A sea of broken stone")

	mID := createTestManuscript(t, env, userID, "Test")
	if _, err := env.manuscripts.UpdateManuscript(ctx, userID, mID, &novelSvc.UpdateManuscriptRequest{
		CharacterIDs: []string{"c1", "c2"},
		WorldIDs:     []string{"w1"},
	}); err != nil {
		t.Fatalf("UpdateManuscript failed: %v", err)
	}

	got, err := env.settings.BuildContext(ctx, userID, mID)
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}

	want := strings.Join([]string{
		"Characters:",
		"- Lin Wei: A stubborn cartographer",
		"- Old Shen: The retired gate warden",
		"",
		"World settings:",
		"- The Rift: A sea of broken stone",
	}, "\n")
	if got != want {
		t.Errorf("context mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildContext_NoSettingsFallback(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	userID := "user-1"

	mID := createTestManuscript(t, env, userID, "Test")

	got, err := env.settings.BuildContext(ctx, userID, mID)
	if err != nil {
		t.Fatalf("BuildContext failed: %v", err)
	}
	if !strings.Contains(got, "No story settings") {
		t.Errorf("expected fallback context, got %q", got)
	}
}
