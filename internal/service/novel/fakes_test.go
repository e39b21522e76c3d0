package novel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inkstone/internal/domain"
	models "inkstone/internal/domain/models/novel"
	"inkstone/internal/domain/repositories"
	novelSvc "inkstone/internal/domain/services/novel"
)

// In-memory repository fakes. They mirror the postgres implementations'
// observable behavior: sort-key ordering, ErrNotFound wrapping, soft delete
// on manuscripts.

type fakeManuscriptRepo struct {
	manuscripts map[string]*models.Manuscript
}

func newFakeManuscriptRepo() *fakeManuscriptRepo {
	return &fakeManuscriptRepo{manuscripts: make(map[string]*models.Manuscript)}
}

func (r *fakeManuscriptRepo) Create(ctx context.Context, m *models.Manuscript) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	cp := *m
	r.manuscripts[m.ID] = &cp
	return nil
}

func (r *fakeManuscriptRepo) GetByID(ctx context.Context, id string) (*models.Manuscript, error) {
	m, ok := r.manuscripts[id]
	if !ok || m.DeletedAt != nil {
		return nil, fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

func (r *fakeManuscriptRepo) List(ctx context.Context, userID string) ([]models.Manuscript, error) {
	out := []models.Manuscript{}
	for _, m := range r.manuscripts {
		if m.UserID == userID && m.DeletedAt == nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeManuscriptRepo) Update(ctx context.Context, m *models.Manuscript) error {
	if _, ok := r.manuscripts[m.ID]; !ok {
		return fmt.Errorf("manuscript %s: %w", m.ID, domain.ErrNotFound)
	}
	cp := *m
	r.manuscripts[m.ID] = &cp
	return nil
}

func (r *fakeManuscriptRepo) UpdateWordCounts(ctx context.Context, id string, totalWords, publishedWords int) error {
	m, ok := r.manuscripts[id]
	if !ok {
		return fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}
	m.TotalWords = totalWords
	m.PublishedWords = publishedWords
	return nil
}

func (r *fakeManuscriptRepo) StampLastEdited(ctx context.Context, id, chapterID string, at time.Time) error {
	m, ok := r.manuscripts[id]
	if !ok {
		return fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}
	m.LastEditedChapterID = &chapterID
	m.LastEditedAt = &at
	return nil
}

func (r *fakeManuscriptRepo) Delete(ctx context.Context, id string) error {
	m, ok := r.manuscripts[id]
	if !ok || m.DeletedAt != nil {
		return fmt.Errorf("manuscript %s: %w", id, domain.ErrNotFound)
	}
	now := time.Now()
	m.DeletedAt = &now
	return nil
}

type fakeVolumeRepo struct {
	volumes map[string]*models.Volume
}

func newFakeVolumeRepo() *fakeVolumeRepo {
	return &fakeVolumeRepo{volumes: make(map[string]*models.Volume)}
}

func (r *fakeVolumeRepo) Create(ctx context.Context, v *models.Volume) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	cp := *v
	r.volumes[v.ID] = &cp
	return nil
}

func (r *fakeVolumeRepo) GetByID(ctx context.Context, id string) (*models.Volume, error) {
	v, ok := r.volumes[id]
	if !ok {
		return nil, fmt.Errorf("volume %s: %w", id, domain.ErrNotFound)
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVolumeRepo) ListByManuscript(ctx context.Context, manuscriptID string) ([]models.Volume, error) {
	out := []models.Volume{}
	for _, v := range r.volumes {
		if v.ManuscriptID == manuscriptID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey.LessThan(out[j].SortKey) })
	return out, nil
}

func (r *fakeVolumeRepo) MaxSortKey(ctx context.Context, manuscriptID string) (*decimal.Decimal, error) {
	var max *decimal.Decimal
	for _, v := range r.volumes {
		if v.ManuscriptID != manuscriptID {
			continue
		}
		if max == nil || v.SortKey.GreaterThan(*max) {
			k := v.SortKey
			max = &k
		}
	}
	return max, nil
}

func (r *fakeVolumeRepo) Update(ctx context.Context, v *models.Volume) error {
	if _, ok := r.volumes[v.ID]; !ok {
		return fmt.Errorf("volume %s: %w", v.ID, domain.ErrNotFound)
	}
	cp := *v
	r.volumes[v.ID] = &cp
	return nil
}

func (r *fakeVolumeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.volumes[id]; !ok {
		return fmt.Errorf("volume %s: %w", id, domain.ErrNotFound)
	}
	delete(r.volumes, id)
	return nil
}

type fakeChapterRepo struct {
	chapters map[string]*models.Chapter
	volumes  *fakeVolumeRepo
}

func newFakeChapterRepo(volumes *fakeVolumeRepo) *fakeChapterRepo {
	return &fakeChapterRepo{chapters: make(map[string]*models.Chapter), volumes: volumes}
}

func (r *fakeChapterRepo) Create(ctx context.Context, c *models.Chapter) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	r.chapters[c.ID] = &cp
	return nil
}

func (r *fakeChapterRepo) GetByID(ctx context.Context, id string) (*models.Chapter, error) {
	c, ok := r.chapters[id]
	if !ok {
		return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChapterRepo) ListByParent(ctx context.Context, parent models.ParentRef) ([]models.Chapter, error) {
	out := []models.Chapter{}
	for _, c := range r.chapters {
		if c.Parent == parent {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey.LessThan(out[j].SortKey) })
	return out, nil
}

func (r *fakeChapterRepo) ListByManuscript(ctx context.Context, manuscriptID string) ([]models.Chapter, error) {
	out := []models.Chapter{}
	for _, c := range r.chapters {
		switch c.Parent.Kind {
		case models.ParentManuscript:
			if c.Parent.ID == manuscriptID {
				out = append(out, *c)
			}
		case models.ParentVolume:
			if v, ok := r.volumes.volumes[c.Parent.ID]; ok && v.ManuscriptID == manuscriptID {
				out = append(out, *c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey.LessThan(out[j].SortKey) })
	return out, nil
}

func (r *fakeChapterRepo) MaxSortKey(ctx context.Context, parent models.ParentRef) (*decimal.Decimal, error) {
	var max *decimal.Decimal
	for _, c := range r.chapters {
		if c.Parent != parent {
			continue
		}
		if max == nil || c.SortKey.GreaterThan(*max) {
			k := c.SortKey
			max = &k
		}
	}
	return max, nil
}

func (r *fakeChapterRepo) Update(ctx context.Context, c *models.Chapter) error {
	if _, ok := r.chapters[c.ID]; !ok {
		return fmt.Errorf("chapter %s: %w", c.ID, domain.ErrNotFound)
	}
	cp := *c
	r.chapters[c.ID] = &cp
	return nil
}

func (r *fakeChapterRepo) UpdateWordCount(ctx context.Context, id string, wordCount int) error {
	c, ok := r.chapters[id]
	if !ok {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	c.WordCount = wordCount
	return nil
}

func (r *fakeChapterRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.chapters[id]; !ok {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}
	delete(r.chapters, id)
	return nil
}

func (r *fakeChapterRepo) DeleteByVolume(ctx context.Context, volumeID string) ([]string, error) {
	ids := []string{}
	for id, c := range r.chapters {
		if c.Parent == models.VolumeParent(volumeID) {
			ids = append(ids, id)
			delete(r.chapters, id)
		}
	}
	return ids, nil
}

type fakeContentRepo struct {
	contents map[string]*models.ChapterContent        // keyed by chapter id
	versions map[string][]models.ChapterContentVersion // keyed by content id
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		contents: make(map[string]*models.ChapterContent),
		versions: make(map[string][]models.ChapterContentVersion),
	}
}

func (r *fakeContentRepo) GetByChapter(ctx context.Context, chapterID string) (*models.ChapterContent, error) {
	c, ok := r.contents[chapterID]
	if !ok {
		return nil, fmt.Errorf("content for chapter %s: %w", chapterID, domain.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeContentRepo) Create(ctx context.Context, c *models.ChapterContent) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	r.contents[c.ChapterID] = &cp
	return nil
}

func (r *fakeContentRepo) Update(ctx context.Context, c *models.ChapterContent) error {
	if _, ok := r.contents[c.ChapterID]; !ok {
		return fmt.Errorf("content for chapter %s: %w", c.ChapterID, domain.ErrNotFound)
	}
	cp := *c
	r.contents[c.ChapterID] = &cp
	return nil
}

func (r *fakeContentRepo) ArchiveVersion(ctx context.Context, v *models.ChapterContentVersion) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	r.versions[v.ContentID] = append(r.versions[v.ContentID], *v)
	return nil
}

func (r *fakeContentRepo) ListVersions(ctx context.Context, contentID string) ([]models.ChapterContentVersion, error) {
	out := append([]models.ChapterContentVersion{}, r.versions[contentID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

func (r *fakeContentRepo) GetVersion(ctx context.Context, contentID string, version int) (*models.ChapterContentVersion, error) {
	for _, v := range r.versions[contentID] {
		if v.Version == version {
			cp := v
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("version %d: %w", version, domain.ErrNotFound)
}

func (r *fakeContentRepo) DeleteByChapters(ctx context.Context, chapterIDs []string) error {
	for _, id := range chapterIDs {
		if c, ok := r.contents[id]; ok {
			delete(r.versions, c.ID)
			delete(r.contents, id)
		}
	}
	return nil
}

type fakeLoreRepo struct {
	entities map[models.LoreCategory]map[string]models.LoreEntity
}

func newFakeLoreRepo() *fakeLoreRepo {
	return &fakeLoreRepo{entities: make(map[models.LoreCategory]map[string]models.LoreEntity)}
}

func (r *fakeLoreRepo) add(e models.LoreEntity) {
	if r.entities[e.Category] == nil {
		r.entities[e.Category] = make(map[string]models.LoreEntity)
	}
	r.entities[e.Category][e.ID] = e
}

func (r *fakeLoreRepo) GetByIDs(ctx context.Context, category models.LoreCategory, ids []string) ([]models.LoreEntity, error) {
	out := []models.LoreEntity{}
	for _, id := range ids {
		if e, ok := r.entities[category][id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// fakeTxManager runs the function directly; the fakes have no transactional
// state to isolate.
type fakeTxManager struct{}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

// testEnv wires all services over shared in-memory fakes.
type testEnv struct {
	manuscriptRepo *fakeManuscriptRepo
	volumeRepo     *fakeVolumeRepo
	chapterRepo    *fakeChapterRepo
	contentRepo    *fakeContentRepo
	loreRepo       *fakeLoreRepo
	projectRepo    *fakeProjectRepo

	manuscripts novelSvc.ManuscriptService
	volumes     novelSvc.VolumeService
	chapters    novelSvc.ChapterService
	content     novelSvc.ContentService
	tree        novelSvc.TreeService
	settings    novelSvc.SettingsService
	export      novelSvc.ExportService
	stats       novelSvc.StatsService
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	manuscriptRepo := newFakeManuscriptRepo()
	volumeRepo := newFakeVolumeRepo()
	chapterRepo := newFakeChapterRepo(volumeRepo)
	contentRepo := newFakeContentRepo()
	loreRepo := newFakeLoreRepo()
	projectRepo := newFakeProjectRepo()
	tx := &fakeTxManager{}

	stats := NewStatsService(manuscriptRepo, chapterRepo, logger)
	tree := NewTreeService(manuscriptRepo, volumeRepo, chapterRepo, logger)

	return &testEnv{
		manuscriptRepo: manuscriptRepo,
		volumeRepo:     volumeRepo,
		chapterRepo:    chapterRepo,
		contentRepo:    contentRepo,
		loreRepo:       loreRepo,
		projectRepo:    projectRepo,

		manuscripts: NewManuscriptService(manuscriptRepo, projectRepo, logger),
		volumes:     NewVolumeService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, stats, tx, logger),
		chapters:    NewChapterService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, stats, tx, logger),
		content:     NewContentService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, stats, tx, logger),
		tree:        tree,
		settings:    NewSettingsService(manuscriptRepo, volumeRepo, chapterRepo, loreRepo, projectRepo, logger),
		export:      NewExportService(contentRepo, tree, logger),
		stats:       stats,
	}
}
