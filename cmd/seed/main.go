package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"inkstone/internal/config"
	novelSvc "inkstone/internal/domain/services/novel"
	"inkstone/internal/repository/postgres"
	postgresNovel "inkstone/internal/repository/postgres/novel"
	serviceNovel "inkstone/internal/service/novel"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed sample data")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	userID := os.Getenv("SEED_USER_ID")
	if userID == "" {
		userID = "00000000-0000-0000-0000-000000000001"
	}

	// Create repositories and services, then seed through the service layer
	// so word counts, sort keys and aggregates come out consistent
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	manuscriptRepo := postgresNovel.NewManuscriptRepository(repoConfig)
	volumeRepo := postgresNovel.NewVolumeRepository(repoConfig)
	chapterRepo := postgresNovel.NewChapterRepository(repoConfig)
	contentRepo := postgresNovel.NewContentRepository(repoConfig)
	projectRepo := postgresNovel.NewProjectRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	statsService := serviceNovel.NewStatsService(manuscriptRepo, chapterRepo, logger)
	manuscriptService := serviceNovel.NewManuscriptService(manuscriptRepo, projectRepo, logger)
	volumeService := serviceNovel.NewVolumeService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, statsService, txManager, logger)
	chapterService := serviceNovel.NewChapterService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, statsService, txManager, logger)
	contentService := serviceNovel.NewContentService(manuscriptRepo, volumeRepo, chapterRepo, contentRepo, statsService, txManager, logger)

	log.Println("Seeding sample manuscript...")

	m, err := manuscriptService.CreateManuscript(ctx, &novelSvc.CreateManuscriptRequest{
		UserID:      userID,
		Name:        "星海拾遗",
		TargetWords: 200000,
	})
	if err != nil {
		log.Fatalf("Failed to create manuscript: %v", err)
	}

	prologue, err := chapterService.CreateChapter(ctx, &novelSvc.CreateChapterRequest{
		UserID:       userID,
		ManuscriptID: &m.ID,
		Title:        "楔子",
	})
	if err != nil {
		log.Fatalf("Failed to create prologue: %v", err)
	}
	if _, err := contentService.SaveContent(ctx, &novelSvc.SaveContentRequest{
		UserID:    userID,
		ChapterID: prologue.ID,
		Body:      "夜色如墨，星河低垂。少年抬头望向天际，那里有一颗星正缓缓坠落。",
	}); err != nil {
		log.Fatalf("Failed to save prologue content: %v", err)
	}

	v, err := volumeService.CreateVolume(ctx, &novelSvc.CreateVolumeRequest{
		UserID:       userID,
		ManuscriptID: m.ID,
		Title:        "初入星门",
	})
	if err != nil {
		log.Fatalf("Failed to create volume: %v", err)
	}

	chapterTitles := []string{"坠星之夜", "旧城来客", "第一道门"}
	for i, title := range chapterTitles {
		c, err := chapterService.CreateChapter(ctx, &novelSvc.CreateChapterRequest{
			UserID:   userID,
			VolumeID: &v.ID,
			Title:    title,
		})
		if err != nil {
			log.Fatalf("Failed to create chapter '%s': %v", title, err)
		}
		if _, err := contentService.SaveContent(ctx, &novelSvc.SaveContentRequest{
			UserID:    userID,
			ChapterID: c.ID,
			Body:      "这是示例章节正文。清晨的雾气还未散去，街角的灯火一盏盏熄灭。",
		}); err != nil {
			log.Fatalf("Failed to save chapter content: %v", err)
		}
		log.Printf("Created chapter %d/%d: %s (ID: %s)", i+1, len(chapterTitles), title, c.ID)
	}

	log.Println("Seeding complete")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	createProjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			character_ids TEXT[] NOT NULL DEFAULT '{}',
			system_ids TEXT[] NOT NULL DEFAULT '{}',
			world_ids TEXT[] NOT NULL DEFAULT '{}',
			misc_ids TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createProjects); err != nil {
		return err
	}

	createManuscripts := `
		CREATE TABLE IF NOT EXISTS ` + tables.Manuscripts + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			outline_id UUID,
			project_id UUID,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			character_ids TEXT[] NOT NULL DEFAULT '{}',
			system_ids TEXT[] NOT NULL DEFAULT '{}',
			world_ids TEXT[] NOT NULL DEFAULT '{}',
			misc_ids TEXT[] NOT NULL DEFAULT '{}',
			total_words INTEGER NOT NULL DEFAULT 0,
			published_words INTEGER NOT NULL DEFAULT 0,
			target_words INTEGER NOT NULL DEFAULT 0,
			last_edited_chapter_id UUID,
			last_edited_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createManuscripts); err != nil {
		return err
	}

	createVolumes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Volumes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			manuscript_id UUID NOT NULL REFERENCES ` + tables.Manuscripts + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT,
			sort_key NUMERIC NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createVolumes); err != nil {
		return err
	}

	// Exactly one of manuscript_id/volume_id must be set
	createChapters := `
		CREATE TABLE IF NOT EXISTS ` + tables.Chapters + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			manuscript_id UUID REFERENCES ` + tables.Manuscripts + `(id) ON DELETE CASCADE,
			volume_id UUID REFERENCES ` + tables.Volumes + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			word_count INTEGER NOT NULL DEFAULT 0,
			sort_key NUMERIC NOT NULL,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			CHECK ((manuscript_id IS NULL) <> (volume_id IS NULL))
		)
	`
	if _, err := pool.Exec(ctx, createChapters); err != nil {
		return err
	}

	createContents := `
		CREATE TABLE IF NOT EXISTS ` + tables.Contents + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			chapter_id UUID NOT NULL UNIQUE REFERENCES ` + tables.Chapters + `(id) ON DELETE CASCADE,
			body TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createContents); err != nil {
		return err
	}

	createVersions := `
		CREATE TABLE IF NOT EXISTS ` + tables.ContentVersions + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			content_id UUID NOT NULL REFERENCES ` + tables.Contents + `(id) ON DELETE CASCADE,
			version INTEGER NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(content_id, version)
		)
	`
	if _, err := pool.Exec(ctx, createVersions); err != nil {
		return err
	}

	loreTables := []string{
		tables.Characters,
		tables.SystemSettings,
		tables.WorldSettings,
		tables.MiscSettings,
	}
	for _, table := range loreTables {
		createLore := `
			CREATE TABLE IF NOT EXISTS ` + table + ` (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				user_id UUID NOT NULL,
				name TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ DEFAULT NOW(),
				updated_at TIMESTAMPTZ DEFAULT NOW()
			)
		`
		if _, err := pool.Exec(ctx, createLore); err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `manuscripts_user ON ` + tables.Manuscripts + `(user_id) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `volumes_manuscript ON ` + tables.Volumes + `(manuscript_id, sort_key)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chapters_manuscript ON ` + tables.Chapters + `(manuscript_id, sort_key)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chapters_volume ON ` + tables.Chapters + `(volume_id, sort_key)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `content_versions_content ON ` + tables.ContentVersions + `(content_id, version DESC)`,
	}
	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.ContentVersions,
		tables.Contents,
		tables.Chapters,
		tables.Volumes,
		tables.Manuscripts,
		tables.Projects,
		tables.Characters,
		tables.SystemSettings,
		tables.WorldSettings,
		tables.MiscSettings,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}
