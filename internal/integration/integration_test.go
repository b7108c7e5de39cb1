package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"funnelpress/internal/app"
	"funnelpress/internal/domain"
	pgstore "funnelpress/internal/infra/postgres"
	pgmigrations "funnelpress/internal/infra/postgres/migrations"
	infraredis "funnelpress/internal/infra/redis"
)

func TestEditAndPublishEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	quizzes := pgstore.NewQuizStore(pool)
	articles := pgstore.NewArticleStore(pool)
	settings := pgstore.NewSettingsStore(pool)

	content := app.NewContentService(quizzes, articles, settings)
	editor := app.NewEditorService(infraredis.NewSessionStore(redisClient, time.Minute), quizzes)

	doc, err := content.CreateQuiz(ctx, "Morning Routine Quiz")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if doc.Slug != "morning-routine-quiz" {
		t.Fatalf("unexpected slug %q", doc.Slug)
	}

	// Edit the draft through a session and save.
	if _, err := editor.Open(ctx, doc.ID); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := editor.Apply(ctx, doc.ID, app.Operation{Type: "addSlide", Kind: "results"}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	state, err := editor.Save(ctx, doc.ID)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if state.Dirty {
		t.Fatalf("save should clear the dirty flag")
	}

	stored, err := quizzes.GetQuiz(ctx, doc.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.Slides) != 2 {
		t.Fatalf("expected 2 slides after save, got %d", len(stored.Slides))
	}

	// Publish and read through the cache like a visitor would.
	if _, err := content.SetQuizStatus(ctx, doc.ID, domain.StatusPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	loader := app.PublishedLoader{Quizzes: quizzes, Articles: articles}
	cache := infraredis.NewContentCache(redisClient, loader, time.Minute)
	public, err := cache.PublishedQuiz(ctx, doc.Slug)
	if err != nil {
		t.Fatalf("published quiz: %v", err)
	}
	if public.ID != doc.ID || len(public.Slides) != 2 {
		t.Fatalf("published copy mismatch: id=%s slides=%d", public.ID, len(public.Slides))
	}

	// Settings rows round-trip too.
	pixel, err := content.SavePixel(ctx, domain.Pixel{Provider: domain.PixelFacebook, PixelID: "123", Enabled: true})
	if err != nil {
		t.Fatalf("save pixel: %v", err)
	}
	pixels, err := settings.ListPixels(ctx)
	if err != nil {
		t.Fatalf("list pixels: %v", err)
	}
	if len(pixels) != 1 || pixels[0].ID != pixel.ID {
		t.Fatalf("pixel did not round-trip: %+v", pixels)
	}
}

func applyMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "funnel", "POSTGRES_PASSWORD": "funnelpass", "POSTGRES_DB": "funneldb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://funnel:funnelpass@%s:%s/funneldb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
