package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"funnelpress/internal/app"
	"funnelpress/internal/config"
	"funnelpress/internal/domain"
	"funnelpress/internal/editor"
	"funnelpress/internal/infra/memory"
	inframinio "funnelpress/internal/infra/minio"
	"funnelpress/internal/infra/openai"
	pgstore "funnelpress/internal/infra/postgres"
	redisinfra "funnelpress/internal/infra/redis"
	transport "funnelpress/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the funnel publishing server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var quizzes app.QuizStore
	var articles app.ArticleStore
	var settings app.SettingsStore
	if pool != nil {
		quizzes = pgstore.NewQuizStore(pool)
		articles = pgstore.NewArticleStore(pool)
		settings = pgstore.NewSettingsStore(pool)
	} else {
		quizzes = memory.NewQuizStore(sampleQuiz())
		articles = memory.NewArticleStore()
		settings = memory.NewSettingsStore()
	}

	loader := app.PublishedLoader{Quizzes: quizzes, Articles: articles}
	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 5*time.Minute)
	var published app.PublishedContent
	if redisClient != nil {
		published = redisinfra.NewContentCache(redisClient, loader, cacheTTL)
	} else {
		published = memory.NewContentCache(loader, cacheTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessionTTL := config.TTLDuration(cfg.Redis.TTL, time.Hour)
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var images app.ImageStore
	if cfg.Minio.Endpoint != "" {
		images, err = inframinio.NewImageStore(ctx, inframinio.Config{
			Endpoint:      cfg.Minio.Endpoint,
			AccessKey:     cfg.Minio.AccessKey,
			SecretKey:     cfg.Minio.SecretKey,
			Bucket:        cfg.Minio.Bucket,
			UseSSL:        cfg.Minio.UseSSL,
			PublicBaseURL: cfg.Minio.PublicBaseURL,
		})
		if err != nil {
			return err
		}
	} else {
		images = memory.NewImageStore("")
	}

	contentService := app.NewContentService(quizzes, articles, settings)
	editorService := app.NewEditorService(sessions, quizzes)
	renderService := app.NewRenderService(published, settings)

	var generationService *app.GenerationService
	if cfg.OpenAI.APIKey != "" {
		generator := openai.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		generationService = app.NewGenerationService(generator, contentService, images)
	}

	adminPassword := cfg.Admin.Password
	if adminPassword == "" {
		adminPassword = "admin"
		log.Println("admin password not configured, using default")
	}
	sessionSecret := cfg.Admin.SessionSecret
	if sessionSecret == "" {
		sessionSecret = domain.NewID() + domain.NewID()
	}
	auth := transport.NewAuth(sessionSecret, adminPassword)

	mux := transport.NewRouter(
		auth,
		transport.NewContentHandler(contentService, generationService),
		transport.NewPublicHandler(renderService),
		transport.NewUploadHandler(images),
		transport.NewEditorWSHandler(editorService),
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting funnelpress on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuiz seeds the in-memory store so the service is usable without
// a database.
func sampleQuiz() domain.QuizDocument {
	doc := domain.QuizDocument{
		ID:       "sample-quiz",
		Slug:     "sample-quiz",
		Name:     "Sample Quiz",
		Status:   domain.StatusPublished,
		Settings: domain.DefaultSettings(),
		Slides: []domain.Slide{
			editor.NewSlide(domain.KindTextChoice),
			editor.NewSlide(domain.KindResults),
		},
	}
	doc.Slides[0].Content.Headline = "How do you take your coffee?"
	return doc
}
