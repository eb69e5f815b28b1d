package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Scribe/internal/api/middleware"
	"Scribe/internal/api/routes"
	"Scribe/internal/config"
	"Scribe/internal/core/assets"
	"Scribe/internal/core/comments"
	"Scribe/internal/core/markup"
	"Scribe/internal/core/posts"
	"Scribe/internal/core/users"
	"Scribe/internal/db/memory"
	"Scribe/internal/db/migrations"
	"Scribe/internal/db/mongodb"
	postgresRepo "Scribe/internal/db/postgres"
)

// repositories is the storage backend selected at startup
type repositories struct {
	users    users.UserRepository
	posts    posts.Repository
	comments comments.Repository
	close    func()
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	defer repos.close()

	userService := users.NewUserService(repos.users, users.DefaultCacheSize, logger)
	postService := posts.NewPostService(repos.posts, userService, markup.NewRenderer(), logger)
	commentService := comments.NewCommentService(repos.comments, repos.posts, userService, logger)

	store, err := assets.NewDiskStore(cfg.UploadDir, assets.DefaultMaxDimension, logger)
	if err != nil {
		log.Fatal("Failed to prepare upload directory:", err)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	handler := routes.NewRouter(routes.Deps{
		Posts:          postService,
		Comments:       commentService,
		Assets:         store,
		Auth:           middleware.NewJWTAuthMiddleware(cfg.JWTSecret, userService),
		RateLimiter:    rateLimiter,
		UploadDir:      store.Dir(),
		AllowedOrigins: splitOrigins(cfg.FrontendURL),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"store", cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Info("connected to postgres, migrations applied")

		return &repositories{
			users:    postgresRepo.NewUserRepository(db),
			posts:    postgresRepo.NewPostRepository(db),
			comments: postgresRepo.NewCommentRepository(db),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			},
		}, nil

	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, db, err := mongodb.Connect(connectCtx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(connectCtx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		logger.Info("connected to mongodb", "database", cfg.MongoDB)

		return &repositories{
			users:    mongodb.NewUserRepository(db),
			posts:    mongodb.NewPostRepository(db),
			comments: mongodb.NewCommentRepository(db),
			close: func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(disconnectCtx); err != nil {
					logger.Error("failed to disconnect from mongodb", "error", err)
				}
			},
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return &repositories{
			users:    memory.NewUserRepository(),
			posts:    memory.NewPostRepository(),
			comments: memory.NewCommentRepository(),
			close:    func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// splitOrigins accepts a comma-separated FRONTEND_URL
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
