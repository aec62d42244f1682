package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"postfeed/internal/api/middleware"
	"postfeed/internal/api/routes"
	"postfeed/internal/config"
	"postfeed/internal/core/posts"
	"postfeed/internal/db/memory"
	"postfeed/internal/db/migrations"
	postgresRepo "postfeed/internal/db/postgres"
)

func main() {
	port := flag.String("port", "", "Override SERVER_PORT")
	seed := flag.Int("seed", -1, "Override SEED_POSTS")
	flag.Parse()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *seed >= 0 {
		cfg.SeedPosts = *seed
	}

	repo, closeRepo, err := openRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer closeRepo()

	if err := seedPosts(context.Background(), repo, cfg.SeedPosts); err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}

	postService := posts.NewPostService(repo)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()
	r.Use(rateLimiter.Middleware)

	routes.RegisterPostRoutes(r, postService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("postfeed fixture server starting on port %s\n", cfg.Port)
		fmt.Printf("Rate limit: %d requests per %s per client\n", cfg.RateLimitRequests, cfg.RateLimitWindow)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

// openRepository picks PostgreSQL when databaseURL is set and the in-memory store otherwise
func openRepository(databaseURL string) (posts.Repository, func(), error) {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set, using in-memory storage")
		return memory.NewPostRepository(), func() {}, nil
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Println("Connected to database")

	if err := migrations.Up(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Println("Migrations completed successfully")

	return postgresRepo.NewPostRepository(db), func() { _ = db.Close() }, nil
}

// seedPosts fills an empty repository with n generated posts
func seedPosts(ctx context.Context, repo posts.Repository, n int) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || n == 0 {
		log.Printf("[SEED] Skipping seed (%d posts stored)", count)
		return nil
	}

	for _, draft := range posts.GeneratePosts(n, 1) {
		post := &posts.Post{Title: draft.Title, Body: draft.Body, UserID: draft.UserID}
		if err := repo.Create(ctx, post); err != nil {
			return fmt.Errorf("failed to seed post: %w", err)
		}
	}
	log.Printf("[SEED] Stored %d generated posts", n)
	return nil
}
