package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-dairy/auth"
	"github.com/diewo77/go-dairy/internal/blob"
	"github.com/diewo77/go-dairy/internal/config"
	"github.com/diewo77/go-dairy/internal/db"
	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/internal/store"
	"github.com/joho/godotenv"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Seed missing collections and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()
	m := metrics.New()

	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}

	st := store.New(backend, store.WithPrefix(cfg.Store.KeyPrefix), store.WithMetrics(m))
	repo := repository.Open(ctx, st)
	if *seedOnlyFlag {
		if err := st.LastError(); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding completed successfully")
		return
	}
	m.SetStock(repo.ListProducts(ctx))

	photos, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		log.Fatalf("Failed to open photo store: %v", err)
	}

	installSessionVerifier(repo)

	routerCfg := NewRouterConfig(*cfg, repo, m, photos)
	appHandler := NewApp(routerCfg, m, cfg.App.SimulatedLatency)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (dev=%v store=%s photos=%s)",
			cfg.Server.Port, cfg.App.Dev, cfg.Database.Driver, photos.Driver())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// openBackend returns the record store backend for cfg, migrating the database when asked to.
func openBackend(cfg *config.Config) (store.Backend, error) {
	if cfg.Database.Driver == "memory" {
		if *migrateOnlyFlag {
			log.Println("Memory store selected, nothing to migrate")
		}
		return store.NewMemoryBackend(), nil
	}
	dbConn, err := db.Connect(cfg.Database, cfg.App.Dev)
	if err != nil {
		return nil, err
	}
	if cfg.App.Migrations || *migrateOnlyFlag {
		if err := db.Migrate(dbConn); err != nil {
			return nil, err
		}
		log.Println("Migrations completed")
	}
	return store.NewGormBackend(dbConn), nil
}

// installSessionVerifier makes sessions of deleted staff stop working on the next request.
func installSessionVerifier(repo *repository.Repository) {
	auth.SetVerifier(func(ctx context.Context, s auth.Session) bool {
		if s.IsAdmin() {
			return true
		}
		_, err := repo.GetStaff(ctx, s.SubjectID)
		return err == nil
	})
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
