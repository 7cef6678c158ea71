package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/sourcing-desk/internal/config"
	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/db"
	"github.com/rogerio-castellano/sourcing-desk/internal/http/handlers"
	rl "github.com/rogerio-castellano/sourcing-desk/internal/http/rate_limiter"
	"github.com/rogerio-castellano/sourcing-desk/internal/http/router"
	"github.com/rogerio-castellano/sourcing-desk/internal/messaging"
	"github.com/rogerio-castellano/sourcing-desk/internal/repo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the demo agent service",
	Long: `Start a local agent service that serves the dashboard API:
- GET  /api/dashboard
- PUT  /api/dashboard
- GET  /api/dashboard/metrics
- POST /api/inventory/{id}/confirm

The dashboard is kept in Postgres when db.dsn is set and in memory otherwise.
Confirmations are published to Kafka when kafka.brokers is set.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Println("🚀 Sourcing Desk service starting...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSnapshotRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := seedIfEmpty(ctx, store); err != nil {
		return err
	}
	handlers.SetSnapshotRepo(store)

	publisher := messaging.ConfirmationPublisher(messaging.Noop{})
	if len(cfg.Kafka.Brokers) > 0 {
		fmt.Printf("📨 Publishing confirmations to %s\n", cfg.Kafka.Topic)
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()
	handlers.SetPublisher(publisher)

	var visitors *rl.Visitors
	if cfg.Server.RatePerSecond > 0 {
		visitors = rl.NewVisitors(cfg.Server.RatePerSecond, cfg.Server.Burst)
		go visitors.StartVisitorCleanupLoop(ctx)
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.NewRouter(visitors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("🌐 Listening on %s\n", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Println("Server exited gracefully")
	return nil
}

func openSnapshotRepo(ctx context.Context, cfg *config.Config) (repo.SnapshotRepository, func(), error) {
	if cfg.DB.DSN == "" {
		fmt.Println("💾 Keeping the dashboard in memory")
		return repo.NewInMemorySnapshotRepository(), func() {}, nil
	}

	fmt.Println("🔌 Connecting to database...")
	database, err := db.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := repo.NewPostgresSnapshotRepository(database)
	if err := store.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	fmt.Println("✅ Database connected successfully")
	return store, func() { database.Close() }, nil
}

// seedIfEmpty stores the bundled demo dashboard when nothing is stored yet.
func seedIfEmpty(ctx context.Context, store repo.SnapshotRepository) error {
	_, err := store.Load(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrSnapshotNotFound) {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	if err := store.Save(ctx, dashboard.MustStaticFallback().Snapshot(ctx)); err != nil {
		return fmt.Errorf("failed to seed dashboard: %w", err)
	}
	fmt.Println("🌱 Seeded the demo dashboard")
	return nil
}

