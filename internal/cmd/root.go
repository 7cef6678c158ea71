package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/sourcing-desk/internal/clock"
	"github.com/rogerio-castellano/sourcing-desk/internal/config"
	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/notify"
	"github.com/rogerio-castellano/sourcing-desk/internal/redissvc"
	"github.com/rogerio-castellano/sourcing-desk/internal/remote"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "sourcing",
	Short: "Sourcing Desk - restock intake and supplier negotiation",
	Long: `Sourcing Desk collects a store's restock needs through a short intake
survey, turns them into supplier offers, and tracks the negotiation on a
dashboard backed by the agent service.

Run "sourcing serve" for a local demo service, then point the other commands
at it with api.base_url.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// session is the dashboard side of the app as the CLI commands use it.
type session struct {
	client  *remote.Client
	sync    *dashboard.Synchronizer
	notes   *notify.Center
	closers []func()
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func newSession(ctx context.Context, cfg *config.Config) (*session, error) {
	client, err := remote.NewClient(remote.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
		Burst:         cfg.API.Burst,
	})
	if err != nil {
		return nil, err
	}

	s := &session{client: client}
	notes := notify.NewCenter(clock.Real{}, cfg.Dashboard.ToastDuration)
	s.notes = notes
	s.closers = append(s.closers, notes.Close)

	var fallback dashboard.FallbackSource = dashboard.MustStaticFallback()
	if cfg.Redis.Addr != "" {
		rdb, err := redissvc.NewClient(ctx, cfg.Redis.Addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  redis unavailable, using bundled fallback data: %v\n", err)
		} else {
			s.closers = append(s.closers, func() { rdb.Close() })
			fallback = redissvc.NewLastKnownGood(rdb, cfg.Redis.Key, cfg.Redis.TTL, fallback)
		}
	}

	s.sync = dashboard.NewSynchronizer(client, notes, dashboard.Options{
		Mode:     cfg.ReconciliationMode(),
		Fallback: fallback,
	})
	return s, nil
}

// loadDashboard fetches the dashboard if nothing is loaded yet. A failed fetch
// leaves the fallback data in place and is only logged.
func loadDashboard(ctx context.Context, sync *dashboard.Synchronizer) {
	if err := sync.EnsureLoaded(ctx); err != nil {
		log.Printf("dashboard loaded from fallback: %v", err)
	}
}
