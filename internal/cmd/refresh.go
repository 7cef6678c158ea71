package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the dashboard from the agent service",
	RunE:  runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	sess, err := newSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.sync.Refresh(ctx)

	out := cmd.OutOrStdout()
	renderToast(out, sess.notes)
	renderBanner(out, sess.notes.Banner())
	renderProducts(out, sess.sync.State(), time.Now())
	return nil
}
