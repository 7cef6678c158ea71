package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <product-id> <offer-id>",
	Short: "Confirm a supplier offer for a product",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfirm,
}

func init() {
	rootCmd.AddCommand(confirmCmd)
}

func runConfirm(cmd *cobra.Command, args []string) error {
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

	loadDashboard(ctx, sess.sync)
	out := cmd.OutOrStdout()
	renderBanner(out, sess.notes.Banner())

	productID, offerID := args[0], args[1]
	outcome := sess.sync.Confirm(ctx, productID, offerID)
	if outcome == dashboard.OutcomeSkipped {
		return fmt.Errorf("no offer %q on product %q", offerID, productID)
	}

	renderToast(out, sess.notes)
	if p, ok := sess.sync.Snapshot().FindProduct(productID); ok {
		renderProduct(out, p, time.Now())
	}
	if outcome == dashboard.OutcomeReverted {
		return fmt.Errorf("confirmation was rolled back")
	}
	return nil
}
