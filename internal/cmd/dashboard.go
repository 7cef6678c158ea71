package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
)

var (
	dashboardInbox   bool
	dashboardProduct string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show products and supplier offers from the agent service",
	Long: `Loads the dashboard from the agent service and prints every product with
its offers ranked by price. When the service cannot be reached the last known
good copy (or the bundled demo data) is shown with a warning.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().BoolVar(&dashboardInbox, "inbox", false, "show supplier threads instead of products")
	dashboardCmd.Flags().StringVar(&dashboardProduct, "product", "", "show only this product")
}

func runDashboard(cmd *cobra.Command, args []string) error {
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
	if dashboardProduct != "" && !sess.sync.Select(dashboardProduct) {
		return fmt.Errorf("unknown product %q", dashboardProduct)
	}

	out := cmd.OutOrStdout()
	renderBanner(out, sess.notes.Banner())
	if dashboardInbox {
		sess.sync.SetView(dashboard.ViewInbox)
		renderInbox(out, sess.sync.State(), time.Now())
		return nil
	}
	if dashboardProduct != "" {
		p, _ := sess.sync.SelectedProduct()
		renderProduct(out, p, time.Now())
		return nil
	}
	renderProducts(out, sess.sync.State(), time.Now())
	return nil
}
