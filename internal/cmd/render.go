package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
	"github.com/rogerio-castellano/sourcing-desk/internal/notify"
	"github.com/rogerio-castellano/sourcing-desk/internal/survey"
)

func renderBanner(w io.Writer, banner string) {
	if banner != "" {
		fmt.Fprintf(w, "⚠️  %s\n\n", banner)
	}
}

func renderToast(w io.Writer, notes *notify.Center) {
	t, ok := notes.Toast()
	if !ok {
		return
	}
	icon := "ℹ️ "
	switch t.Kind {
	case notify.KindSuccess:
		icon = "✅"
	case notify.KindError:
		icon = "❌"
	}
	fmt.Fprintf(w, "%s %s\n", icon, t.Message)
}

func renderReview(w io.Writer, s survey.State) {
	fmt.Fprintf(w, "📝 %s\n", survey.StepReview)
	fmt.Fprintf(w, "   %s, %s\n", s.Profile.StoreName, s.Profile.Location)
	fmt.Fprintf(w, "   Contact: %s <%s>\n", s.Profile.ContactName, s.Profile.ContactEmail)
	for _, item := range s.Items {
		line := fmt.Sprintf("   - %s: %s %s", item.ProductName, item.Quantity, item.Unit)
		if item.TargetPrice != "" {
			line += fmt.Sprintf(" @ $%s", item.TargetPrice)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "   Budget: $%s\n\n", s.Budget.TotalBudget)
}

func formatPrice(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func renderProducts(w io.Writer, s dashboard.State, now time.Time) {
	sum := s.Snapshot.Summary()
	fmt.Fprintf(w, "📦 %d products, %d confirmed, %d offers, %d unread threads\n\n",
		sum.TotalProducts, sum.ConfirmedProducts, sum.TotalOffers, sum.UnreadThreads)

	if len(s.Snapshot.Products) == 0 {
		fmt.Fprintln(w, "No products yet.")
		return
	}
	for _, p := range s.Snapshot.Products {
		renderProduct(w, p, now)
	}
}

func renderProduct(w io.Writer, p models.Product, now time.Time) {
	fmt.Fprintf(w, "%s [%s] %s\n", p.Name, p.ID, p.Status.Label())
	details := []string{fmt.Sprintf("%g %s", p.Quantity, p.Unit)}
	if p.Category != "" {
		details = append(details, p.Category)
	}
	details = append(details, "updated "+models.RelativeTime(p.LastUpdated, now))
	fmt.Fprintf(w, "  %s\n", strings.Join(details, " · "))

	if len(p.Offers) == 0 {
		fmt.Fprintln(w, "  No offers yet.")
		fmt.Fprintln(w)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  \tSUPPLIER\tPRICE\tMIN ORDER\tLEAD TIME\tFREIGHT\tSTATUS\tOFFER")
	for _, o := range p.RankedOffers() {
		mark := ""
		if p.IsConfirmed(o) {
			mark = "★"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			mark, o.SupplierName, formatPrice(o.PricePerUnit), o.MinimumOrder,
			o.LeadTime, o.FreightTerms, o.Status.Label(), o.ID)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func renderInbox(w io.Writer, s dashboard.State, now time.Time) {
	if len(s.Snapshot.Inbox) == 0 {
		fmt.Fprintln(w, "No supplier threads.")
		return
	}

	names := make(map[string]string, len(s.Snapshot.Products))
	for _, p := range s.Snapshot.Products {
		names[p.ID] = p.Name
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " \tFROM\tSUBJECT\tPRODUCT\tRECEIVED")
	for _, t := range s.Snapshot.Inbox {
		mark := ""
		if t.Unread {
			mark = "●"
		}
		product := names[t.RelatedProductID]
		if product == "" {
			product = t.RelatedProductID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, t.SupplierName, t.Subject, product, models.RelativeTime(t.ReceivedAt, now))
	}
	tw.Flush()
}
