package synth

import (
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

const DefaultCategory = "General"

var productStatuses = []models.ProductStatus{
	models.ProductNegotiating,
	models.ProductAwaitingResponse,
	models.ProductCounterReceived,
}

// Submission turns the intake lines into a dashboard: one product per valid
// line, each with synthesized offers, plus at most one unread thread per product.
func (s *Synthesizer) Submission(items []models.InventoryItem) models.DashboardSnapshot {
	now := s.now().UTC()
	snapshot := models.DashboardSnapshot{
		Products: []models.Product{},
		Inbox:    []models.InboxThread{},
	}

	index := 0
	for _, item := range items {
		quantity, ok := models.PositiveNumber(item.Quantity)
		if strings.TrimSpace(item.ProductName) == "" || !ok {
			continue
		}

		unit := string(item.Unit)
		if unit == "" {
			unit = string(models.UnitUnits)
		}

		snapshot.Products = append(snapshot.Products, models.Product{
			ID:          fmt.Sprintf("product-%s-%d", Slug(item.ProductName), index),
			Name:        item.ProductName,
			Category:    DefaultCategory,
			Quantity:    quantity,
			Unit:        unit,
			Status:      productStatuses[s.rnd.IntN(len(productStatuses))],
			LastUpdated: now,
			Notes:       item.Notes,
			Offers:      s.Offers(item.ProductName, item.TargetPrice, quantity),
		})
		index++
	}

	for _, p := range snapshot.Products {
		threads := s.rnd.IntN(2)
		for i := 0; i < threads; i++ {
			snapshot.Inbox = append(snapshot.Inbox, s.thread(p, i, now))
		}
	}

	return snapshot
}

func (s *Synthesizer) thread(p models.Product, i int, now time.Time) models.InboxThread {
	offer := p.Offers[s.rnd.IntN(len(p.Offers))]

	kind := "Price update"
	if offer.Status == models.OfferCounterOffer {
		kind = "Counter offer"
	}

	price := 0.0
	if offer.PricePerUnit != nil {
		price = *offer.PricePerUnit
	}

	age := time.Duration(s.rnd.Float64() * float64(threadAgeWindow))

	return models.InboxThread{
		ID:           fmt.Sprintf("thread-%s-%d", p.ID, i),
		SupplierName: offer.SupplierName,
		Subject:      fmt.Sprintf("Re: %s - %s", p.Name, kind),
		Preview: fmt.Sprintf("We can offer $%.2f/unit with %s lead time. Please confirm if this works for you.",
			price, offer.LeadTime),
		ReceivedAt:       now.Add(-age),
		RelatedProductID: p.ID,
		Unread:           true,
	}
}
