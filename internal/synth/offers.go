// Package synth builds supplier offers and a starting dashboard from an intake
// survey, before any real supplier has answered.
package synth

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

// Source is the randomness the synthesizer draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

var SupplierNames = []string{
	"Premium Wholesale Co.",
	"Global Supply Partners",
	"Direct Trade Distributors",
	"Quality Goods Network",
	"Bulk Buy Solutions",
	"Trusted Vendor Group",
}

var offerStatuses = []models.OfferStatus{
	models.OfferPending,
	models.OfferNegotiating,
	models.OfferCounterOffer,
}

const (
	minOffers       = 3
	maxOffers       = 4
	minMOQ          = 10
	minLeadDays     = 3
	leadDaySpread   = 7
	fallbackLow     = 10.0
	fallbackSpread  = 50.0
	offerAgeWindow  = 48 * time.Hour
	threadAgeWindow = time.Hour
)

type Synthesizer struct {
	rnd Source
	now func() time.Time
}

// New returns a synthesizer drawing from rnd. A nil clock means time.Now.
func New(rnd Source, now func() time.Time) *Synthesizer {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{rnd: rnd, now: now}
}

// NewSeeded returns a synthesizer whose output is fully determined by seed and now.
func NewSeeded(seed uint64, now func() time.Time) *Synthesizer {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now)
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases name and joins whitespace runs with dashes.
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}

// Offers returns three or four offers for one product, cheapest first.
func (s *Synthesizer) Offers(productName, targetPrice string, quantity float64) []models.Offer {
	base, hasBase := models.PositiveNumber(targetPrice)
	now := s.now()
	slug := Slug(productName)

	count := minOffers + s.rnd.IntN(maxOffers-minOffers+1)
	offers := make([]models.Offer, 0, count)

	for i := 0; i < count; i++ {
		variation := (s.rnd.Float64() - 0.4) * 0.3
		var price float64
		if hasBase {
			price = base * (1 + variation)
		} else {
			price = fallbackLow + s.rnd.Float64()*fallbackSpread
		}

		status := offerStatuses[s.rnd.IntN(len(offerStatuses))]
		leadDays := minLeadDays + s.rnd.IntN(leadDaySpread)

		freight := "Delivered"
		if s.rnd.Float64() <= 0.5 {
			freight = fmt.Sprintf("FOB - Warehouse %c", 'A'+rune(i))
		}

		age := time.Duration(s.rnd.Float64() * float64(offerAgeWindow))

		offers = append(offers, models.Offer{
			ID:           fmt.Sprintf("offer-%s-%d", slug, i),
			SupplierName: SupplierNames[i%len(SupplierNames)],
			PricePerUnit: models.Price(roundCents(price)),
			MinimumOrder: minimumOrder(quantity),
			LeadTime:     fmt.Sprintf("%d days", leadDays),
			FreightTerms: freight,
			Status:       status,
			LastUpdated:  now.Add(-age).UTC(),
		})
	}

	models.SortOffers(offers)
	return offers
}

func minimumOrder(quantity float64) int {
	moq := int(math.Floor(quantity * 0.6))
	if moq < minMOQ {
		return minMOQ
	}
	return moq
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
