package synth

import (
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

var fixedNow = time.Date(2025, 11, 7, 16, 0, 0, 0, time.UTC)

func clockAt() time.Time { return fixedNow }

// scripted replays fixed draws so tests can pin exact outputs.
type scripted struct {
	floats []float64
	ints   []int
}

func (s *scripted) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scripted) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	i := s.ints[0] % n
	s.ints = s.ints[1:]
	return i
}

func assertSorted(t *testing.T, offers []models.Offer) {
	t.Helper()
	for i := 1; i < len(offers); i++ {
		if *offers[i-1].PricePerUnit > *offers[i].PricePerUnit {
			t.Fatalf("expected ascending prices, got %v then %v", *offers[i-1].PricePerUnit, *offers[i].PricePerUnit)
		}
	}
}

func TestOffers_PropertiesHoldAcrossSeeds(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		s := NewSeeded(seed, clockAt)
		offers := s.Offers("Organic Apples", "1.50", 5)

		if len(offers) < 3 || len(offers) > 4 {
			t.Fatalf("seed %d: expected 3 or 4 offers, got %d", seed, len(offers))
		}
		assertSorted(t, offers)

		for _, o := range offers {
			if o.MinimumOrder < 10 {
				t.Errorf("seed %d: expected MOQ >= 10, got %d", seed, o.MinimumOrder)
			}
			p := *o.PricePerUnit
			if p < 1.50*0.88-0.01 || p > 1.50*1.18+0.01 {
				t.Errorf("seed %d: price %v outside the target band", seed, p)
			}
			if o.Status != models.OfferPending && o.Status != models.OfferNegotiating && o.Status != models.OfferCounterOffer {
				t.Errorf("seed %d: unexpected status %s", seed, o.Status)
			}
			if !strings.HasSuffix(o.LeadTime, " days") {
				t.Errorf("seed %d: unexpected lead time %q", seed, o.LeadTime)
			}
			if o.LastUpdated.After(fixedNow) || fixedNow.Sub(o.LastUpdated) > 48*time.Hour {
				t.Errorf("seed %d: last updated %v outside the last 48h", seed, o.LastUpdated)
			}
		}
	}
}

func TestOffers_NoTargetPriceDrawsFromRange(t *testing.T) {
	for seed := uint64(0); seed < 100; seed++ {
		offers := NewSeeded(seed, clockAt).Offers("Widgets", "", 100)
		for _, o := range offers {
			if *o.PricePerUnit < 10 || *o.PricePerUnit > 60 {
				t.Fatalf("seed %d: expected price in [10, 60], got %v", seed, *o.PricePerUnit)
			}
		}
	}
}

func TestOffers_ExactValuesFromScriptedSource(t *testing.T) {
	src := &scripted{
		// per offer: variation, freight, age
		floats: []float64{
			0.9, 0.7, 0,
			0.1, 0.2, 0,
			0.4, 0.9, 0,
		},
		// count(0 -> 3), then per offer: status, lead
		ints: []int{0, 2, 6, 0, 0, 1, 3},
	}
	s := New(src, clockAt)

	offers := s.Offers("Oat Milk", "20", 200)

	if len(offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(offers))
	}

	// offer 1: 20*(1+(0.1-0.4)*0.3)=18.2, offer 2: 20, offer 0: 20*(1+0.15)=23
	wantIDs := []string{"offer-oat-milk-1", "offer-oat-milk-2", "offer-oat-milk-0"}
	wantPrices := []float64{18.2, 20, 23}
	for i, o := range offers {
		if o.ID != wantIDs[i] {
			t.Errorf("offer %d: expected id %s, got %s", i, wantIDs[i], o.ID)
		}
		if *o.PricePerUnit != wantPrices[i] {
			t.Errorf("offer %d: expected price %v, got %v", i, wantPrices[i], *o.PricePerUnit)
		}
		if o.MinimumOrder != 120 {
			t.Errorf("offer %d: expected MOQ 120, got %d", i, o.MinimumOrder)
		}
	}

	first := offers[2]
	if first.SupplierName != "Premium Wholesale Co." || first.Status != models.OfferCounterOffer {
		t.Errorf("unexpected first offer %+v", first)
	}
	if first.LeadTime != "9 days" || first.FreightTerms != "Delivered" {
		t.Errorf("expected 9 days Delivered, got %s %s", first.LeadTime, first.FreightTerms)
	}
	if offers[0].FreightTerms != "FOB - Warehouse B" {
		t.Errorf("expected FOB - Warehouse B, got %s", offers[0].FreightTerms)
	}
}

func TestOffers_StableOnTies(t *testing.T) {
	src := &scripted{floats: []float64{0.5, 0.9, 0, 0.5, 0.9, 0, 0.5, 0.9, 0}}
	offers := New(src, clockAt).Offers("Eggs", "10", 20)

	for i, o := range offers {
		if o.ID != "offer-eggs-"+string(rune('0'+i)) {
			t.Errorf("expected generation order on ties, got %s at %d", o.ID, i)
		}
	}
}

func TestSubmission_FiltersAndBuildsProducts(t *testing.T) {
	items := []models.InventoryItem{
		{ID: "1", ProductName: "  ", Quantity: "10"},
		{ID: "2", ProductName: "Green Apples", Quantity: "100", Unit: models.UnitLbs, TargetPrice: "1.2", Notes: "crisp"},
		{ID: "3", ProductName: "Pears", Quantity: "0"},
		{ID: "4", ProductName: "Oat Milk", Quantity: "12", Unit: models.UnitCases},
	}

	snap := NewSeeded(7, clockAt).Submission(items)

	if len(snap.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(snap.Products))
	}
	apples := snap.Products[0]
	if apples.ID != "product-green-apples-0" || apples.Name != "Green Apples" {
		t.Errorf("unexpected product %s %s", apples.ID, apples.Name)
	}
	if snap.Products[1].ID != "product-oat-milk-1" {
		t.Errorf("expected index over filtered items, got %s", snap.Products[1].ID)
	}
	if apples.Category != "General" || apples.Unit != "lbs" || apples.Quantity != 100 || apples.Notes != "crisp" {
		t.Errorf("unexpected product fields %+v", apples)
	}
	if apples.ConfirmedOfferID != nil {
		t.Error("expected no confirmed offer")
	}
	if !apples.LastUpdated.Equal(fixedNow) {
		t.Errorf("expected last updated %v, got %v", fixedNow, apples.LastUpdated)
	}
	if apples.Status == models.ProductConfirmed {
		t.Error("expected an open negotiation status")
	}
	for _, p := range snap.Products {
		assertSorted(t, p.Offers)
	}
	if err := snap.Validate(); err != nil {
		t.Errorf("expected valid snapshot, got %v", err)
	}
}

func TestSubmission_InboxThreads(t *testing.T) {
	items := []models.InventoryItem{
		{ProductName: "A", Quantity: "1"},
		{ProductName: "B", Quantity: "1"},
		{ProductName: "C", Quantity: "1"},
	}
	for seed := uint64(0); seed < 50; seed++ {
		snap := NewSeeded(seed, clockAt).Submission(items)
		perProduct := map[string]int{}
		for _, th := range snap.Inbox {
			perProduct[th.RelatedProductID]++
			if !th.Unread {
				t.Errorf("seed %d: expected unread thread", seed)
			}
			if th.ReceivedAt.After(fixedNow) || fixedNow.Sub(th.ReceivedAt) > time.Hour {
				t.Errorf("seed %d: received at %v outside the last hour", seed, th.ReceivedAt)
			}
			if !snap.HasProduct(th.RelatedProductID) {
				t.Errorf("seed %d: thread references unknown product %s", seed, th.RelatedProductID)
			}
			if !strings.HasPrefix(th.Subject, "Re: ") {
				t.Errorf("seed %d: unexpected subject %q", seed, th.Subject)
			}
		}
		for id, n := range perProduct {
			if n > 1 {
				t.Errorf("seed %d: product %s has %d threads", seed, id, n)
			}
		}
	}
}

func TestSubmission_Deterministic(t *testing.T) {
	items := []models.InventoryItem{{ProductName: "Apples", Quantity: "100"}}
	a := NewSeeded(42, clockAt).Submission(items)
	b := NewSeeded(42, clockAt).Submission(items)

	if len(a.Products[0].Offers) != len(b.Products[0].Offers) {
		t.Fatal("expected same offer count for the same seed")
	}
	for i := range a.Products[0].Offers {
		if *a.Products[0].Offers[i].PricePerUnit != *b.Products[0].Offers[i].PricePerUnit {
			t.Errorf("expected identical prices for the same seed")
		}
	}
}

func TestSlug(t *testing.T) {
	if got := Slug("Barista  Oat\tMilk"); got != "barista-oat-milk" {
		t.Errorf("expected barista-oat-milk, got %s", got)
	}
}
