package models

import (
	"errors"
	"testing"
	"time"
)

func sampleProduct() Product {
	return Product{
		ID:     "product-apples",
		Name:   "Apples",
		Status: ProductNegotiating,
		Offers: []Offer{
			{ID: "offer-a", PricePerUnit: Price(1.50), Status: OfferPending},
			{ID: "offer-b", PricePerUnit: Price(1.20), Status: OfferConfirmed},
			{ID: "offer-c", PricePerUnit: nil, Status: OfferNegotiating},
			{ID: "offer-d", PricePerUnit: Price(1.20), Status: OfferCounterOffer},
		},
	}
}

func TestConfirmOffer_DemotesPreviousConfirmation(t *testing.T) {
	other := Product{ID: "product-milk", Offers: []Offer{{ID: "offer-x", Status: OfferPending}}}
	s := DashboardSnapshot{Products: []Product{sampleProduct(), other}}

	if err := s.ConfirmOffer("product-apples", "offer-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := s.Products[0]
	if p.Status != ProductConfirmed {
		t.Errorf("expected status confirmed, got %s", p.Status)
	}
	if p.ConfirmedOfferID == nil || *p.ConfirmedOfferID != "offer-a" {
		t.Fatalf("expected confirmed offer id offer-a, got %v", p.ConfirmedOfferID)
	}

	want := map[string]OfferStatus{
		"offer-a": OfferConfirmed,
		"offer-b": OfferOutbid,
		"offer-c": OfferNegotiating,
		"offer-d": OfferCounterOffer,
	}
	for _, o := range p.Offers {
		if o.Status != want[o.ID] {
			t.Errorf("offer %s: expected %s, got %s", o.ID, want[o.ID], o.Status)
		}
	}
	if s.Products[1].Offers[0].Status != OfferPending {
		t.Errorf("expected other product untouched, got %s", s.Products[1].Offers[0].Status)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid snapshot, got %v", err)
	}
}

func TestConfirmOffer_UnknownIDs(t *testing.T) {
	s := DashboardSnapshot{Products: []Product{sampleProduct()}}

	if err := s.ConfirmOffer("missing", "offer-a"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if err := s.ConfirmOffer("product-apples", "missing"); !errors.Is(err, ErrOfferNotFound) {
		t.Errorf("expected ErrOfferNotFound, got %v", err)
	}
	if s.Products[0].Status != ProductNegotiating {
		t.Errorf("expected product untouched, got %s", s.Products[0].Status)
	}
}

func TestRankedOffers_CheapestFirstUnpricedLast(t *testing.T) {
	ranked := sampleProduct().RankedOffers()

	got := []string{}
	for _, o := range ranked {
		got = append(got, o.ID)
	}
	want := []string{"offer-b", "offer-d", "offer-a", "offer-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := DashboardSnapshot{Products: []Product{sampleProduct()}}
	c := s.Clone()

	*c.Products[0].Offers[0].PricePerUnit = 99
	c.Products[0].Offers[1].Status = OfferOutbid

	if *s.Products[0].Offers[0].PricePerUnit != 1.50 {
		t.Errorf("expected original price untouched, got %v", *s.Products[0].Offers[0].PricePerUnit)
	}
	if s.Products[0].Offers[1].Status != OfferConfirmed {
		t.Errorf("expected original status untouched, got %s", s.Products[0].Offers[1].Status)
	}
}

func TestValidate(t *testing.T) {
	dangling := "offer-z"
	tests := []struct {
		name    string
		product Product
		wantErr bool
	}{
		{name: "valid", product: sampleProduct(), wantErr: false},
		{name: "empty id", product: Product{}, wantErr: true},
		{
			name:    "dangling confirmation",
			product: Product{ID: "p", ConfirmedOfferID: &dangling, Offers: []Offer{{ID: "offer-a"}}},
			wantErr: true,
		},
		{
			name: "two confirmed",
			product: Product{ID: "p", Offers: []Offer{
				{ID: "a", Status: OfferConfirmed},
				{ID: "b", Status: OfferConfirmed},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DashboardSnapshot{Products: []Product{tt.product}}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMarkThreadRead(t *testing.T) {
	s := DashboardSnapshot{Inbox: []InboxThread{{ID: "t1", Unread: true, RelatedProductID: "p"}}}
	if !s.HasUnread() {
		t.Fatal("expected unread thread")
	}
	th, ok := s.MarkThreadRead("t1")
	if !ok || th.RelatedProductID != "p" {
		t.Fatalf("expected thread t1, got %+v (%v)", th, ok)
	}
	if s.HasUnread() {
		t.Error("expected no unread threads")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 11, 7, 16, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{20 * time.Second, "Just now"},
		{15 * time.Minute, "15m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{14 * 24 * time.Hour, "2w ago"},
		{60 * 24 * time.Hour, "Sep 8"},
	}
	for _, tt := range tests {
		if got := RelativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("%v ago: expected %q, got %q", tt.ago, tt.want, got)
		}
	}
	if got := RelativeTime(time.Time{}, now); got != "—" {
		t.Errorf("expected dash for zero time, got %q", got)
	}
}

func TestSummary(t *testing.T) {
	confirmed := sampleProduct()
	confirmed.ID = "p-2"

	s := DashboardSnapshot{
		Products: []Product{sampleProduct(), confirmed},
		Inbox:    []InboxThread{{ID: "t-1", Unread: true}, {ID: "t-2"}},
	}
	if err := s.ConfirmOffer("p-2", "offer-a"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	got := s.Summary()
	want := Summary{TotalProducts: 2, ConfirmedProducts: 1, TotalOffers: 8, UnreadThreads: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
