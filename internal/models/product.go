package models

import (
	"sort"
	"time"
)

type ProductStatus string

const (
	ProductNegotiating      ProductStatus = "negotiating"
	ProductAwaitingResponse ProductStatus = "awaiting-response"
	ProductCounterReceived  ProductStatus = "counter-received"
	ProductConfirmed        ProductStatus = "confirmed"
)

// Label returns the text shown next to a product on the dashboard.
func (s ProductStatus) Label() string {
	switch s {
	case ProductNegotiating:
		return "Negotiating"
	case ProductAwaitingResponse:
		return "Awaiting response"
	case ProductCounterReceived:
		return "Counter offer received"
	case ProductConfirmed:
		return "Confirmed"
	default:
		return "In review"
	}
}

type OfferStatus string

const (
	OfferPending      OfferStatus = "pending"
	OfferNegotiating  OfferStatus = "negotiating"
	OfferCounterOffer OfferStatus = "counter-offer"
	OfferConfirmed    OfferStatus = "confirmed"
	OfferOutbid       OfferStatus = "outbid"
)

func (s OfferStatus) Label() string {
	switch s {
	case OfferPending:
		return "Pending response"
	case OfferCounterOffer:
		return "Counter offer"
	case OfferNegotiating:
		return "Negotiating"
	case OfferConfirmed:
		return "Confirmed"
	case OfferOutbid:
		return "Outbid"
	default:
		return "Open"
	}
}

// Offer is a single supplier's bid for a product. It is owned by exactly one Product.
type Offer struct {
	ID           string      `json:"id"`
	SupplierName string      `json:"supplierName"`
	PricePerUnit *float64    `json:"pricePerUnit"`
	MinimumOrder int         `json:"minimumOrder"`
	LeadTime     string      `json:"leadTime"`
	FreightTerms string      `json:"freightTerms"`
	Status       OfferStatus `json:"status"`
	LastUpdated  time.Time   `json:"lastUpdated"`
}

// Product represents a restock line under negotiation.
type Product struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Category         string        `json:"category"`
	Quantity         float64       `json:"quantity"`
	Unit             string        `json:"unit"`
	Status           ProductStatus `json:"status"`
	LastUpdated      time.Time     `json:"lastUpdated"`
	ConfirmedOfferID *string       `json:"confirmedOfferId"`
	Notes            string        `json:"notes"`
	Offers           []Offer       `json:"offers"`
}

// Price returns a pointer to p, for building offers inline.
func Price(p float64) *float64 {
	return &p
}

func (p Product) FindOffer(id string) (Offer, bool) {
	for _, o := range p.Offers {
		if o.ID == id {
			return o, true
		}
	}
	return Offer{}, false
}

// IsConfirmed reports whether the offer is the product's confirmed one.
func (p Product) IsConfirmed(o Offer) bool {
	if p.ConfirmedOfferID != nil && *p.ConfirmedOfferID == o.ID {
		return true
	}
	return o.Status == OfferConfirmed
}

// RankedOffers returns the offers cheapest first. Offers without a price go last
// and ties keep their original order.
func (p Product) RankedOffers() []Offer {
	ranked := make([]Offer, len(p.Offers))
	for i, o := range p.Offers {
		ranked[i] = o.Clone()
	}
	SortOffers(ranked)
	return ranked
}

// SortOffers sorts offers in place by ascending price, unpriced last, stable.
func SortOffers(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i].PricePerUnit, offers[j].PricePerUnit
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return *a < *b
	})
}

func (o Offer) Clone() Offer {
	if o.PricePerUnit != nil {
		o.PricePerUnit = Price(*o.PricePerUnit)
	}
	return o
}

func (p Product) Clone() Product {
	if p.ConfirmedOfferID != nil {
		id := *p.ConfirmedOfferID
		p.ConfirmedOfferID = &id
	}
	if p.Offers != nil {
		offers := make([]Offer, len(p.Offers))
		for i, o := range p.Offers {
			offers[i] = o.Clone()
		}
		p.Offers = offers
	}
	return p
}
