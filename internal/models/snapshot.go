package models

import (
	"errors"
	"fmt"
	"time"
)

type InboxThread struct {
	ID               string    `json:"id"`
	SupplierName     string    `json:"supplierName"`
	Subject          string    `json:"subject"`
	Preview          string    `json:"preview"`
	ReceivedAt       time.Time `json:"receivedAt"`
	RelatedProductID string    `json:"relatedProductId"`
	Unread           bool      `json:"unread"`
}

// DashboardSnapshot is everything the dashboard knows about products and
// supplier threads at one point in time.
type DashboardSnapshot struct {
	Products []Product     `json:"products"`
	Inbox    []InboxThread `json:"inbox"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOfferNotFound   = errors.New("offer not found")
)

// Clone returns a deep copy. Callers outside the synchronizer only ever see copies.
func (s DashboardSnapshot) Clone() DashboardSnapshot {
	out := DashboardSnapshot{
		Products: make([]Product, len(s.Products)),
		Inbox:    make([]InboxThread, len(s.Inbox)),
	}
	for i, p := range s.Products {
		out.Products[i] = p.Clone()
	}
	copy(out.Inbox, s.Inbox)
	return out
}

func (s DashboardSnapshot) FindProduct(id string) (Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (s DashboardSnapshot) HasProduct(id string) bool {
	_, ok := s.FindProduct(id)
	return ok
}

// FirstProductID returns the id of the first product or "" when there is none.
func (s DashboardSnapshot) FirstProductID() string {
	if len(s.Products) == 0 {
		return ""
	}
	return s.Products[0].ID
}

func (s DashboardSnapshot) HasUnread() bool {
	for _, t := range s.Inbox {
		if t.Unread {
			return true
		}
	}
	return false
}

func (s DashboardSnapshot) ThreadsFor(productID string) []InboxThread {
	var threads []InboxThread
	for _, t := range s.Inbox {
		if t.RelatedProductID == productID {
			threads = append(threads, t)
		}
	}
	return threads
}

// ConfirmOffer marks offerID as the confirmed offer of productID. Any offer
// that was confirmed before is demoted to outbid, all other offers and all
// other products are left alone. The snapshot is modified in place.
func (s *DashboardSnapshot) ConfirmOffer(productID, offerID string) error {
	for i := range s.Products {
		p := &s.Products[i]
		if p.ID != productID {
			continue
		}
		if _, ok := p.FindOffer(offerID); !ok {
			return fmt.Errorf("%w: %s on %s", ErrOfferNotFound, offerID, productID)
		}
		p.Status = ProductConfirmed
		id := offerID
		p.ConfirmedOfferID = &id
		for j := range p.Offers {
			o := &p.Offers[j]
			switch {
			case o.ID == offerID:
				o.Status = OfferConfirmed
			case o.Status == OfferConfirmed:
				o.Status = OfferOutbid
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
}

// ReplaceProduct swaps in p for the product with the same id.
func (s *DashboardSnapshot) ReplaceProduct(p Product) bool {
	for i := range s.Products {
		if s.Products[i].ID == p.ID {
			s.Products[i] = p.Clone()
			return true
		}
	}
	return false
}

// MarkThreadRead clears the unread flag and returns the thread.
func (s *DashboardSnapshot) MarkThreadRead(threadID string) (InboxThread, bool) {
	for i := range s.Inbox {
		if s.Inbox[i].ID == threadID {
			s.Inbox[i].Unread = false
			return s.Inbox[i], true
		}
	}
	return InboxThread{}, false
}

// Validate checks the ownership and confirmation rules every snapshot must hold.
func (s DashboardSnapshot) Validate() error {
	seen := make(map[string]bool, len(s.Products))
	for _, p := range s.Products {
		if p.ID == "" {
			return errors.New("product with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = true

		offerIDs := make(map[string]bool, len(p.Offers))
		confirmed := 0
		for _, o := range p.Offers {
			if offerIDs[o.ID] {
				return fmt.Errorf("duplicate offer id %q on product %q", o.ID, p.ID)
			}
			offerIDs[o.ID] = true
			if o.Status == OfferConfirmed {
				confirmed++
			}
		}
		if confirmed > 1 {
			return fmt.Errorf("product %q has %d confirmed offers", p.ID, confirmed)
		}
		if p.ConfirmedOfferID != nil {
			o, ok := p.FindOffer(*p.ConfirmedOfferID)
			if !ok {
				return fmt.Errorf("product %q confirms unknown offer %q", p.ID, *p.ConfirmedOfferID)
			}
			if o.Status != OfferConfirmed {
				return fmt.Errorf("product %q confirmed offer %q has status %q", p.ID, o.ID, o.Status)
			}
		}
	}
	return nil
}

// Summary is the at-a-glance numbers shown above the dashboard.
type Summary struct {
	TotalProducts     int `json:"total_products"`
	ConfirmedProducts int `json:"confirmed_products"`
	TotalOffers       int `json:"total_offers"`
	UnreadThreads     int `json:"unread_threads"`
}

func (s DashboardSnapshot) Summary() Summary {
	sum := Summary{TotalProducts: len(s.Products)}
	for _, p := range s.Products {
		if p.ConfirmedOfferID != nil || p.Status == ProductConfirmed {
			sum.ConfirmedProducts++
		}
		sum.TotalOffers += len(p.Offers)
	}
	for _, t := range s.Inbox {
		if t.Unread {
			sum.UnreadThreads++
		}
	}
	return sum
}
