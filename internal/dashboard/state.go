package dashboard

import (
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

type View string

const (
	ViewProducts View = "products"
	ViewInbox    View = "inbox"
)

// State is everything the dashboard phase renders from.
type State struct {
	Snapshot          models.DashboardSnapshot
	Status            Status
	SelectedProductID string
	View              View
	// Error is the last fetch failure message, shown as a banner.
	Error string
}

func NewState() State {
	return State{
		Snapshot: models.DashboardSnapshot{Products: []models.Product{}, Inbox: []models.InboxThread{}},
		Status:   StatusIdle,
		View:     ViewProducts,
	}
}

func (s State) Clone() State {
	s.Snapshot = s.Snapshot.Clone()
	return s
}

func (s State) SelectedProduct() (models.Product, bool) {
	if s.SelectedProductID == "" {
		return models.Product{}, false
	}
	return s.Snapshot.FindProduct(s.SelectedProductID)
}

type Action interface {
	actionName() string
}

type (
	FetchStarted   struct{}
	FetchSucceeded struct{ Snapshot models.DashboardSnapshot }
	FetchFailed    struct {
		Fallback models.DashboardSnapshot
		Message  string
	}
	// Seeded installs a locally built snapshot, such as a survey submission.
	Seeded         struct{ Snapshot models.DashboardSnapshot }
	OfferConfirmed struct{ ProductID, OfferID string }
	// ConfirmReverted puts back the product as it was before OfferID was
	// optimistically confirmed.
	ConfirmReverted struct {
		Previous models.Product
		OfferID  string
	}
	ProductSelected struct{ ID string }
	ViewChanged     struct{ View View }
	ThreadOpened    struct{ ID string }
)

func (FetchStarted) actionName() string    { return "FetchStarted" }
func (FetchSucceeded) actionName() string  { return "FetchSucceeded" }
func (FetchFailed) actionName() string     { return "FetchFailed" }
func (Seeded) actionName() string          { return "Seeded" }
func (OfferConfirmed) actionName() string  { return "OfferConfirmed" }
func (ConfirmReverted) actionName() string { return "ConfirmReverted" }
func (ProductSelected) actionName() string { return "ProductSelected" }
func (ViewChanged) actionName() string     { return "ViewChanged" }
func (ThreadOpened) actionName() string    { return "ThreadOpened" }

func Name(a Action) string {
	return a.actionName()
}

// Reduce returns the state after a. The snapshot in s is never modified; a
// refused action returns s as is.
func Reduce(s State, a Action) State {
	next, _ := apply(s, a)
	return next
}

func apply(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case FetchStarted:
		s.Status = StatusLoading
		s.Error = ""
		return s, true

	case FetchSucceeded:
		s.Snapshot = normalize(a.Snapshot).Clone()
		s.Status = StatusLoaded
		s.Error = ""
		if !s.Snapshot.HasProduct(s.SelectedProductID) {
			s.SelectedProductID = s.Snapshot.FirstProductID()
		}
		return s, true

	case FetchFailed:
		s.Snapshot = normalize(a.Fallback).Clone()
		s.Status = StatusError
		s.Error = a.Message
		if !s.Snapshot.HasProduct(s.SelectedProductID) {
			s.SelectedProductID = s.Snapshot.FirstProductID()
		}
		return s, true

	case Seeded:
		s.Snapshot = normalize(a.Snapshot).Clone()
		s.Status = StatusLoaded
		s.Error = ""
		s.SelectedProductID = s.Snapshot.FirstProductID()
		return s, true

	case OfferConfirmed:
		if a.ProductID == "" || a.OfferID == "" {
			return s, false
		}
		snap := s.Snapshot.Clone()
		if err := snap.ConfirmOffer(a.ProductID, a.OfferID); err != nil {
			return s, false
		}
		s.Snapshot = snap
		return s, true

	case ConfirmReverted:
		current, ok := s.Snapshot.FindProduct(a.Previous.ID)
		if !ok || current.ConfirmedOfferID == nil || *current.ConfirmedOfferID != a.OfferID {
			return s, false
		}
		snap := s.Snapshot.Clone()
		snap.ReplaceProduct(a.Previous)
		s.Snapshot = snap
		return s, true

	case ProductSelected:
		if !s.Snapshot.HasProduct(a.ID) {
			return s, false
		}
		s.SelectedProductID = a.ID
		return s, true

	case ViewChanged:
		if a.View != ViewProducts && a.View != ViewInbox {
			return s, false
		}
		s.View = a.View
		return s, true

	case ThreadOpened:
		snap := s.Snapshot.Clone()
		thread, ok := snap.MarkThreadRead(a.ID)
		if !ok {
			return s, false
		}
		s.Snapshot = snap
		if snap.HasProduct(thread.RelatedProductID) {
			s.SelectedProductID = thread.RelatedProductID
		}
		s.View = ViewProducts
		return s, true
	}
	return s, false
}

func normalize(s models.DashboardSnapshot) models.DashboardSnapshot {
	if s.Products == nil {
		s.Products = []models.Product{}
	}
	if s.Inbox == nil {
		s.Inbox = []models.InboxThread{}
	}
	return s
}
