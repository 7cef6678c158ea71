package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
	"github.com/rogerio-castellano/sourcing-desk/internal/notify"
	"github.com/rogerio-castellano/sourcing-desk/internal/remote"
)

const (
	DefaultFetchError = "Live agent data is unavailable right now. Showing the latest synced results."

	msgRefreshing   = "Refreshing the latest supplier updates…"
	msgRefreshed    = "Latest supplier updates synced."
	msgRefreshStale = "Showing the last synced supplier data."
)

// Remote is the dashboard service as the synchronizer sees it.
type Remote interface {
	FetchSnapshot(ctx context.Context) (models.DashboardSnapshot, error)
	ConfirmOffer(ctx context.Context, productID, offerID string) error
}

type ConfirmOutcome string

const (
	// OutcomeSkipped means the ids were missing or unknown and nothing changed.
	OutcomeSkipped ConfirmOutcome = "skipped"
	// OutcomePersisted means the service accepted the confirmation.
	OutcomePersisted ConfirmOutcome = "persisted"
	// OutcomeOffline means the service failed and the local confirmation was kept.
	OutcomeOffline ConfirmOutcome = "offline"
	// OutcomeReverted means the service failed and the local confirmation was undone.
	OutcomeReverted ConfirmOutcome = "reverted"
)

type Options struct {
	Mode     ReconciliationMode
	Fallback FallbackSource
}

// Synchronizer owns the dashboard snapshot. It is the only writer; everyone
// else reads copies.
type Synchronizer struct {
	remote   Remote
	notes    *notify.Center
	fallback FallbackSource
	mode     ReconciliationMode

	mu       sync.Mutex
	state    State
	inflight int
}

func NewSynchronizer(r Remote, notes *notify.Center, opts Options) *Synchronizer {
	if opts.Fallback == nil {
		opts.Fallback = MustStaticFallback()
	}
	if opts.Mode == "" {
		opts.Mode = OptimisticNoRollback
	}
	return &Synchronizer{
		remote:   r,
		notes:    notes,
		fallback: opts.Fallback,
		mode:     opts.Mode,
		state:    NewState(),
	}
}

func (s *Synchronizer) Mode() ReconciliationMode {
	return s.mode
}

func (s *Synchronizer) dispatch(a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := apply(s.state, a)
	if ok {
		s.state = next
	}
	return ok
}

func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Synchronizer) Snapshot() models.DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot.Clone()
}

func (s *Synchronizer) SelectedProduct() (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.SelectedProduct()
	if !ok {
		return models.Product{}, false
	}
	return p.Clone(), true
}

// Fetch replaces the snapshot with the service's copy, or with the fallback
// dataset when the service fails. Either way the snapshot is swapped in one step.
func (s *Synchronizer) Fetch(ctx context.Context) (models.DashboardSnapshot, error) {
	s.beginFetch()

	snap, err := s.remote.FetchSnapshot(ctx)
	if err == nil {
		s.dispatch(FetchSucceeded{Snapshot: snap})
		s.fallback.Remember(ctx, snap)
		s.endFetch("")
		return s.Snapshot(), nil
	}

	msg := remote.UserMessage(err, DefaultFetchError)
	log.Printf("dashboard fetch failed, using fallback data: %v", err)
	s.dispatch(FetchFailed{Fallback: s.fallback.Snapshot(ctx), Message: msg})
	s.endFetch(msg)
	return s.Snapshot(), fmt.Errorf("fetch dashboard: %w", err)
}

func (s *Synchronizer) beginFetch() {
	s.mu.Lock()
	s.inflight++
	next, _ := apply(s.state, FetchStarted{})
	s.state = next
	s.mu.Unlock()

	if s.notes != nil {
		s.notes.SetBanner("")
		s.notes.SetLoading(true)
	}
}

func (s *Synchronizer) endFetch(banner string) {
	s.mu.Lock()
	s.inflight--
	loading := s.inflight > 0
	s.mu.Unlock()

	if s.notes != nil {
		s.notes.SetBanner(banner)
		s.notes.SetLoading(loading)
	}
}

// Confirm marks offerID as the product's supplier locally, then tells the
// service. The local change is visible before the service answers.
func (s *Synchronizer) Confirm(ctx context.Context, productID, offerID string) ConfirmOutcome {
	if productID == "" || offerID == "" {
		return OutcomeSkipped
	}

	s.mu.Lock()
	previous, found := s.state.Snapshot.FindProduct(productID)
	if found {
		previous = previous.Clone()
	}
	next, ok := apply(s.state, OfferConfirmed{ProductID: productID, OfferID: offerID})
	if ok {
		s.state = next
	}
	s.mu.Unlock()

	if !ok {
		return OutcomeSkipped
	}

	name := previous.Name
	if name == "" {
		name = "Product"
	}

	err := s.remote.ConfirmOffer(ctx, productID, offerID)
	if err == nil {
		s.toast(notify.KindSuccess, fmt.Sprintf("%s has been marked as confirmed.", name))
		// Only reconcile once the service has settled the confirmation.
		_, _ = s.Fetch(ctx)
		return OutcomePersisted
	}

	log.Printf("confirm %s/%s failed (%s): %v", productID, offerID, s.mode, err)

	if s.mode == RollbackOnFailure {
		s.dispatch(ConfirmReverted{Previous: previous, OfferID: offerID})
		s.toast(notify.KindError, fmt.Sprintf("Could not confirm %s. Changes were reverted.", name))
		return OutcomeReverted
	}

	s.toast(notify.KindSuccess, fmt.Sprintf("%s has been marked as confirmed (demo mode).", name))
	return OutcomeOffline
}

// Refresh fetches and reports the outcome as a toast. It returns whether live
// data was loaded.
func (s *Synchronizer) Refresh(ctx context.Context) bool {
	s.toast(notify.KindInfo, msgRefreshing)
	if _, err := s.Fetch(ctx); err != nil {
		s.toast(notify.KindError, msgRefreshStale)
		return false
	}
	s.toast(notify.KindSuccess, msgRefreshed)
	return true
}

// Seed installs a snapshot built locally and selects its first product.
func (s *Synchronizer) Seed(snap models.DashboardSnapshot) {
	s.dispatch(Seeded{Snapshot: snap})
	if s.notes != nil {
		s.notes.SetBanner("")
	}
}

// EnsureLoaded fetches only when there is nothing to show yet.
func (s *Synchronizer) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	empty := len(s.state.Snapshot.Products) == 0
	s.mu.Unlock()

	if !empty {
		if s.notes != nil {
			s.notes.SetBanner("")
			s.notes.SetLoading(false)
		}
		return nil
	}
	_, err := s.Fetch(ctx)
	return err
}

func (s *Synchronizer) Select(productID string) bool {
	return s.dispatch(ProductSelected{ID: productID})
}

func (s *Synchronizer) SetView(v View) bool {
	return s.dispatch(ViewChanged{View: v})
}

// OpenThread marks a thread read and jumps to its product.
func (s *Synchronizer) OpenThread(threadID string) bool {
	return s.dispatch(ThreadOpened{ID: threadID})
}

func (s *Synchronizer) toast(kind notify.Kind, msg string) {
	if s.notes != nil {
		s.notes.Show(kind, msg)
	}
}
