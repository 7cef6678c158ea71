package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

// InMemorySnapshotRepository is an in-memory implementation of SnapshotRepository.
type InMemorySnapshotRepository struct {
	mu       sync.Mutex
	snapshot *models.DashboardSnapshot
}

// NewInMemorySnapshotRepository creates an empty repository.
func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

func (r *InMemorySnapshotRepository) Load(context.Context) (models.DashboardSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot == nil {
		return models.DashboardSnapshot{}, ErrSnapshotNotFound
	}
	return r.snapshot.Clone(), nil
}

func (r *InMemorySnapshotRepository) Save(_ context.Context, s models.DashboardSnapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c := s.Clone()
	r.snapshot = &c
	return nil
}

func (r *InMemorySnapshotRepository) ConfirmOffer(_ context.Context, productID, offerID string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot == nil {
		return models.Product{}, models.ErrProductNotFound
	}
	if err := r.snapshot.ConfirmOffer(productID, offerID); err != nil {
		return models.Product{}, err
	}
	p, _ := r.snapshot.FindProduct(productID)
	return p.Clone(), nil
}

// Clear forgets the stored snapshot.
func (r *InMemorySnapshotRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = nil
}
