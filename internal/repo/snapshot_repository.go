package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

// ErrSnapshotNotFound is returned when no dashboard has been stored yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository stores the single dashboard document the demo service serves.
type SnapshotRepository interface {
	Load(ctx context.Context) (models.DashboardSnapshot, error)
	Save(ctx context.Context, s models.DashboardSnapshot) error
	// ConfirmOffer applies a confirmation and returns the updated product.
	// Unknown ids yield models.ErrProductNotFound or models.ErrOfferNotFound.
	ConfirmOffer(ctx context.Context, productID, offerID string) (models.Product, error)
}
