package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS dashboard_snapshots (
	id         SMALLINT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// There is one dashboard per deployment.
const snapshotRowID = 1

type PostgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table if it is missing.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("failed to create dashboard_snapshots: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context) (models.DashboardSnapshot, error) {
	query := `SELECT document FROM dashboard_snapshots WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, snapshotRowID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DashboardSnapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return models.DashboardSnapshot{}, err
	}
	return decodeDocument(doc)
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, s models.DashboardSnapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `INSERT INTO dashboard_snapshots (id, document, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = r.db.ExecContext(ctx, query, snapshotRowID, doc)
	return err
}

// ConfirmOffer locks the row so concurrent confirmations apply one after the other.
func (r *PostgresSnapshotRepository) ConfirmOffer(ctx context.Context, productID, offerID string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, err
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.QueryRowContext(ctx, `SELECT document FROM dashboard_snapshots WHERE id = $1 FOR UPDATE`, snapshotRowID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, models.ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	snap, err := decodeDocument(doc)
	if err != nil {
		return models.Product{}, err
	}
	if err := snap.ConfirmOffer(productID, offerID); err != nil {
		return models.Product{}, err
	}

	updated, err := json.Marshal(snap)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE dashboard_snapshots SET document = $1, updated_at = now() WHERE id = $2`, updated, snapshotRowID); err != nil {
		return models.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Product{}, err
	}

	p, _ := snap.FindProduct(productID)
	return p, nil
}

// Clear removes the stored snapshot.
func (r *PostgresSnapshotRepository) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `DELETE FROM dashboard_snapshots`)
	return err
}

func decodeDocument(doc []byte) (models.DashboardSnapshot, error) {
	var s models.DashboardSnapshot
	if err := json.Unmarshal(doc, &s); err != nil {
		return models.DashboardSnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Products == nil {
		s.Products = []models.Product{}
	}
	if s.Inbox == nil {
		s.Inbox = []models.InboxThread{}
	}
	return s, nil
}
