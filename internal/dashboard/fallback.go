package dashboard

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

//go:embed fallback.json
var fallbackJSON []byte

// FallbackSource supplies the snapshot shown when the service cannot be reached.
type FallbackSource interface {
	Snapshot(ctx context.Context) models.DashboardSnapshot
	// Remember is told about every snapshot fetched successfully.
	Remember(ctx context.Context, s models.DashboardSnapshot)
}

// StaticFallback serves the embedded last-known-good dataset.
type StaticFallback struct {
	snapshot models.DashboardSnapshot
}

// ParseSnapshot decodes and validates a snapshot document.
func ParseSnapshot(data []byte) (models.DashboardSnapshot, error) {
	var s models.DashboardSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return models.DashboardSnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return models.DashboardSnapshot{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	return normalize(s), nil
}

func NewStaticFallback() (*StaticFallback, error) {
	s, err := ParseSnapshot(fallbackJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded fallback: %w", err)
	}
	if len(s.Products) == 0 {
		return nil, fmt.Errorf("embedded fallback has no products")
	}
	return &StaticFallback{snapshot: s}, nil
}

// MustStaticFallback panics if the embedded dataset is broken, which is a build defect.
func MustStaticFallback() *StaticFallback {
	f, err := NewStaticFallback()
	if err != nil {
		panic(err)
	}
	return f
}

func (f *StaticFallback) Snapshot(context.Context) models.DashboardSnapshot {
	return f.snapshot.Clone()
}

func (f *StaticFallback) Remember(context.Context, models.DashboardSnapshot) {}
