package dashboard

import "fmt"

// ReconciliationMode decides what happens to an optimistic confirmation when
// the service rejects it or cannot be reached.
type ReconciliationMode string

const (
	// OptimisticNoRollback keeps the local confirmation and reports demo mode.
	OptimisticNoRollback ReconciliationMode = "optimistic-no-rollback"
	// RollbackOnFailure restores the product as it was before the confirmation.
	RollbackOnFailure ReconciliationMode = "rollback"
)

func ParseReconciliationMode(s string) (ReconciliationMode, error) {
	switch m := ReconciliationMode(s); m {
	case OptimisticNoRollback, RollbackOnFailure:
		return m, nil
	case "":
		return OptimisticNoRollback, nil
	default:
		return "", fmt.Errorf("unknown reconciliation mode %q", s)
	}
}
