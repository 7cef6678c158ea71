package handlers

import (
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/messaging"
	"github.com/rogerio-castellano/sourcing-desk/internal/repo"
)

var (
	snapshotRepo repo.SnapshotRepository
	publisher    messaging.ConfirmationPublisher = messaging.Noop{}
	now                                          = time.Now
)

func SetSnapshotRepo(r repo.SnapshotRepository) {
	snapshotRepo = r
}

func SetPublisher(p messaging.ConfirmationPublisher) {
	if p == nil {
		p = messaging.Noop{}
	}
	publisher = p
}

// SetClock replaces the time source used to stamp events.
func SetClock(f func() time.Time) {
	now = f
}
