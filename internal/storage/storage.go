// Package storage persists complete ledger snapshots. The engine calls
// Save synchronously after every successful mutation, so a crash right
// after a response cannot lose that response's effect.
package storage

import "github.com/avolkov/ledger-service/internal/models"

// Adapter durably stores and reloads a full snapshot of the ledger.
type Adapter interface {
	// Load returns the last saved snapshot, or an empty snapshot if no
	// prior state exists.
	Load() (models.Snapshot, error)
	Save(snapshot models.Snapshot) error
}
