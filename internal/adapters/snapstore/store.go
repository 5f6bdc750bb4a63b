// Package snapstore persists the loaded snapshot in a key-value store so a
// restart can rehydrate without refetching the dataset.
package snapstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/chestboard/internal/domain/model"
)

// Default persistence configuration constants.
const (
	defaultKey    = "chestboard:snapshot"
	defaultMaxAge = time.Hour
)

// Store provides read/write access to the persisted snapshot.
type Store interface {
	// Save persists the snapshot, replacing any previous one.
	Save(ctx context.Context, snap *model.Snapshot) error

	// Load returns the persisted snapshot, or ok=false when none exists.
	Load(ctx context.Context) (snap *model.Snapshot, ok bool, err error)

	// Clear removes the persisted snapshot.
	Clear(ctx context.Context) error
}

// persistedSnapshot is the serialized wire shape. LastUpdated is an
// ISO-8601 timestamp string rather than a native time value so the payload
// stays readable by non-Go consumers of the store.
type persistedSnapshot struct {
	Players     []model.Player `json:"players"`
	Alliances   []string       `json:"alliances"`
	Servers     []string       `json:"servers"`
	LastUpdated string         `json:"lastUpdated"`
}

// encode serializes a snapshot into the persisted shape.
func encode(snap *model.Snapshot) ([]byte, error) {
	payload, err := json.Marshal(persistedSnapshot{
		Players:     snap.Players,
		Alliances:   snap.Alliances,
		Servers:     snap.Servers,
		LastUpdated: snap.LastUpdated.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return payload, nil
}

// decode rebuilds a snapshot from the persisted shape.
func decode(payload []byte) (*model.Snapshot, error) {
	var p persistedSnapshot
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	updated, err := time.Parse(time.RFC3339, p.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("%w: bad lastUpdated: %w", ErrDecodeFailed, err)
	}
	return &model.Snapshot{
		Players:     p.Players,
		Alliances:   p.Alliances,
		Servers:     p.Servers,
		LastUpdated: updated,
	}, nil
}
