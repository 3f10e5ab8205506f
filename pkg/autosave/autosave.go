// Package autosave periodically writes a JSON backup of the raw collections.
// A content hash keeps the writer quiet while nothing changed.
package autosave

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/Allen4fis/crewtime/pkg/db"
)

// DefaultInterval is the autosave timer period.
const DefaultInterval = 30 * time.Second

// Saver writes snapshot backups on a fixed timer.
type Saver struct {
	// Path of the backup file. Written atomically via rename.
	Path string

	// Interval between save attempts. DefaultInterval when zero.
	Interval time.Duration

	// Load supplies the current snapshot.
	Load func(ctx context.Context) (db.Snapshot, error)

	lastHash [sha256.Size]byte
}

// Run saves on every tick until the context is canceled. Save errors are
// logged and do not stop the loop; losing one autosave beats losing the
// safety net.
func (s *Saver) Run(ctx context.Context) {
	log := logr.FromContextOrDiscard(ctx).WithName("autosave")

	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			written, err := s.Save(ctx)
			if err != nil {
				log.Error(err, "autosave failed")
				continue
			}
			if written {
				log.V(1).Info("wrote backup", "path", s.Path)
			}
		}
	}
}

// Save writes the backup if the snapshot content changed since the last
// write. It reports whether a write happened.
func (s *Saver) Save(ctx context.Context) (bool, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load snapshot: %w", err)
	}

	encoded, err := json.MarshalIndent(snap, "", "\t")
	if err != nil {
		return false, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	hash := sha256.Sum256(encoded)
	if hash == s.lastHash {
		return false, nil
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0644); err != nil {
		return false, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return false, fmt.Errorf("failed to move backup in place: %w", err)
	}

	s.lastHash = hash
	return true, nil
}
