package profile

import (
	"errors"
	"log/slog"
)

// Restore reads a previously persisted profile.
// It returns false when there is nothing usable to restore. A corrupted record is deleted
// so the next run starts clean; this never fails the caller.
func Restore(store Store) (Profile, bool) {
	p, err := store.Load()
	if err == nil {
		return p, true
	}

	if errors.Is(err, ErrNotFound) {
		return Profile{}, false
	}
	if errors.Is(err, ErrCorrupted) {
		slog.Default().Warn("discarding corrupted profile", "error", err)
		if err := store.Delete(); err != nil {
			slog.Default().Warn("failed to delete corrupted profile", "error", err)
		}
		return Profile{}, false
	}

	slog.Default().Warn("failed to read profile", "error", err)
	return Profile{}, false
}
