package store

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// SelectionKind identifies which setting a picker is negotiating.
type SelectionKind string

const (
	SelectionQuality SelectionKind = "quality"
	SelectionFormat  SelectionKind = "format"
)

// PendingSelection records that a user has been shown a picker of the given
// kind and has not yet responded. At most one exists per (user, kind);
// re-emitting a picker overwrites the previous one.
type PendingSelection struct {
	UserID    int64
	Kind      SelectionKind
	ChatID    int64
	MessageID int // the picker message, edited in place on resolution
	CreatedAt time.Time
}

func pendingKey(userID int64, kind SelectionKind) string {
	return fmt.Sprintf("%d:%s", userID, kind)
}

// SetPending records a pending selection, replacing any prior one of the
// same kind for the same user. Last invocation wins.
func (s *Store) SetPending(p PendingSelection) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.pending.Set(pendingKey(p.UserID, p.Kind), p, gocache.DefaultExpiration)
}

// Pending returns the pending selection of the given kind for userID.
func (s *Store) Pending(userID int64, kind SelectionKind) (PendingSelection, bool) {
	v, ok := s.pending.Get(pendingKey(userID, kind))
	if !ok {
		return PendingSelection{}, false
	}
	return v.(PendingSelection), true
}

// ClearPending removes the pending selection of the given kind for userID.
func (s *Store) ClearPending(userID int64, kind SelectionKind) {
	s.pending.Delete(pendingKey(userID, kind))
}

// ClearAllPending removes every pending selection for userID. Used by the
// explicit cancel command, which ends whichever picker is open.
func (s *Store) ClearAllPending(userID int64) {
	s.pending.Delete(pendingKey(userID, SelectionQuality))
	s.pending.Delete(pendingKey(userID, SelectionFormat))
}
