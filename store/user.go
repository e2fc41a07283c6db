package store

// UserRecord represents one Telegram account seen by the bot.
type UserRecord struct {
	ID          int64
	DisplayName string // first name, may be empty
	Handle      string // username, may be empty
	Requests    int64  // processing attempts, counted regardless of outcome
}

// Summary is the aggregate usage view backing the administrator report.
type Summary struct {
	TotalUsers    int
	TotalRequests int64
	Recent        []UserRecord // last N registered, registration order
}

// EnsureUser records a user on first interaction. It is idempotent: repeat
// calls leave the existing record, its counter, and its registration order
// unchanged.
func (s *Store) EnsureUser(id int64, displayName, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; ok {
		return
	}
	s.users[id] = &UserRecord{
		ID:          id,
		DisplayName: displayName,
		Handle:      handle,
	}
	s.order = append(s.order, id)
}

// RecordAttempt increments the processing counter for id and returns the new
// value. Callers are expected to have called EnsureUser first; an attempt is
// itself an interaction, so an absent record is created rather than dropped.
func (s *Store) RecordAttempt(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		u = &UserRecord{ID: id}
		s.users[id] = u
		s.order = append(s.order, id)
	}
	u.Requests++
	return u.Requests
}

// GetUser returns a copy of the record for id.
func (s *Store) GetUser(id int64) (UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return UserRecord{}, false
	}
	return *u, true
}

// Summarize returns aggregate usage counts and the last recentN registered
// users in registration order.
func (s *Store) Summarize(recentN int) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := Summary{TotalUsers: len(s.users)}
	for _, u := range s.users {
		summary.TotalRequests += u.Requests
	}

	start := len(s.order) - recentN
	if start < 0 {
		start = 0
	}
	for _, id := range s.order[start:] {
		summary.Recent = append(summary.Recent, *s.users[id])
	}
	return summary
}
