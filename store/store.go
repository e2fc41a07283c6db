// Package store holds all in-memory bot state: the user registry, per-user
// output preferences, and pending setting selections. Nothing is persisted;
// state lives for the process lifetime.
package store

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const pendingCleanupInterval = 10 * time.Minute

// Store provides access to all bot state. It is constructed once at process
// start and passed by handle into every component that needs it.
type Store struct {
	mu    sync.RWMutex
	users map[int64]*UserRecord
	order []int64 // registration order, oldest first
	prefs map[int64]*Preferences

	pending *gocache.Cache
}

// New creates a new instance of Store. pendingTTL expires dangling setting
// pickers; zero keeps them until resolved or cancelled.
func New(pendingTTL time.Duration) *Store {
	ttl := gocache.NoExpiration
	cleanup := time.Duration(0)
	if pendingTTL > 0 {
		ttl = pendingTTL
		cleanup = pendingCleanupInterval
	}

	return &Store{
		users:   make(map[int64]*UserRecord),
		prefs:   make(map[int64]*Preferences),
		pending: gocache.New(ttl, cleanup),
	}
}
