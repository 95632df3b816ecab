package game

import "sync"

// lockEntry holds a session's mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks serializes mutating operations per session. Entries are
// reference counted so the map does not grow with every session ever
// seen: the last holder to release removes the entry.
type sessionLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{entries: make(map[string]*lockEntry)}
}

// acquire gets or creates the entry and increments its refcount. The
// caller must lock entry.mu and call release(sessionID) after unlocking.
func (l *sessionLocks) acquire(sessionID string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[sessionID]
	if !ok {
		entry = &lockEntry{}
		l.entries[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the refcount and drops the entry at zero.
func (l *sessionLocks) release(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.entries, sessionID)
	}
}

// withLock runs fn while holding the lock for sessionID. Locks are per
// session, so operations on different sessions proceed in parallel.
func (l *sessionLocks) withLock(sessionID string, fn func() error) error {
	entry := l.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		l.release(sessionID)
	}()
	return fn()
}
