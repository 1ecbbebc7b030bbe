package session

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Store is the authoritative in-memory + persisted representation of the
// current session. It is either Anonymous (no session) or Authenticated
// (full session present); Login and Logout are the only transitions.
//
// Subscribers are notified synchronously inside the mutating call, after the
// new state is committed, so they always observe a consistent state. No-op
// transitions (Logout while Anonymous) do not notify.
type Store struct {
	storage Storage

	mu      sync.RWMutex
	current *Session
	subs    map[int]func(*Session)
	nextSub int
}

// NewStore creates a store backed by the given storage and restores any
// persisted session. A missing or malformed record yields an Anonymous
// store, never an error: a record that cannot be trusted is cleared so the
// next start is clean too.
func NewStore(storage Storage) *Store {
	st := &Store{
		storage: storage,
		subs:    make(map[int]func(*Session)),
	}

	raw, ok, err := storage.Load(RecordName)
	if err != nil {
		slog.Warn("session: failed to load persisted session, starting anonymous", "error", err)
		return st
	}
	if !ok {
		return st
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Validate() != nil {
		slog.Warn("session: persisted session is malformed, discarding")
		if err := storage.Clear(RecordName); err != nil {
			slog.Warn("session: failed to clear malformed session record", "error", err)
		}
		return st
	}

	st.current = &s
	return st
}

// Current returns a copy of the active session, or nil when Anonymous.
// It never performs I/O; the persisted record is read once at construction.
func (st *Store) Current() *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.current == nil {
		return nil
	}
	s := *st.current
	return &s
}

// Login transitions the store to Authenticated with the given payload.
// A payload with any required field empty is rejected with ErrInvalidPayload
// and the store is left unchanged. On success the session is persisted and
// subscribers are notified; a persistence failure is logged, not returned —
// the in-memory transition stands and the record is rewritten on the next
// transition.
func (st *Store) Login(s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}

	st.mu.Lock()
	st.current = &s
	if raw, err := json.Marshal(s); err == nil {
		if err := st.storage.Save(RecordName, raw); err != nil {
			slog.Warn("session: failed to persist session", "error", err)
		}
	}
	subs := st.subscribers()
	st.mu.Unlock()

	notify(subs, &s)
	return nil
}

// Logout transitions the store to Anonymous. It is idempotent and cannot
// fail: the persisted record is cleared (best effort) and subscribers are
// notified only when the store was actually Authenticated.
func (st *Store) Logout() {
	st.mu.Lock()
	wasAuthenticated := st.current != nil
	st.current = nil
	if err := st.storage.Clear(RecordName); err != nil {
		slog.Warn("session: failed to clear persisted session", "error", err)
	}
	var subs []func(*Session)
	if wasAuthenticated {
		subs = st.subscribers()
	}
	st.mu.Unlock()

	if wasAuthenticated {
		notify(subs, nil)
	}
}

// Subscribe registers fn to run on every state transition. The callback
// receives the new session (nil for Anonymous) and runs synchronously in the
// goroutine performing the transition. The returned function unsubscribes.
func (st *Store) Subscribe(fn func(*Session)) (unsubscribe func()) {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// subscribers snapshots the callback list; callers must hold mu.
func (st *Store) subscribers() []func(*Session) {
	out := make([]func(*Session), 0, len(st.subs))
	for _, fn := range st.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(*Session), s *Session) {
	for _, fn := range subs {
		if s == nil {
			fn(nil)
			continue
		}
		cp := *s
		fn(&cp)
	}
}
