package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/playlearnspark/backend/core/guest"
	"github.com/playlearnspark/backend/core/homework"
)

// sessionStore is a map-backed guest.SessionStore honoring TTLs;
// production uses the redis one.
type sessionStore struct {
	sessions map[string]storedSession
	mutex    sync.RWMutex
}

type storedSession struct {
	session   guest.Session
	expiresAt time.Time
}

var _ guest.SessionStore = (*sessionStore)(nil) // interface compliance check

func NewGuestSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]storedSession)}
}

func (st *sessionStore) SaveSession(ctx context.Context, s guest.Session, ttl time.Duration) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.sessions[s.ID] = storedSession{session: s, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (st *sessionStore) GetSession(ctx context.Context, id string) (guest.Session, error) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()

	stored, ok := st.sessions[id]
	if !ok || time.Now().After(stored.expiresAt) {
		return guest.Session{}, guest.ErrSessionNotFound
	}
	return stored.session, nil
}

func (st *sessionStore) DeleteSession(ctx context.Context, id string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	delete(st.sessions, id)
	return nil
}

// rateLimiter is a map-backed homework.RateLimiter; production uses the redis one.
type rateLimiter struct {
	counts map[string]*windowCount
	mutex  sync.Mutex
}

type windowCount struct {
	count     int64
	expiresAt time.Time
}

var _ homework.RateLimiter = (*rateLimiter)(nil) // interface compliance check

func NewRateLimiter() *rateLimiter {
	return &rateLimiter{counts: make(map[string]*windowCount)}
}

func (rl *rateLimiter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	wc, ok := rl.counts[key]
	if !ok || time.Now().After(wc.expiresAt) {
		wc = &windowCount{expiresAt: time.Now().Add(window)}
		rl.counts[key] = wc
	}
	wc.count++
	return wc.count, nil
}

func (rl *rateLimiter) Decr(ctx context.Context, key string) error {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if wc, ok := rl.counts[key]; ok && wc.count > 0 {
		wc.count--
	}
	return nil
}
