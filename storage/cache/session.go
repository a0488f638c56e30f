package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/playlearnspark/backend/core/guest"
)

// sessionStore keeps guest sessions as JSON blobs under a TTL. Expiry loses
// the session and its progress, mirroring a cleared browser.
type sessionStore struct {
	client *redis.Client
}

var _ guest.SessionStore = (*sessionStore)(nil) // interface compliance check

func NewGuestSessionStore(client *redis.Client) *sessionStore {
	return &sessionStore{client: client}
}

func (st *sessionStore) SaveSession(ctx context.Context, s guest.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshalling guest session")
	}
	return errors.Wrap(
		st.client.Set(ctx, keyGuestSession+s.ID, data, ttl).Err(),
		"saving guest session",
	)
}

func (st *sessionStore) GetSession(ctx context.Context, id string) (guest.Session, error) {
	data, err := st.client.Get(ctx, keyGuestSession+id).Bytes()
	if err == redis.Nil {
		return guest.Session{}, guest.ErrSessionNotFound
	}
	if err != nil {
		return guest.Session{}, errors.Wrap(err, "loading guest session")
	}

	var s guest.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return guest.Session{}, errors.Wrap(err, "unmarshalling guest session")
	}
	return s, nil
}

func (st *sessionStore) DeleteSession(ctx context.Context, id string) error {
	return errors.Wrap(
		st.client.Del(ctx, keyGuestSession+id).Err(),
		"deleting guest session",
	)
}
