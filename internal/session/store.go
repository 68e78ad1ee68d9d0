package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"causajusta/internal/cache"
	"causajusta/internal/upstream"
)

const sessionKeyPrefix = "session:"

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// KV is the persistence needed by the store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store persists sessions in Redis. All mutation goes through its methods so
// there is exactly one writer for session state.
type Store struct {
	kv  KV
	ttl time.Duration
}

// NewStore creates a session store with the given lifetime.
func NewStore(kv KV, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl}
}

// Create opens a session for a freshly authenticated user.
func (s *Store) Create(ctx context.Context, pair upstream.TokenPair, user upstream.User) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:           uuid.NewString(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session by ID.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.kv.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// UpdateTokens replaces the credential pair after a refresh.
func (s *Store) UpdateTokens(ctx context.Context, id, access, refresh string) error {
	return s.mutate(ctx, id, func(sess *Session) {
		sess.AccessToken = access
		if refresh != "" {
			sess.RefreshToken = refresh
		}
	})
}

// SetUser replaces the mirrored user record.
func (s *Store) SetUser(ctx context.Context, id string, user upstream.User) error {
	return s.mutate(ctx, id, func(sess *Session) {
		sess.User = user
		// A role change invalidates the cached payment status.
		sess.PaymentConnected = nil
	})
}

// SetPaymentConnected caches the result of a MercadoPago status probe.
func (s *Store) SetPaymentConnected(ctx context.Context, id string, connected bool) error {
	return s.mutate(ctx, id, func(sess *Session) {
		sess.PaymentConnected = &connected
	})
}

// Delete ends a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+id)
}

func (s *Store) mutate(ctx context.Context, id string, apply func(*Session)) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	apply(sess)
	return s.save(ctx, sess)
}

func (s *Store) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKeyPrefix+sess.ID, payload, s.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Source binds a session to the upstream client's token callbacks.
type Source struct {
	store *Store
	id    string
}

// Ensure Source satisfies the upstream contract.
var _ upstream.TokenSource = (*Source)(nil)

// Source returns the token source for one session.
func (s *Store) Source(id string) *Source {
	return &Source{store: s, id: id}
}

// Tokens returns the session's current credential pair.
func (src *Source) Tokens(ctx context.Context) (string, string, error) {
	sess, err := src.store.Get(ctx, src.id)
	if err != nil {
		return "", "", err
	}
	return sess.AccessToken, sess.RefreshToken, nil
}

// UpdateTokens persists a refreshed credential pair.
func (src *Source) UpdateTokens(ctx context.Context, access, refresh string) error {
	return src.store.UpdateTokens(ctx, src.id, access, refresh)
}
