package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"causajusta/internal/cache"
	"causajusta/internal/upstream"
)

// fakeKV is an in-memory KV for tests. TTLs are recorded but never enforced.
type fakeKV struct {
	data map[string][]byte
	ttls map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (kv *fakeKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := kv.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return value, nil
}

func (kv *fakeKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	kv.data[key] = value
	kv.ttls[key] = ttl
	return nil
}

func (kv *fakeKV) Delete(ctx context.Context, key string) error {
	delete(kv.data, key)
	return nil
}

func testUser() upstream.User {
	return upstream.User{ID: "u1", Name: "Juan", Email: "juan@example.com", Role: upstream.RoleDonor}
}

func testPair() upstream.TokenPair {
	return upstream.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}
}

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(newFakeKV(), time.Hour)
	ctx := context.Background()

	sess, err := store.Create(ctx, testPair(), testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	loaded, err := store.Get(ctx, sess.ID)
	assert.NoError(t, err)
	assert.Equal(t, "access-1", loaded.AccessToken)
	assert.Equal(t, "refresh-1", loaded.RefreshToken)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Nil(t, loaded.PaymentConnected)
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore(newFakeKV(), time.Hour)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreUpdateTokens(t *testing.T) {
	store := NewStore(newFakeKV(), time.Hour)
	ctx := context.Background()
	sess, _ := store.Create(ctx, testPair(), testUser())

	t.Run("both tokens replaced", func(t *testing.T) {
		assert.NoError(t, store.UpdateTokens(ctx, sess.ID, "access-2", "refresh-2"))
		loaded, _ := store.Get(ctx, sess.ID)
		assert.Equal(t, "access-2", loaded.AccessToken)
		assert.Equal(t, "refresh-2", loaded.RefreshToken)
	})

	t.Run("empty refresh keeps the old one", func(t *testing.T) {
		assert.NoError(t, store.UpdateTokens(ctx, sess.ID, "access-3", ""))
		loaded, _ := store.Get(ctx, sess.ID)
		assert.Equal(t, "access-3", loaded.AccessToken)
		assert.Equal(t, "refresh-2", loaded.RefreshToken)
	})
}

func TestStoreSetUserClearsPaymentFlag(t *testing.T) {
	store := NewStore(newFakeKV(), time.Hour)
	ctx := context.Background()
	sess, _ := store.Create(ctx, testPair(), testUser())

	assert.NoError(t, store.SetPaymentConnected(ctx, sess.ID, true))
	loaded, _ := store.Get(ctx, sess.ID)
	assert.NotNil(t, loaded.PaymentConnected)
	assert.True(t, *loaded.PaymentConnected)

	updated := testUser()
	updated.Role = upstream.RoleBeneficiary
	assert.NoError(t, store.SetUser(ctx, sess.ID, updated))

	loaded, _ = store.Get(ctx, sess.ID)
	assert.Equal(t, upstream.RoleBeneficiary, loaded.Role())
	assert.Nil(t, loaded.PaymentConnected, "a role change must drop the cached probe result")
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(newFakeKV(), time.Hour)
	ctx := context.Background()
	sess, _ := store.Create(ctx, testPair(), testUser())

	assert.NoError(t, store.Delete(ctx, sess.ID))
	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSourceRoundTrip(t *testing.T) {
	store := NewStore(newFakeKV(), time.Hour)
	ctx := context.Background()
	sess, _ := store.Create(ctx, testPair(), testUser())

	source := store.Source(sess.ID)

	access, refresh, err := source.Tokens(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "access-1", access)
	assert.Equal(t, "refresh-1", refresh)

	assert.NoError(t, source.UpdateTokens(ctx, "access-2", "refresh-2"))
	loaded, _ := store.Get(ctx, sess.ID)
	assert.Equal(t, "access-2", loaded.AccessToken)
	assert.Equal(t, "refresh-2", loaded.RefreshToken)
}

func TestStoreWritesWithConfiguredTTL(t *testing.T) {
	kv := newFakeKV()
	store := NewStore(kv, 7*24*time.Hour)
	ctx := context.Background()

	sess, _ := store.Create(ctx, testPair(), testUser())
	assert.Equal(t, 7*24*time.Hour, kv.ttls[sessionKeyPrefix+sess.ID])
}
