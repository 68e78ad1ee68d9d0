package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieCodecRoundTrip(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Hour, "", false)

	cookie, err := codec.Issue("sess-123")
	assert.NoError(t, err)
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)

	id, err := codec.Decode(cookie.Value)
	assert.NoError(t, err)
	assert.Equal(t, "sess-123", id)
}

func TestCookieCodecRejectsTampering(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Hour, "", false)
	other := NewCookieCodec("other-secret", time.Hour, "", false)

	cookie, err := other.Issue("sess-123")
	assert.NoError(t, err)

	_, err = codec.Decode(cookie.Value)
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestCookieCodecRejectsGarbage(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Hour, "", false)

	for _, value := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := codec.Decode(value)
		assert.ErrorIs(t, err, ErrInvalidCookie, value)
	}
}

func TestCookieCodecRejectsExpired(t *testing.T) {
	codec := NewCookieCodec("test-secret", -time.Minute, "", false)

	cookie, err := codec.Issue("sess-123")
	assert.NoError(t, err)

	_, err = codec.Decode(cookie.Value)
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestCookieCodecClear(t *testing.T) {
	codec := NewCookieCodec("test-secret", time.Hour, "example.com", true)

	cleared := codec.Clear()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.True(t, cleared.Expires.Before(time.Now()))
	assert.True(t, cleared.Secure)
	assert.Equal(t, "example.com", cleared.Domain)
}
