package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// memorySource is an in-memory TokenSource for tests.
type memorySource struct {
	mu      sync.Mutex
	access  string
	refresh string
	updates int
}

func (s *memorySource) Tokens(ctx context.Context) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *memorySource) UpdateTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	s.updates++
	return nil
}

func TestAuthedRefreshesOnceAndReplays(t *testing.T) {
	var meCalls, refreshCalls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			meCalls++
			if r.Header.Get("Authorization") != "Bearer fresh-access" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Unauthorized"}`))
				return
			}
			w.Write([]byte(`{"id":"u1","name":"Juan","email":"juan@example.com","role":"BENEFICIARY"}`))
		case "/auth/refresh":
			refreshCalls++
			w.Write([]byte(`{"access_token":"fresh-access","refresh_token":"fresh-refresh"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	source := &memorySource{access: "stale-access", refresh: "old-refresh"}

	user, err := client.Me(context.Background(), source)
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, RoleBeneficiary, user.Role)

	assert.Equal(t, 2, meCalls, "original request should be replayed exactly once")
	assert.Equal(t, 1, refreshCalls)
	assert.Equal(t, "fresh-access", source.access, "refreshed pair must be persisted")
	assert.Equal(t, "fresh-refresh", source.refresh)
	assert.Equal(t, 1, source.updates)
}

func TestAuthedFailedRefreshIsSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			w.WriteHeader(http.StatusUnauthorized)
		case "/auth/refresh":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid refresh token"}`))
		}
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	source := &memorySource{access: "stale", refresh: "stale"}

	_, err := client.Me(context.Background(), source)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, source.updates, "no tokens should be stored after a failed refresh")
}

func TestAuthedDoesNotRefreshOnSuccess(t *testing.T) {
	var refreshCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/me":
			assert.Equal(t, "Bearer good-access", r.Header.Get("Authorization"))
			w.Write([]byte(`{"id":"u1"}`))
		case "/auth/refresh":
			refreshCalls++
		}
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	source := &memorySource{access: "good-access", refresh: "r"}

	_, err := client.Me(context.Background(), source)
	assert.NoError(t, err)
	assert.Equal(t, 0, refreshCalls)
	assert.Equal(t, 0, source.updates)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{
			name:     "404 maps to ErrNotFound",
			status:   http.StatusNotFound,
			body:     `{"message":"Campaign not found"}`,
			sentinel: ErrNotFound,
			message:  "Campaign not found",
		},
		{
			name:     "409 maps to ErrSlugTaken",
			status:   http.StatusConflict,
			body:     `{"message":"Slug already exists"}`,
			sentinel: ErrSlugTaken,
			message:  "Slug already exists",
		},
		{
			name:     "429 maps to ErrRateLimited",
			status:   http.StatusTooManyRequests,
			body:     `{"message":"Too many requests"}`,
			sentinel: ErrRateLimited,
			message:  "Too many requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newError(tt.status, []byte(tt.body))
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{name: "string message", body: `{"message":"boom"}`, expected: "boom"},
		{name: "array message", body: `{"message":["title too short","slug required"]}`, expected: "title too short; slug required"},
		{name: "empty body", body: "", expected: ""},
		{name: "not json", body: "<html>502</html>", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseMessage([]byte(tt.body)))
		})
	}
}

func TestPaymentStatusNormalization(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		connected bool
	}{
		{name: "connected", body: `{"connected":true}`, connected: true},
		{name: "isConnected alias", body: `{"isConnected":true}`, connected: true},
		{name: "snake alias", body: `{"is_connected":true}`, connected: true},
		{name: "explicit false wins over absent aliases", body: `{"connected":false}`, connected: false},
		{name: "empty object", body: `{}`, connected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/mercadopago/status", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(server.URL, 5*time.Second)
			source := &memorySource{access: "a", refresh: "r"}

			connected, err := client.PaymentConnected(context.Background(), source)
			assert.NoError(t, err)
			assert.Equal(t, tt.connected, connected)
		})
	}
}

func TestPaymentConnectURLNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		url  string
	}{
		{name: "redirectUrl", body: `{"redirectUrl":"https://mp.example.com/auth"}`, url: "https://mp.example.com/auth"},
		{name: "redirect_url", body: `{"redirect_url":"https://mp.example.com/auth"}`, url: "https://mp.example.com/auth"},
		{name: "url", body: `{"url":"https://mp.example.com/auth"}`, url: "https://mp.example.com/auth"},
		{name: "init_point", body: `{"init_point":"https://mp.example.com/auth"}`, url: "https://mp.example.com/auth"},
		{name: "first non-empty wins", body: `{"redirectUrl":"https://a.example.com","url":"https://b.example.com"}`, url: "https://a.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/mercadopago/connect", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(server.URL, 5*time.Second)
			source := &memorySource{access: "a", refresh: "r"}

			url, err := client.PaymentConnectURL(context.Background(), source)
			assert.NoError(t, err)
			assert.Equal(t, tt.url, url)
		})
	}
}

func TestGetCampaignFallsBackToSlugSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/campaigns/ayuda-para-juan":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Campaign not found"}`))
		case "/campaigns":
			assert.Equal(t, "ayuda-para-juan", r.URL.Query().Get("search"))
			w.Write([]byte(`{"items":[{"id":"c1","title":"Ayuda para Juan","slug":"ayuda-para-juan"}],"total":1,"page":1}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	campaign, err := client.GetCampaign(context.Background(), "ayuda-para-juan")
	assert.NoError(t, err)
	assert.Equal(t, "c1", campaign.ID)
}

func TestGetCampaignNotFoundAnywhere(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/campaigns/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/campaigns":
			w.Write([]byte(`{"items":[],"total":0,"page":1}`))
		}
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)
	_, err := client.GetCampaign(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
