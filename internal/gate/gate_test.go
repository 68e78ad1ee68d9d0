package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// MockSessionStore is a mock implementation of SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionStore) SetUser(ctx context.Context, id string, user upstream.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockSessionStore) SetPaymentConnected(ctx context.Context, id string, connected bool) error {
	args := m.Called(ctx, id, connected)
	return args.Error(0)
}

func (m *MockSessionStore) Source(id string) *session.Source {
	m.Called(id)
	return nil
}

// MockPayments is a mock implementation of PaymentChecker.
type MockPayments struct {
	mock.Mock
}

func (m *MockPayments) PaymentConnected(ctx context.Context, ts upstream.TokenSource) (bool, error) {
	args := m.Called(ctx, ts)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayments) PaymentConnectURL(ctx context.Context, ts upstream.TokenSource) (string, error) {
	args := m.Called(ctx, ts)
	return args.String(0), args.Error(1)
}

// MockRoles is a mock implementation of RoleUpdater.
type MockRoles struct {
	mock.Mock
}

func (m *MockRoles) UpdateRole(ctx context.Context, ts upstream.TokenSource, role upstream.Role) error {
	args := m.Called(ctx, ts, role)
	return args.Error(0)
}

func (m *MockRoles) Me(ctx context.Context, ts upstream.TokenSource) (*upstream.User, error) {
	args := m.Called(ctx, ts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.User), args.Error(1)
}

// MockRecorder is a mock implementation of Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, userID string, role upstream.Role, decision Decision) {
	m.Called(ctx, userID, role, decision)
}

func sessionWith(role upstream.Role) *session.Session {
	return &session.Session{
		ID:   "sess-1",
		User: upstream.User{ID: "u1", Name: "Juan", Role: role},
	}
}

func TestGateCheck(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name             string
		sessionID        string
		setupMocks       func(*MockSessionStore, *MockPayments, *MockRecorder)
		expectedDecision Decision
		expectConnectURL string
	}{
		{
			name:             "no session cookie",
			sessionID:        "",
			setupMocks:       func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {},
			expectedDecision: DecisionLogin,
		},
		{
			name:      "expired session",
			sessionID: "gone",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "gone").Return(nil, session.ErrNotFound)
			},
			expectedDecision: DecisionLogin,
		},
		{
			name:      "donor gets the role remediation",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleDonor), nil)
				rec.On("Record", mock.Anything, "u1", upstream.RoleDonor, DecisionChangeRole)
			},
			expectedDecision: DecisionChangeRole,
		},
		{
			name:      "admin is denied with no remediation",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleAdmin), nil)
				rec.On("Record", mock.Anything, "u1", upstream.RoleAdmin, DecisionDenied)
			},
			expectedDecision: DecisionDenied,
		},
		{
			name:      "beneficiary with cached connection proceeds without a probe",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				sess := sessionWith(upstream.RoleBeneficiary)
				sess.PaymentConnected = boolPtr(true)
				store.On("Get", mock.Anything, "sess-1").Return(sess, nil)
				rec.On("Record", mock.Anything, "u1", upstream.RoleBeneficiary, DecisionProceed)
			},
			expectedDecision: DecisionProceed,
		},
		{
			name:      "beneficiary with linked account proceeds",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleBeneficiary), nil)
				store.On("Source", "sess-1").Return(nil)
				payments.On("PaymentConnected", mock.Anything, mock.Anything).Return(true, nil)
				store.On("SetPaymentConnected", mock.Anything, "sess-1", true).Return(nil)
				rec.On("Record", mock.Anything, "u1", upstream.RoleBeneficiary, DecisionProceed)
			},
			expectedDecision: DecisionProceed,
		},
		{
			name:      "beneficiary without a linked account gets the connect URL",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleBeneficiary), nil)
				store.On("Source", "sess-1").Return(nil)
				payments.On("PaymentConnected", mock.Anything, mock.Anything).Return(false, nil)
				payments.On("PaymentConnectURL", mock.Anything, mock.Anything).Return("https://mp.example.com/auth", nil)
				rec.On("Record", mock.Anything, "u1", upstream.RoleBeneficiary, DecisionConnectPayment)
			},
			expectedDecision: DecisionConnectPayment,
			expectConnectURL: "https://mp.example.com/auth",
		},
		{
			name:      "failed probe degrades to the remediation path",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleBeneficiary), nil)
				store.On("Source", "sess-1").Return(nil)
				payments.On("PaymentConnected", mock.Anything, mock.Anything).Return(false, errors.New("upstream down"))
				payments.On("PaymentConnectURL", mock.Anything, mock.Anything).Return("", errors.New("upstream down"))
				rec.On("Record", mock.Anything, "u1", upstream.RoleBeneficiary, DecisionConnectPayment)
			},
			expectedDecision: DecisionConnectPayment,
		},
		{
			name:      "expired tokens during the probe turn into login",
			sessionID: "sess-1",
			setupMocks: func(store *MockSessionStore, payments *MockPayments, rec *MockRecorder) {
				store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleBeneficiary), nil)
				store.On("Source", "sess-1").Return(nil)
				payments.On("PaymentConnected", mock.Anything, mock.Anything).Return(false, upstream.ErrSessionExpired)
				rec.On("Record", mock.Anything, "u1", upstream.RoleBeneficiary, DecisionLogin)
			},
			expectedDecision: DecisionLogin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockSessionStore)
			payments := new(MockPayments)
			recorder := new(MockRecorder)
			tt.setupMocks(store, payments, recorder)

			g := New(store, payments, new(MockRoles), recorder)
			result, err := g.Check(context.Background(), tt.sessionID)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedDecision, result.Decision)
			assert.Equal(t, tt.expectConnectURL, result.ConnectURL)

			store.AssertExpectations(t)
			payments.AssertExpectations(t)
			recorder.AssertExpectations(t)
		})
	}
}

func TestGateCheckNeverProbesPaymentForNonBeneficiaries(t *testing.T) {
	for _, role := range []upstream.Role{upstream.RoleDonor, upstream.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			store := new(MockSessionStore)
			payments := new(MockPayments)
			store.On("Get", mock.Anything, "sess-1").Return(sessionWith(role), nil)

			g := New(store, payments, new(MockRoles), nil)
			_, err := g.Check(context.Background(), "sess-1")

			assert.NoError(t, err)
			payments.AssertNotCalled(t, "PaymentConnected", mock.Anything, mock.Anything)
			payments.AssertNotCalled(t, "PaymentConnectURL", mock.Anything, mock.Anything)
		})
	}
}

func TestGateChangeRole(t *testing.T) {
	t.Run("donor becomes beneficiary and the gate re-runs", func(t *testing.T) {
		store := new(MockSessionStore)
		payments := new(MockPayments)
		roles := new(MockRoles)

		store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleDonor), nil).Once()
		store.On("Source", "sess-1").Return(nil)
		roles.On("UpdateRole", mock.Anything, mock.Anything, upstream.RoleBeneficiary).Return(nil)
		updated := &upstream.User{ID: "u1", Name: "Juan", Role: upstream.RoleBeneficiary}
		roles.On("Me", mock.Anything, mock.Anything).Return(updated, nil)
		store.On("SetUser", mock.Anything, "sess-1", *updated).Return(nil)

		store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleBeneficiary), nil).Once()
		payments.On("PaymentConnected", mock.Anything, mock.Anything).Return(true, nil)
		store.On("SetPaymentConnected", mock.Anything, "sess-1", true).Return(nil)

		g := New(store, payments, roles, nil)
		result, err := g.ChangeRole(context.Background(), "sess-1")

		assert.NoError(t, err)
		assert.Equal(t, DecisionProceed, result.Decision)
		store.AssertExpectations(t)
		roles.AssertExpectations(t)
	})

	t.Run("non-donor cannot use the inline change", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("Get", mock.Anything, "sess-1").Return(sessionWith(upstream.RoleBeneficiary), nil)

		g := New(store, new(MockPayments), new(MockRoles), nil)
		_, err := g.ChangeRole(context.Background(), "sess-1")

		assert.ErrorIs(t, err, ErrNotDonor)
	})

	t.Run("expired session maps to login", func(t *testing.T) {
		store := new(MockSessionStore)
		store.On("Get", mock.Anything, "gone").Return(nil, session.ErrNotFound)

		g := New(store, new(MockPayments), new(MockRoles), nil)
		result, err := g.ChangeRole(context.Background(), "gone")

		assert.NoError(t, err)
		assert.Equal(t, DecisionLogin, result.Decision)
	})
}
