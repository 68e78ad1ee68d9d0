// Package gate decides whether a user may reach the campaign creation flow.
// The preconditions run in a fixed order and the first unmet one wins: a
// missing session is reported before a wrong role, and the payment provider is
// only ever consulted for a beneficiary.
package gate

import (
	"context"
	"errors"

	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// ErrNotDonor is returned when the inline role change is requested by a
// session that is not a donor.
var ErrNotDonor = errors.New("only donors can switch to beneficiary")

// Decision tells the caller what to do next.
type Decision string

const (
	// DecisionProceed: all preconditions hold, continue to the creation form.
	DecisionProceed Decision = "proceed"
	// DecisionLogin: no session, authenticate first.
	DecisionLogin Decision = "login"
	// DecisionChangeRole: signed in as DONOR, offer the inline role change.
	DecisionChangeRole Decision = "change-role"
	// DecisionConnectPayment: beneficiary without a linked MercadoPago account.
	DecisionConnectPayment Decision = "connect-payment"
	// DecisionDenied: terminal, no remediation offered.
	DecisionDenied Decision = "denied"
)

// Result is the outcome of one gate evaluation.
type Result struct {
	Decision Decision `json:"decision"`
	// ConnectURL carries the hosted authorization URL when the decision is
	// connect-payment.
	ConnectURL string `json:"connectUrl,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// PaymentChecker is the slice of the upstream client the gate needs.
type PaymentChecker interface {
	PaymentConnected(ctx context.Context, ts upstream.TokenSource) (bool, error)
	PaymentConnectURL(ctx context.Context, ts upstream.TokenSource) (string, error)
}

// RoleUpdater covers the inline role-change remediation.
type RoleUpdater interface {
	UpdateRole(ctx context.Context, ts upstream.TokenSource, role upstream.Role) error
	Me(ctx context.Context, ts upstream.TokenSource) (*upstream.User, error)
}

// SessionStore is the slice of the session store the gate needs.
type SessionStore interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	SetUser(ctx context.Context, id string, user upstream.User) error
	SetPaymentConnected(ctx context.Context, id string, connected bool) error
	Source(id string) *session.Source
}

// Recorder persists gate evaluations for the audit trail. Failures to record
// never block the user.
type Recorder interface {
	Record(ctx context.Context, userID string, role upstream.Role, decision Decision)
}

// Gate evaluates the start-a-campaign preconditions.
type Gate struct {
	sessions SessionStore
	payments PaymentChecker
	roles    RoleUpdater
	recorder Recorder
}

// New creates a gate. recorder may be nil.
func New(sessions SessionStore, payments PaymentChecker, roles RoleUpdater, recorder Recorder) *Gate {
	return &Gate{sessions: sessions, payments: payments, roles: roles, recorder: recorder}
}

// Check runs the precondition chain for the session with the given ID. An
// empty ID means no session cookie was presented.
func (g *Gate) Check(ctx context.Context, sessionID string) (*Result, error) {
	if sessionID == "" {
		return &Result{Decision: DecisionLogin}, nil
	}
	sess, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return &Result{Decision: DecisionLogin}, nil
		}
		return nil, err
	}

	result, err := g.evaluate(ctx, sess)
	if err != nil {
		return nil, err
	}
	if g.recorder != nil {
		g.recorder.Record(ctx, sess.User.ID, sess.Role(), result.Decision)
	}
	return result, nil
}

func (g *Gate) evaluate(ctx context.Context, sess *session.Session) (*Result, error) {
	switch sess.Role() {
	case upstream.RoleBeneficiary:
		// fall through to the payment check
	case upstream.RoleDonor:
		return &Result{Decision: DecisionChangeRole, Reason: "solo los beneficiarios pueden crear campañas"}, nil
	default:
		return &Result{Decision: DecisionDenied, Reason: "tu cuenta no puede crear campañas"}, nil
	}

	if sess.PaymentConnected != nil && *sess.PaymentConnected {
		return &Result{Decision: DecisionProceed}, nil
	}

	source := g.sessions.Source(sess.ID)
	connected, err := g.payments.PaymentConnected(ctx, source)
	if err != nil {
		if errors.Is(err, upstream.ErrSessionExpired) {
			return &Result{Decision: DecisionLogin}, nil
		}
		// A failed probe degrades to the remediation path rather than an
		// opaque error.
		return g.connectResult(ctx, source), nil
	}
	if !connected {
		return g.connectResult(ctx, source), nil
	}

	if err := g.sessions.SetPaymentConnected(ctx, sess.ID, true); err != nil {
		return nil, err
	}
	return &Result{Decision: DecisionProceed}, nil
}

func (g *Gate) connectResult(ctx context.Context, source *session.Source) *Result {
	result := &Result{
		Decision: DecisionConnectPayment,
		Reason:   "conectá tu cuenta de Mercado Pago para recibir donaciones",
	}
	if url, err := g.payments.PaymentConnectURL(ctx, source); err == nil {
		result.ConnectURL = url
	}
	return result
}

// ChangeRole performs the inline DONOR→BENEFICIARY remediation and re-runs the
// full precondition chain afterwards.
func (g *Gate) ChangeRole(ctx context.Context, sessionID string) (*Result, error) {
	sess, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return &Result{Decision: DecisionLogin}, nil
		}
		return nil, err
	}
	if sess.Role() != upstream.RoleDonor {
		return nil, ErrNotDonor
	}

	source := g.sessions.Source(sess.ID)
	if err := g.roles.UpdateRole(ctx, source, upstream.RoleBeneficiary); err != nil {
		if errors.Is(err, upstream.ErrSessionExpired) {
			return &Result{Decision: DecisionLogin}, nil
		}
		return nil, err
	}
	user, err := g.roles.Me(ctx, source)
	if err != nil {
		return nil, err
	}
	if err := g.sessions.SetUser(ctx, sess.ID, *user); err != nil {
		return nil, err
	}

	return g.Check(ctx, sessionID)
}
