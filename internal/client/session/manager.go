// Package session owns the authentication session lifecycle: restore on
// startup, login/logout transitions, the persisted credential slot, and the
// "session expired" signal consumed by the presentation layer.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelichko/snipcli/internal/client/models"
	"github.com/avelichko/snipcli/internal/common"
	"github.com/avelichko/snipcli/internal/logging"
)

// State is the session lifecycle state. Unknown and Restoring exist only
// before Restore completes; afterwards exactly one of Authenticated or
// Anonymous holds, and both remain reachable from each other via
// login/logout.
type State int

const (
	StateUnknown State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the auth resource service the manager drives.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.Profile, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error)
	Logout(ctx context.Context) error
}

// ProfileUpdate is a partial, local-only profile edit. Nil fields are left
// unchanged. Remote persistence is a collaborator concern.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// Manager owns the session state object. All mutation goes through its
// methods; the gateway reads the token via Token() on every call
// (single-writer discipline, guarded by the mutex).
type Manager struct {
	mu        sync.Mutex
	state     State
	session   *models.Session
	store     Store
	auth      AuthAPI
	onExpired func()
	log       logging.Logger
}

func NewManager(store Store, log logging.Logger) *Manager {
	return &Manager{state: StateUnknown, store: store, log: log}
}

// AttachAuth binds the auth service. Done after construction because the
// service's gateway needs the manager as its token source.
func (m *Manager) AttachAuth(a AuthAPI) {
	m.auth = a
}

// OnExpired registers the single "session expired" handler. It fires at most
// once per authenticated session, no matter how many in-flight calls observe
// the authorization failure.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = fn
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Current returns a copy of the cached profile, or nil when anonymous.
func (m *Manager) Current() *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	p := m.session.Profile
	return &p
}

// Token implements api.TokenSource. Empty when no session exists.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// TokenExpiry reports the bearer token's exp claim, when present. The token
// is parsed without verification; validating it is the server's job.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	token := m.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Restore runs once at startup. If a persisted token exists the session is
// optimistically restored from the cached profile, then revalidated against
// /api/auth/me. Revalidation failure for reasons other than authorization
// keeps the optimistic profile in place: availability over strict freshness.
// After Restore returns, the state is Authenticated or Anonymous — never
// Restoring.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	m.state = StateRestoring
	m.mu.Unlock()

	sess, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "credential slot unreadable, starting anonymous", "error", err)
	}
	if sess == nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.session = sess
	m.state = StateAuthenticated
	m.mu.Unlock()

	fresh, err := m.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// The gateway already tore the session down via Invalidate.
			return
		}
		m.log.Warn(ctx, "profile revalidation failed, keeping cached profile", "error", err)
		return
	}

	m.mu.Lock()
	if m.state == StateAuthenticated && m.session != nil {
		m.session.Profile = *fresh
		sess = m.session
	} else {
		sess = nil
	}
	m.mu.Unlock()

	if sess != nil {
		if err := m.store.Save(ctx, sess); err != nil {
			m.log.Warn(ctx, "failed to persist refreshed profile", "error", err)
		}
	}
}

// Login authenticates, persists the credential slot and transitions to
// Authenticated. Credential rejection surfaces as
// common.ErrorInvalidCredentials.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.Session, error) {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{Profile: resp.AsProfile(), Token: resp.Token}

	if err := m.store.Save(ctx, sess); err != nil {
		m.log.Warn(ctx, "failed to persist credentials, session will not survive restart", "error", err)
	}

	m.mu.Lock()
	m.session = sess
	m.state = StateAuthenticated
	m.mu.Unlock()

	return sess, nil
}

// Register creates an account. It never mutates session state: registration
// success does not imply login.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResult, error) {
	return m.auth.Register(ctx, req)
}

// Logout always transitions to Anonymous and clears the persisted slot. The
// remote call is best-effort only; its failure is swallowed.
func (m *Manager) Logout(ctx context.Context) {
	if m.IsAuthenticated() {
		if err := m.auth.Logout(ctx); err != nil {
			m.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
		}
	}

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear credential slot", "error", err)
	}

	m.mu.Lock()
	m.session = nil
	m.state = StateAnonymous
	m.mu.Unlock()
}

// UpdateProfile merges the partial edit into the cached profile and refreshes
// the persisted snapshot. It does not contact the remote service.
func (m *Manager) UpdateProfile(ctx context.Context, upd ProfileUpdate) {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}
	if upd.Email != nil {
		m.session.Profile.Email = *upd.Email
	}
	if upd.FirstName != nil {
		m.session.Profile.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		m.session.Profile.LastName = *upd.LastName
	}
	sess := *m.session
	m.mu.Unlock()

	if err := m.store.Save(ctx, &sess); err != nil {
		m.log.Warn(ctx, "failed to persist profile edit", "error", err)
	}
}

// Invalidate is the gateway's 401 hook. Only an Authenticated session reacts,
// so concurrent authorization failures collapse into exactly one expiry
// signal, and a rejected login attempt produces none.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.session = nil
	m.state = StateAnonymous
	fn := m.onExpired
	m.mu.Unlock()

	if err := m.store.Clear(context.Background()); err != nil {
		m.log.Warn(context.Background(), "failed to clear credential slot", "error", err)
	}

	if fn != nil {
		fn()
	}
}
