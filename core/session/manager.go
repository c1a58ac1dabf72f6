package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/neurogrid/storefront/core/apiclient"
	"github.com/neurogrid/storefront/core/logger"
	"github.com/neurogrid/storefront/core/tokenstore"
	"github.com/neurogrid/storefront/core/validator"
	"github.com/neurogrid/storefront/pkg/async"
)

// Backend is the subset of the API client the manager drives.
// *apiclient.Client satisfies it.
type Backend interface {
	Me(ctx context.Context) (apiclient.User, error)
	Login(ctx context.Context, req apiclient.LoginRequest) (apiclient.Token, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (apiclient.Registration, error)
	SetToken(token string)
	ClearToken()
}

// Manager owns session state, the token store and the request credential.
// It is safe for concurrent use. Token store writes and clears are made while holding
// the state lock; backend calls never are.
type Manager struct {
	store              tokenstore.Store
	backend            Backend
	logger             *slog.Logger
	loginAfterRegister bool

	mu       sync.Mutex
	status   Status
	user     *User
	hasToken bool
	expires  time.Time
	epoch    uint64

	subsMu  sync.RWMutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates a manager in the Unauthenticated state. Call Bootstrap once at startup.
func New(store tokenstore.Store, backend Backend, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if backend == nil {
		return nil, ErrNoBackend
	}

	m := &Manager{
		store:   store,
		backend: backend,
		logger:  logger.Discard(),
		status:  Unauthenticated,
		subs:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change and must not block.
// Snapshots from concurrent changes may arrive out of order; compare Epoch.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.subsMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subsMu.Unlock()

	return func() {
		m.subsMu.Lock()
		delete(m.subs, id)
		m.subsMu.Unlock()
	}
}

// Bootstrap derives the session from the stored token. It never fails:
// a missing token leaves the session Unauthenticated, and a token that
// cannot be resolved is cleared. A Login or Logout that lands while the
// store is being read wins; Bootstrap then returns the current state
// without resolving. If ctx is done before resolution completes the
// session is left Unauthenticated but the stored token is kept, so an
// interrupted start does not log the user out.
func (m *Manager) Bootstrap(ctx context.Context) Snapshot {
	m.mu.Lock()
	seen := m.epoch
	m.mu.Unlock()

	token, ok := m.store.Read(ctx)

	m.mu.Lock()
	if m.epoch != seen {
		snap := m.snapshotLocked()
		m.mu.Unlock()

		m.logger.Debug("session changed while reading token store",
			logger.Component("session"),
			logger.Action("bootstrap"),
			logger.Epoch(seen),
			logger.Result("stale"),
		)
		return snap
	}

	if !ok {
		changed := false
		if m.status != Resolving && m.status != Authenticated {
			m.status, m.user, m.hasToken = Unauthenticated, nil, false
			m.expires = time.Time{}
			changed = true
		}
		snap := m.snapshotLocked()
		m.mu.Unlock()

		if changed {
			m.notify(snap)
		}
		return snap
	}

	epoch := m.beginLocked(token)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	snap, _ = m.resolve(ctx, epoch)
	return snap
}

// BootstrapAsync runs Bootstrap in the background.
func (m *Manager) BootstrapAsync(ctx context.Context) *async.Future[Snapshot] {
	return async.Go(ctx, func(ctx context.Context) (Snapshot, error) {
		return m.Bootstrap(ctx), nil
	})
}

// Login authenticates with email and password. Both must be non-empty; any
// further validation is left to the backend. A rejected login leaves the
// session unchanged and returns an error wrapping ErrLoginFailed and the
// backend error.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	req := apiclient.LoginRequest{Email: email, Password: password}
	if err := validator.ValidateStruct(&req); err != nil {
		return m.Snapshot(), err
	}

	tok, err := m.backend.Login(ctx, req)
	if err != nil {
		m.logger.Info("login rejected",
			logger.Component("session"),
			logger.Action("login"),
			logger.Error(err),
		)
		return m.Snapshot(), errors.Join(ErrLoginFailed, err)
	}

	epoch, err := m.adopt(ctx, tok.AccessToken)
	if err != nil {
		return m.Snapshot(), err
	}
	return m.resolve(ctx, epoch)
}

// Register creates an account. The session is not changed unless the
// manager was built WithLoginAfterRegister.
func (m *Manager) Register(ctx context.Context, email, password, fullName string) (apiclient.Registration, error) {
	req := apiclient.RegisterRequest{Email: email, Password: password, FullName: fullName}
	if err := validator.ValidateStruct(&req); err != nil {
		return apiclient.Registration{}, err
	}

	reg, err := m.backend.Register(ctx, req)
	if err != nil {
		return apiclient.Registration{}, errors.Join(ErrRegisterFailed, err)
	}

	if m.loginAfterRegister {
		if _, err := m.Login(ctx, email, password); err != nil {
			return reg, err
		}
	}
	return reg, nil
}

// Logout clears the token and returns to Unauthenticated. It invalidates
// any resolution in flight. Calling it repeatedly is harmless.
func (m *Manager) Logout(ctx context.Context) Snapshot {
	m.mu.Lock()
	m.epoch++
	m.status, m.user, m.hasToken = Unauthenticated, nil, false
	m.expires = time.Time{}
	m.backend.ClearToken()
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn("token store clear failed",
			logger.Component("session"),
			logger.Action("logout"),
			logger.Error(err),
		)
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return snap
}

// adopt persists a fresh token and starts resolving it.
func (m *Manager) adopt(ctx context.Context, token string) (uint64, error) {
	m.mu.Lock()
	if err := m.store.Write(ctx, token); err != nil {
		m.mu.Unlock()
		return 0, errors.Join(ErrPersistToken, err)
	}
	epoch := m.beginLocked(token)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return epoch, nil
}

func (m *Manager) beginLocked(token string) uint64 {
	m.epoch++
	m.status, m.user, m.hasToken = Resolving, nil, true
	m.expires = time.Time{}
	if c, ok := tokenstore.Inspect(token); ok {
		m.expires = c.ExpiresAt
	}
	m.backend.SetToken(token)
	return m.epoch
}

// resolve fetches the current user and applies the result if epoch is still current.
func (m *Manager) resolve(ctx context.Context, epoch uint64) (Snapshot, error) {
	user, err := m.backend.Me(ctx)

	m.mu.Lock()
	if epoch != m.epoch {
		snap := m.snapshotLocked()
		m.mu.Unlock()

		m.logger.Debug("discarding stale resolution",
			logger.Component("session"),
			logger.Epoch(epoch),
			logger.Result("stale"),
		)
		return snap, ErrSuperseded
	}

	if err != nil && ctx.Err() != nil {
		// The caller gave up. Detach the credential but keep the stored
		// token for the next start.
		m.status, m.user, m.hasToken = Unauthenticated, nil, false
		m.expires = time.Time{}
		m.backend.ClearToken()
		snap := m.snapshotLocked()
		m.mu.Unlock()

		m.logger.Info("session resolution interrupted, token kept",
			logger.Component("session"),
			logger.Epoch(epoch),
			logger.Result("canceled"),
			logger.Error(err),
		)
		m.notify(snap)
		return snap, errors.Join(ErrResolveFailed, err)
	}

	if err != nil {
		m.status, m.user, m.hasToken = Unauthenticated, nil, false
		m.expires = time.Time{}
		m.backend.ClearToken()
		if clearErr := m.store.Clear(context.WithoutCancel(ctx)); clearErr != nil {
			m.logger.Warn("token store clear failed",
				logger.Component("session"),
				logger.Error(clearErr),
			)
		}
		snap := m.snapshotLocked()
		m.mu.Unlock()

		m.logger.Info("session resolution failed, token cleared",
			logger.Component("session"),
			logger.Epoch(epoch),
			logger.Result("failure"),
			logger.Error(err),
		)
		m.notify(snap)
		return snap, errors.Join(ErrResolveFailed, err)
	}

	u := user
	m.status, m.user = Authenticated, &u
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Info("session resolved",
		logger.Component("session"),
		logger.Epoch(epoch),
		logger.UserID(u.ID.String()),
		logger.Result("success"),
	)
	m.notify(snap)
	return snap, nil
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:    m.status,
		HasToken:  m.hasToken,
		Epoch:     m.epoch,
		ExpiresAt: m.expires,
	}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

func (m *Manager) notify(snap Snapshot) {
	m.subsMu.RLock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subsMu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}
