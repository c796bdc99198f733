package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/models"
	"github.com/octabyte/saveat-admin/storage"
	"github.com/octabyte/saveat-admin/utils/logger"
	"go.uber.org/zap"
)

var ErrInvalidCredential = errors.New("login requires a token and a user with a known role")

// Store is the persistence the manager hydrates from and writes through to.
type Store interface {
	Read(ctx context.Context) storage.Credential
	Write(ctx context.Context, token string, user models.User, remember bool) error
	WriteUser(ctx context.Context, scope enums.Scope, user models.User) error
	Clear(ctx context.Context) error
	Holds(ctx context.Context, scope enums.Scope) bool
}

// Navigator moves the console to another route once a session transition completes.
type Navigator interface {
	Navigate(route string)
}

type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Manager owns the console's single Session. All methods are safe for concurrent use.
type Manager struct {
	store Store
	nav   Navigator

	mu          sync.RWMutex
	state       models.Session
	initialized bool

	// persistMu orders write-backs so storage sees updates in call order.
	persistMu sync.Mutex
}

func NewManager(store Store, nav Navigator) *Manager {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &Manager{
		store: store,
		nav:   nav,
		state: models.Session{IsLoading: true},
	}
}

// Initialize hydrates the session from storage. Only the first call has any effect.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return
	}
	defer func() {
		m.state.IsLoading = false
		m.initialized = true
	}()

	cred := m.store.Read(ctx)
	if !cred.Valid() {
		logger.LogInfo("no stored session found")
		return
	}

	m.state.Token = cred.Token
	m.state.User = cred.User.Clone()
	m.state.Scope = cred.Scope
	logger.LogInfo("session restored",
		zap.String("user_id", cred.User.ID),
		zap.String("role", cred.User.Role.String()),
		zap.String("scope", string(cred.Scope)),
	)
}

// Login establishes the session and persists it. A persistence failure is returned, but the
// in-memory session is set and navigation happens regardless.
func (m *Manager) Login(ctx context.Context, token string, user models.User, remember bool) error {
	if token == "" || !user.Role.Valid() {
		return ErrInvalidCredential
	}

	m.persistMu.Lock()
	persistErr := m.store.Write(ctx, token, user, remember)
	if persistErr != nil {
		logger.LogError("failed to persist session, continuing in memory", zap.Error(persistErr))
	}

	m.mu.Lock()
	m.state = models.Session{
		Token: token,
		User:  user.Clone(),
		Scope: enums.ScopeFor(remember),
	}
	m.initialized = true
	m.mu.Unlock()
	m.persistMu.Unlock()

	logger.LogInfo("admin logged in", zap.String("user_id", user.ID), zap.Bool("remember", remember))
	m.nav.Navigate(enums.RouteLanding)

	if persistErr != nil {
		return fmt.Errorf("persist session: %w", persistErr)
	}
	return nil
}

// Logout clears storage and memory, then navigates to sign-in. Safe to call when logged out.
func (m *Manager) Logout(ctx context.Context) error {
	m.persistMu.Lock()
	clearErr := m.store.Clear(ctx)

	m.mu.Lock()
	m.state = models.Session{}
	m.initialized = true
	m.mu.Unlock()
	m.persistMu.Unlock()

	m.nav.Navigate(enums.RouteSignIn)

	if clearErr != nil {
		logger.LogError("failed to clear stored session", zap.Error(clearErr))
		return fmt.Errorf("clear session: %w", clearErr)
	}
	return nil
}

// UpdateUser merges patch over the current user and writes the full record back to the
// area the session lives in. The merged user is visible to readers before the write starts.
// Without a user in memory it does nothing; without a stored credential it only updates memory.
func (m *Manager) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	m.mu.Lock()
	if m.state.User == nil {
		m.mu.Unlock()
		return models.User{}, nil
	}
	merged := m.state.User.Merge(patch)
	m.state.User = merged.Clone()
	scope := m.state.Scope
	m.mu.Unlock()

	if scope == enums.ScopeNone || !m.store.Holds(ctx, scope) {
		logger.LogDebug("no stored credential, user updated in memory only")
		return merged, nil
	}

	if err := m.store.WriteUser(ctx, scope, merged); err != nil {
		return merged, fmt.Errorf("persist user: %w", err)
	}
	return merged, nil
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.state
	s.User = m.state.User.Clone()
	return s
}

// Reset discards the in-memory session and hydrates again from storage, as a fresh
// console start would.
func (m *Manager) Reset(ctx context.Context) {
	m.mu.Lock()
	m.state = models.Session{IsLoading: true}
	m.initialized = false
	m.mu.Unlock()

	m.Initialize(ctx)
}

// Expire is the forced logout taken when the backend rejects the token. Storage is cleared
// and memory re-hydrated while holding the persistence lock, so an in-flight Login or
// UpdateUser either lands completely before it or not at all. The console then moves to route.
func (m *Manager) Expire(ctx context.Context, route string) error {
	logger.LogWarn("session rejected, forcing reset", zap.String("route", route))

	m.persistMu.Lock()
	clearErr := m.store.Clear(ctx)
	m.Reset(ctx)
	m.persistMu.Unlock()

	m.nav.Navigate(route)

	if clearErr != nil {
		return fmt.Errorf("clear session: %w", clearErr)
	}
	return nil
}
