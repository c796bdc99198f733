package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/octabyte/saveat-admin/db/redis"
	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/models"
	"github.com/octabyte/saveat-admin/session"
	"github.com/octabyte/saveat-admin/storage"
	"github.com/octabyte/saveat-admin/storage/memory"
)

type recorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}

func ptr(s string) *string { return &s }

func gestor() models.User {
	return models.User{
		ID:        "u-7",
		FirstName: "Ana",
		LastName:  "Ruiz",
		Email:     "ana@saveat.mx",
		Role:      enums.RoleGestor,
	}
}

type ManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	mr      *miniredis.Miniredis
	client  *goredis.Client
	durable *redis.Area
	session *memory.Area
	store   *storage.CredentialStore
	nav     *recorder
	manager *session.Manager
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mr = miniredis.RunT(s.T())
	s.client = goredis.NewClient(&goredis.Options{Addr: s.mr.Addr()})
	s.T().Cleanup(func() { s.client.Close() })

	s.durable = redis.NewArea(s.client, "saveat:")
	s.session = memory.NewArea()
	s.store = storage.NewCredentialStore(s.durable, s.session)
	s.nav = &recorder{}
	s.manager = session.NewManager(s.store, s.nav)
}

// newTab simulates a fresh console start: same durable area, empty session-scoped area.
func (s *ManagerTestSuite) newTab() *session.Manager {
	store := storage.NewCredentialStore(s.durable, memory.NewArea())
	m := session.NewManager(store, nil)
	m.Initialize(s.ctx)
	return m
}

func (s *ManagerTestSuite) TestStartsLoading() {
	snap := s.manager.Snapshot()
	s.True(snap.IsLoading)
	s.False(snap.IsAuthenticated())

	s.manager.Initialize(s.ctx)
	s.False(s.manager.Snapshot().IsLoading)
}

func (s *ManagerTestSuite) TestLoginNavigatesToLanding() {
	s.manager.Initialize(s.ctx)
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))

	snap := s.manager.Snapshot()
	s.Equal("tok1", snap.Token)
	s.Equal(enums.RoleGestor, snap.Role())
	s.Equal(enums.ScopeDurable, snap.Scope)
	s.Equal(enums.RouteLanding, s.nav.last())
}

func (s *ManagerTestSuite) TestRememberedLoginSurvivesRestart() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))

	snap := s.newTab().Snapshot()
	s.Equal("tok1", snap.Token)
	s.Equal(gestor(), *snap.User)
	s.Equal(enums.ScopeDurable, snap.Scope)
}

func (s *ManagerTestSuite) TestSessionLoginDoesNotSurviveRestart() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok2", gestor(), false))

	s.False(s.newTab().Snapshot().IsAuthenticated())

	sameTab := session.NewManager(s.store, nil)
	sameTab.Initialize(s.ctx)
	s.Equal("tok2", sameTab.Snapshot().Token)
	s.Equal(enums.ScopeSession, sameTab.Snapshot().Scope)
}

func (s *ManagerTestSuite) TestLogoutEmptiesBothAreas() {
	for _, remember := range []bool{true, false} {
		s.Require().NoError(s.manager.Login(s.ctx, "tok", gestor(), remember))
		s.Require().NoError(s.manager.Logout(s.ctx))

		s.False(s.manager.Snapshot().IsAuthenticated())
		s.Empty(s.mr.Keys())
		s.True(areaEmpty(s.ctx, s.session))
		s.Equal(enums.RouteSignIn, s.nav.last())
	}
}

func (s *ManagerTestSuite) TestLogoutIsIdempotent() {
	s.manager.Initialize(s.ctx)
	s.Require().NoError(s.manager.Logout(s.ctx))
	s.Require().NoError(s.manager.Logout(s.ctx))

	s.Equal([]string{enums.RouteSignIn, enums.RouteSignIn}, s.nav.routes)
	s.False(s.manager.Snapshot().IsLoading)
}

func (s *ManagerTestSuite) TestUpdateUserPersistsToDurable() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))

	updated, err := s.manager.UpdateUser(s.ctx, models.UserPatch{Phone: ptr("555")})
	s.Require().NoError(err)
	s.Equal("555", *updated.Phone)

	raw, err := s.mr.Get("saveat:adminUser")
	s.Require().NoError(err)
	s.Contains(raw, `"phone":"555"`)
	s.Contains(raw, `"role":"gestor"`)

	snap := s.newTab().Snapshot()
	s.Equal("555", *snap.User.Phone)
	s.Equal(enums.RoleGestor, snap.Role())
}

func (s *ManagerTestSuite) TestUpdateUserPersistsToSessionArea() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), false))

	_, err := s.manager.UpdateUser(s.ctx, models.UserPatch{City: ptr("Monterrey")})
	s.Require().NoError(err)

	raw, err := s.session.Get(s.ctx, storage.UserKey)
	s.Require().NoError(err)
	s.Contains(raw, `"city":"Monterrey"`)
	s.False(s.mr.Exists("saveat:adminUser"))
}

func (s *ManagerTestSuite) TestUpdateUserIsIdempotent() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))
	patch := models.UserPatch{FirstName: ptr("Ana María"), Country: ptr("MX")}

	once, err := s.manager.UpdateUser(s.ctx, patch)
	s.Require().NoError(err)
	twice, err := s.manager.UpdateUser(s.ctx, patch)
	s.Require().NoError(err)

	s.Equal(once, twice)
	s.Equal(once, *s.manager.Snapshot().User)
}

func (s *ManagerTestSuite) TestUpdateUserWithoutSession() {
	s.manager.Initialize(s.ctx)

	updated, err := s.manager.UpdateUser(s.ctx, models.UserPatch{Phone: ptr("1")})
	s.NoError(err)
	s.Empty(updated.ID)
	s.Empty(s.mr.Keys())
}

func (s *ManagerTestSuite) TestUpdateUserAfterStorageClearedStaysInMemory() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))
	s.Require().NoError(s.store.Clear(s.ctx))

	updated, err := s.manager.UpdateUser(s.ctx, models.UserPatch{Phone: ptr("555")})
	s.Require().NoError(err)
	s.Equal("555", *updated.Phone)
	s.Empty(s.mr.Keys(), "no half pair is written back")
}

func (s *ManagerTestSuite) TestLoginSurvivesStorageFailure() {
	s.mr.SetError("OOM command not allowed when used memory > 'maxmemory'.")

	err := s.manager.Login(s.ctx, "tok1", gestor(), true)
	s.Error(err)
	s.Equal("tok1", s.manager.Snapshot().Token)
	s.Equal(enums.RouteLanding, s.nav.last())
}

func (s *ManagerTestSuite) TestLoginRejectsInvalidCredential() {
	user := gestor()
	user.Role = "owner"

	s.ErrorIs(s.manager.Login(s.ctx, "tok", user, true), session.ErrInvalidCredential)
	s.ErrorIs(s.manager.Login(s.ctx, "", gestor(), true), session.ErrInvalidCredential)
	s.Empty(s.nav.routes)
}

func (s *ManagerTestSuite) TestSnapshotIsACopy() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))

	snap := s.manager.Snapshot()
	snap.User.FirstName = "changed"

	s.Equal("Ana", s.manager.Snapshot().User.FirstName)
}

func (s *ManagerTestSuite) TestExpireClearsStorageAndMemory() {
	s.Require().NoError(s.manager.Login(s.ctx, "tok1", gestor(), true))

	s.Require().NoError(s.manager.Expire(s.ctx, enums.RouteSignIn))

	snap := s.manager.Snapshot()
	s.False(snap.IsAuthenticated())
	s.False(snap.IsLoading)
	s.Empty(s.mr.Keys())
	s.True(areaEmpty(s.ctx, s.session))
	s.Equal(enums.RouteSignIn, s.nav.last())
	s.False(s.newTab().Snapshot().IsAuthenticated())
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

type brokenStore struct {
	session.Store
}

func (brokenStore) Read(context.Context) storage.Credential { panic("storage unavailable") }

func TestInitializeClearsLoadingOnPanic(t *testing.T) {
	m := session.NewManager(brokenStore{}, nil)

	require.Panics(t, func() { m.Initialize(context.Background()) })
	assert.False(t, m.Snapshot().IsLoading)
}

type countingStore struct {
	session.Store
	mu     sync.Mutex
	writes []string
}

func (c *countingStore) Holds(context.Context, enums.Scope) bool { return true }

func (c *countingStore) WriteUser(_ context.Context, _ enums.Scope, user models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user.Phone == nil {
		return errors.New("missing phone")
	}
	c.writes = append(c.writes, *user.Phone)
	return nil
}

func (c *countingStore) Write(context.Context, string, models.User, bool) error { return nil }

func TestConcurrentUpdatesLastWriteWins(t *testing.T) {
	store := &countingStore{}
	m := session.NewManager(store, nil)
	require.NoError(t, m.Login(context.Background(), "tok", gestor(), true))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(phone string) {
			defer wg.Done()
			_, err := m.UpdateUser(context.Background(), models.UserPatch{Phone: ptr(phone)})
			assert.NoError(t, err)
		}(string(rune('a' + i)))
	}
	wg.Wait()

	require.Len(t, store.writes, 20)
	assert.Equal(t, store.writes[len(store.writes)-1], *m.Snapshot().User.Phone)
}

type readOnlyStore struct {
	countingStore
}

var errReadOnly = errors.New("READONLY You can't write against a read only replica.")

func (*readOnlyStore) WriteUser(context.Context, enums.Scope, models.User) error { return errReadOnly }

func TestUpdateUserReportsPersistFailure(t *testing.T) {
	m := session.NewManager(&readOnlyStore{}, nil)
	require.NoError(t, m.Login(context.Background(), "tok1", gestor(), true))

	updated, err := m.UpdateUser(context.Background(), models.UserPatch{Phone: ptr("555")})
	assert.ErrorIs(t, err, errReadOnly)
	assert.Equal(t, "555", *updated.Phone)
	assert.Equal(t, "555", *m.Snapshot().User.Phone, "memory is updated even when the write fails")
}

func areaEmpty(ctx context.Context, area storage.Area) bool {
	for _, key := range []string{storage.TokenKey, storage.UserKey} {
		if _, err := area.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			return false
		}
	}
	return true
}

// gatedStore holds Write until release is closed.
type gatedStore struct {
	*storage.CredentialStore
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Write(ctx context.Context, token string, user models.User, remember bool) error {
	close(g.entered)
	<-g.release
	return g.CredentialStore.Write(ctx, token, user, remember)
}

func TestExpireWaitsForInFlightLogin(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		CredentialStore: storage.NewCredentialStore(memory.NewArea(), memory.NewArea()),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	m := session.NewManager(store, nil)
	m.Initialize(ctx)

	loginDone := make(chan error, 1)
	go func() { loginDone <- m.Login(ctx, "tok", gestor(), true) }()
	<-store.entered

	expired := make(chan error, 1)
	go func() { expired <- m.Expire(ctx, enums.RouteSignIn) }()

	select {
	case <-expired:
		t.Fatal("forced logout ran while login was still persisting")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	require.NoError(t, <-loginDone)

	select {
	case err := <-expired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("forced logout never completed")
	}

	assert.False(t, m.Snapshot().IsAuthenticated())
	assert.False(t, store.Read(ctx).Valid(), "memory and storage agree after the forced logout")
}

func TestDegradedWithoutDurableArea(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client := goredis.NewClient(&goredis.Options{Addr: addr, MaxRetries: -1})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	store := storage.NewCredentialStore(redis.NewArea(client, "saveat:"), memory.NewArea())
	nav := &recorder{}
	m := session.NewManager(store, nav)

	m.Initialize(ctx)
	snap := m.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.False(t, snap.IsAuthenticated())

	require.NoError(t, m.Login(ctx, "tok", gestor(), false))
	assert.True(t, m.Snapshot().IsAuthenticated())
	assert.Equal(t, "tok", store.Token(ctx))
	assert.Equal(t, enums.RouteLanding, nav.last())

	err := m.Login(ctx, "tok2", gestor(), true)
	assert.Error(t, err, "a remembered login cannot reach the durable area")
	snap = m.Snapshot()
	assert.True(t, snap.IsAuthenticated())
	assert.Equal(t, "tok2", snap.Token)

	assert.Error(t, m.Logout(ctx), "the durable area could not be cleared")
	assert.False(t, m.Snapshot().IsAuthenticated())
	assert.Empty(t, store.Token(ctx), "the session area was cleared regardless")
	assert.Equal(t, enums.RouteSignIn, nav.last())
}
