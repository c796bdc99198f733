package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/models"
	"github.com/octabyte/saveat-admin/utils"
	"github.com/octabyte/saveat-admin/utils/logger"
	"go.uber.org/zap"
)

// Key names are shared with every earlier console build so stored logins stay readable.
const (
	TokenKey = "adminToken"
	UserKey  = "adminUser"
)

var (
	ErrUnknownScope = errors.New("unknown storage scope")
	errHalfPair     = errors.New("token and user are not stored together")
	errCorruptUser  = errors.New("stored user record is corrupt")
)

// Credential is a token/user pair together with the area it was read from.
type Credential struct {
	Token string
	User  *models.User
	Scope enums.Scope
}

func (c Credential) Valid() bool {
	return c.Token != "" && c.User != nil
}

// CredentialStore persists the credential pair across a durable and a session-scoped area.
// The areas are mutually exclusive: a pair lives in at most one of them.
type CredentialStore struct {
	durable Area
	session Area
}

func NewCredentialStore(durable, session Area) *CredentialStore {
	return &CredentialStore{durable: durable, session: session}
}

// Read returns the stored pair, preferring the durable area. It never fails: unreadable or
// corrupt state is logged and reported as no credential.
func (s *CredentialStore) Read(ctx context.Context) Credential {
	for _, scope := range []enums.Scope{enums.ScopeDurable, enums.ScopeSession} {
		cred, err := s.readArea(ctx, scope)
		switch {
		case err == nil:
			return cred
		case errors.Is(err, ErrNotFound):
			continue
		case errors.Is(err, errHalfPair):
			logger.LogWarn("discarding half-stored credential", zap.String("scope", string(scope)))
			if delErr := s.area(scope).Del(ctx, TokenKey, UserKey); delErr != nil {
				logger.LogError("failed to discard half-stored credential", zap.String("scope", string(scope)), zap.Error(delErr))
			}
		case errors.Is(err, errCorruptUser):
			logger.LogError("stored credential is unreadable, clearing storage", zap.String("scope", string(scope)), zap.Error(err))
			if clearErr := s.Clear(ctx); clearErr != nil {
				logger.LogError("failed to clear storage", zap.Error(clearErr))
			}
			return Credential{}
		default:
			logger.LogError("failed to read credential", zap.String("scope", string(scope)), zap.Error(err))
		}
	}
	return Credential{}
}

// Write stores the pair in the durable area when remember is set, otherwise in the
// session-scoped area. Any pair left in the other area is removed so reads stay unambiguous.
func (s *CredentialStore) Write(ctx context.Context, token string, user models.User, remember bool) error {
	scope := enums.ScopeFor(remember)
	target := s.area(scope)

	serialized, err := utils.StructToString(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}

	if err := target.Set(ctx, TokenKey, token); err != nil {
		logger.LogError("failed to store token", zap.String("scope", string(scope)), zap.Error(err))
		return fmt.Errorf("store token in %s area: %w", scope, err)
	}
	if err := target.Set(ctx, UserKey, serialized); err != nil {
		logger.LogError("failed to store user", zap.String("scope", string(scope)), zap.Error(err))
		if delErr := target.Del(ctx, TokenKey); delErr != nil {
			logger.LogError("failed to roll back token", zap.String("scope", string(scope)), zap.Error(delErr))
		}
		return fmt.Errorf("store user in %s area: %w", scope, err)
	}

	other := enums.ScopeFor(!remember)
	if err := s.area(other).Del(ctx, TokenKey, UserKey); err != nil {
		logger.LogWarn("failed to remove stale credential", zap.String("scope", string(other)), zap.Error(err))
	}
	return nil
}

// WriteUser overwrites the serialized user in the area for scope, leaving the token alone.
func (s *CredentialStore) WriteUser(ctx context.Context, scope enums.Scope, user models.User) error {
	target := s.area(scope)
	if target == nil {
		return fmt.Errorf("write user: %w: %q", ErrUnknownScope, scope)
	}

	serialized, err := utils.StructToString(user)
	if err != nil {
		return fmt.Errorf("serialize user: %w", err)
	}
	if err := target.Set(ctx, UserKey, serialized); err != nil {
		logger.LogError("failed to update stored user", zap.String("scope", string(scope)), zap.Error(err))
		return fmt.Errorf("store user in %s area: %w", scope, err)
	}
	return nil
}

// Clear removes the pair from both areas. A failure in one area does not stop the other
// from being cleared.
func (s *CredentialStore) Clear(ctx context.Context) error {
	var errs []error
	for _, scope := range []enums.Scope{enums.ScopeDurable, enums.ScopeSession} {
		if err := s.area(scope).Del(ctx, TokenKey, UserKey); err != nil {
			logger.LogError("failed to clear credential", zap.String("scope", string(scope)), zap.Error(err))
			errs = append(errs, fmt.Errorf("clear %s area: %w", scope, err))
		}
	}
	return errors.Join(errs...)
}

// IsUsingDurable reports whether a token is currently held in the durable area.
func (s *CredentialStore) IsUsingDurable(ctx context.Context) bool {
	return s.Holds(ctx, enums.ScopeDurable)
}

// Holds reports whether the area for scope currently holds a token.
func (s *CredentialStore) Holds(ctx context.Context, scope enums.Scope) bool {
	area := s.area(scope)
	if area == nil {
		return false
	}
	token, err := area.Get(ctx, TokenKey)
	return err == nil && token != ""
}

// Token returns the stored bearer token, durable area first, or "" when none is stored.
func (s *CredentialStore) Token(ctx context.Context) string {
	for _, area := range []Area{s.durable, s.session} {
		token, err := area.Get(ctx, TokenKey)
		if err == nil && token != "" {
			return token
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			logger.LogWarn("failed to read token", zap.Error(err))
		}
	}
	return ""
}

func (s *CredentialStore) readArea(ctx context.Context, scope enums.Scope) (Credential, error) {
	area := s.area(scope)

	token, tokenErr := area.Get(ctx, TokenKey)
	if tokenErr != nil && !errors.Is(tokenErr, ErrNotFound) {
		return Credential{}, tokenErr
	}
	raw, userErr := area.Get(ctx, UserKey)
	if userErr != nil && !errors.Is(userErr, ErrNotFound) {
		return Credential{}, userErr
	}

	hasToken := tokenErr == nil && token != ""
	hasUser := userErr == nil && raw != ""
	switch {
	case !hasToken && !hasUser:
		return Credential{}, ErrNotFound
	case hasToken != hasUser:
		return Credential{}, errHalfPair
	}

	var user models.User
	if err := utils.StringToStruct(raw, &user); err != nil {
		return Credential{}, fmt.Errorf("%w: %v", errCorruptUser, err)
	}
	if !user.Role.Valid() {
		return Credential{}, fmt.Errorf("%w: role %q", errCorruptUser, user.Role)
	}

	return Credential{Token: token, User: &user, Scope: scope}, nil
}

func (s *CredentialStore) area(scope enums.Scope) Area {
	switch scope {
	case enums.ScopeDurable:
		return s.durable
	case enums.ScopeSession:
		return s.session
	default:
		return nil
	}
}
