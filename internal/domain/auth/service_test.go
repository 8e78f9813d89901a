package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/internal/core/apperror"
	"posadmin/internal/core/id"
)

type stubTx struct{}

func (stubTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	users map[id.ID]*User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: make(map[id.ID]*User)} }

func (r *memUserRepo) Create(_ context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *memUserRepo) Update(_ context.Context, user *User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, userID id.ID) error {
	delete(r.users, userID)
	return nil
}

func (r *memUserRepo) List(_ context.Context, _ UserFilter) ([]User, int, error) {
	var out []User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memTokenRepo struct {
	tokens map[string]*RefreshToken
}

func newMemTokenRepo() *memTokenRepo { return &memTokenRepo{tokens: make(map[string]*RefreshToken)} }

func (r *memTokenRepo) SaveRefreshToken(_ context.Context, token *RefreshToken) error {
	r.tokens[token.TokenHash] = token
	return nil
}

func (r *memTokenRepo) GetRefreshToken(_ context.Context, tokenHash string) (*RefreshToken, error) {
	if t, ok := r.tokens[tokenHash]; ok {
		return t, nil
	}
	return nil, apperror.NewNotFound("refresh token", tokenHash)
}

func (r *memTokenRepo) RevokeRefreshToken(_ context.Context, tokenID id.ID, reason string) error {
	for _, t := range r.tokens {
		if t.ID == tokenID {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (r *memTokenRepo) RevokeAllUserTokens(_ context.Context, userID id.ID, reason string) error {
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
			t.RevokedReason = reason
		}
	}
	return nil
}

func (r *memTokenRepo) CleanupExpiredTokens(_ context.Context) (int, error) {
	return 0, nil
}

func newTestService() (*Service, *memUserRepo, *memTokenRepo) {
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	svc := NewService(users, tokens, stubTx{}, jwtSvc, DefaultServiceConfig())
	return svc, users, tokens
}

func register(t *testing.T, svc *Service, email, password, role string) *User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Test User",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user := register(t, svc, "admin@example.com", "s3cret-pass", RoleAdmin)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	tokens, loggedIn, err := svc.Login(ctx, Credentials{Email: "admin@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotNil(t, loggedIn.LastLoginAt)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Email: "", Password: "longenough", Role: RoleCashier})
	require.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "short", Role: RoleCashier})
	require.Error(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Email: "a@b.c", Password: "longenough", Role: "owner"})
	require.Error(t, err)

	register(t, svc, "dup@example.com", "longenough", RoleCashier)
	_, err = svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "longenough", Role: RoleCashier})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestLoginWrongPasswordLocksAccount(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	user := register(t, svc, "cashier@example.com", "correct-pass", RoleCashier)

	for i := 0; i < svc.config.MaxLoginAttempts; i++ {
		_, _, err := svc.Login(ctx, Credentials{Email: "cashier@example.com", Password: "wrong"})
		require.Error(t, err)
	}

	stored := users.users[user.ID]
	assert.True(t, stored.IsLocked())

	// Even the correct password is rejected while locked.
	_, _, err := svc.Login(ctx, Credentials{Email: "cashier@example.com", Password: "correct-pass"})
	require.Error(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	register(t, svc, "manager@example.com", "longenough", RoleManager)
	tokens, _, err := svc.Login(ctx, Credentials{Email: "manager@example.com", Password: "longenough"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked after rotation.
	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestLogoutRevokesTokens(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user := register(t, svc, "x@example.com", "longenough", RoleManager)
	tokens, _, err := svc.Login(ctx, Credentials{Email: "x@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))

	branchID := id.New()
	user := NewUser("jwt@example.com", "hash", "JWT User", RoleManager)
	user.BranchID = &branchID

	token, expiresAt, err := jwtSvc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	uc, err := jwtSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, uc.UserID)
	assert.Equal(t, "jwt@example.com", uc.Email)
	assert.Equal(t, RoleManager, uc.Role)
	require.NotNil(t, uc.BranchID)
	assert.Equal(t, branchID, *uc.BranchID)

	// Tampered or foreign-key tokens are rejected.
	other := NewJWTService(DefaultJWTConfig("other-secret"))
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}
