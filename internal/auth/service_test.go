package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/config"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/security"
)

type fakeUserRepo struct {
	byEmail      map[string]*models.User
	byID         map[uuid.UUID]*models.User
	lastLoginSet bool
	passwordHash string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	f.lastLoginSet = true
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	f.passwordHash = hash
	return nil
}

type fakeLimiter struct {
	denyScopes map[string]bool
	calls      []string
}

func (f *fakeLimiter) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	f.calls = append(f.calls, scope)
	if f.denyScopes[scope] {
		return false, limit + 1, nil
	}
	return true, 1, nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "rigtrack-test", ExpirationMinutes: 60}
}

func testRateLimitConfig() config.AuthRateLimitConfig {
	return config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginEmailLimit: 5, LoginIPLimit: 20}
}

func newTestService(t *testing.T, repo *fakeUserRepo, limiter *fakeLimiter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:     repo,
		Limiter:      limiter,
		JWTConfig:    testJWTConfig(),
		PasswordCfg:  testPasswordConfig(),
		RateLimitCfg: testRateLimitConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Dana Ops",
		Email:        email,
		PasswordHash: hash,
		Role:         enums.UserRoleManager,
		IsActive:     active,
	}
	repo.byEmail[email] = user
	repo.byID[user.ID] = user
	return user
}

func TestService_LoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "dana@example.com", "open-sesame", true)
	svc := newTestService(t, repo, &fakeLimiter{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Dana@Example.com ",
		Password: "open-sesame",
		IP:       "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User == nil || resp.User.Email != "dana@example.com" {
		t.Fatalf("unexpected user payload %+v", resp.User)
	}
	if !repo.lastLoginSet {
		t.Fatal("expected last login to be recorded")
	}
}

func TestService_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "dana@example.com", "open-sesame", true)
	svc := newTestService(t, repo, &fakeLimiter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestService_LoginInactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "dana@example.com", "open-sesame", false)
	svc := newTestService(t, repo, &fakeLimiter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dana@example.com",
		Password: "open-sesame",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestService_LoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo(), &fakeLimiter{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestService_LoginRateLimitedByEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "dana@example.com", "open-sesame", true)
	limiter := &fakeLimiter{denyScopes: map[string]bool{"login:email:dana@example.com": true}}
	svc := newTestService(t, repo, limiter)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dana@example.com",
		Password: "open-sesame",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestService_LoginChecksBothScopes(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "dana@example.com", "open-sesame", true)
	limiter := &fakeLimiter{}
	svc := newTestService(t, repo, limiter)

	if _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dana@example.com",
		Password: "open-sesame",
		IP:       "10.0.0.1",
	}); err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(limiter.calls) != 2 {
		t.Fatalf("expected email and ip scope checks, got %v", limiter.calls)
	}
}

func TestService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "dana@example.com", "open-sesame", true)
	svc := newTestService(t, repo, &fakeLimiter{})

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "open-sesame",
		NewPassword:     "brand-new-secret",
	})
	if err != nil {
		t.Fatalf("change password: %v", err)
	}
	if repo.passwordHash == "" {
		t.Fatal("expected a new hash to be stored")
	}
	ok, err := security.VerifyPassword("brand-new-secret", repo.passwordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestService_ChangePasswordWrongCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "dana@example.com", "open-sesame", true)
	svc := newTestService(t, repo, &fakeLimiter{})

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-secret",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestService_ChangePasswordTooShort(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "dana@example.com", "open-sesame", true)
	svc := newTestService(t, repo, &fakeLimiter{})

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "open-sesame",
		NewPassword:     "short",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
