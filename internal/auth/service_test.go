package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/restauranteos/restauranteos-backend/pkg/auth"
	"github.com/restauranteos/restauranteos-backend/pkg/config"
	"github.com/restauranteos/restauranteos-backend/pkg/db/models"
	"github.com/restauranteos/restauranteos-backend/pkg/enums"
	pkgerrors "github.com/restauranteos/restauranteos-backend/pkg/errors"
	"github.com/restauranteos/restauranteos-backend/pkg/security"
)

type stubUserRepo struct {
	user      *models.User
	lastLogin *time.Time
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		copied := *s.user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	s.lastLogin = &at
	return nil
}

type stubTenantRepo struct {
	tenant *models.Tenant
}

func (s *stubTenantRepo) FindByID(_ context.Context, tenantID uuid.UUID) (*models.Tenant, error) {
	if s.tenant != nil && s.tenant.ID == tenantID {
		copied := *s.tenant
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessionManager struct {
	generated string
	rotateErr error
	revoked   []string
}

func (s *stubSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	s.generated = accessID
	return "refresh-" + accessID, nil
}

func (s *stubSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	if provided != "refresh-"+oldAccessID {
		return "", "", ErrStubBadRefresh
	}
	newID := uuid.NewString()
	return newID, "refresh-" + newID, nil
}

func (s *stubSessionManager) Revoke(_ context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

var ErrStubBadRefresh = pkgerrors.New(pkgerrors.CodeUnauthorized, "bad refresh")

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "restauranteos",
		ExpirationMinutes: 30,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func buildTestService(t *testing.T, user *models.User, tenant *models.Tenant) (Service, *stubUserRepo, *stubSessionManager) {
	t.Helper()
	userRepo := &stubUserRepo{user: user}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       userRepo,
		TenantRepo:     &stubTenantRepo{tenant: tenant},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, userRepo, sessions
}

func staffUser(t *testing.T, password string, tenantID uuid.UUID) *models.User {
	t.Helper()
	return &models.User{
		ID:           uuid.New(),
		TenantID:     &tenantID,
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, password),
		FullName:     "Staff Member",
		Role:         enums.MemberRoleStaff,
		IsActive:     true,
	}
}

func activeTenant() *models.Tenant {
	return &models.Tenant{
		ID:       uuid.New(),
		Slug:     "la-cocina",
		Name:     "La Cocina",
		IsActive: true,
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s", code, appErr.Code())
	}
}

func TestLoginIssuesTenantScopedToken(t *testing.T) {
	tenant := activeTenant()
	user := staffUser(t, "staff-secret", tenant.ID)
	svc, userRepo, sessions := buildTestService(t, user, tenant)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "staff-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.TenantID == nil || *claims.TenantID != tenant.ID {
		t.Fatalf("expected tenant claim %s, got %v", tenant.ID, claims.TenantID)
	}
	if claims.Role != enums.MemberRoleStaff {
		t.Fatalf("expected staff role claim, got %s", claims.Role)
	}
	if resp.RefreshToken != "refresh-"+sessions.generated {
		t.Fatalf("refresh token does not match generated session")
	}
	if resp.Tenant == nil || resp.Tenant.Slug != tenant.Slug {
		t.Fatalf("expected tenant summary in response, got %+v", resp.Tenant)
	}
	if userRepo.lastLogin == nil {
		t.Fatal("expected last login to be recorded")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	tenant := activeTenant()
	user := staffUser(t, "right-password", tenant.ID)
	svc, _, _ := buildTestService(t, user, tenant)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginRejectsSuspendedTenant(t *testing.T) {
	tenant := activeTenant()
	tenant.IsActive = false
	user := staffUser(t, "staff-secret", tenant.ID)
	svc, _, _ := buildTestService(t, user, tenant)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "staff-secret",
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	tenant := activeTenant()
	user := staffUser(t, "staff-secret", tenant.ID)
	user.IsActive = false
	svc, _, _ := buildTestService(t, user, tenant)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "staff-secret",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestRefreshRotatesSession(t *testing.T) {
	tenant := activeTenant()
	user := staffUser(t, "staff-secret", tenant.ID)
	svc, _, _ := buildTestService(t, user, tenant)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "staff-secret",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if resp.AccessToken == login.AccessToken {
		t.Fatal("expected a new access token after refresh")
	}
	if resp.RefreshToken == login.RefreshToken {
		t.Fatal("expected a new refresh token after refresh")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user %s in rotated claims, got %s", user.ID, claims.UserID)
	}
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	tenant := activeTenant()
	user := staffUser(t, "staff-secret", tenant.ID)
	svc, _, _ := buildTestService(t, user, tenant)

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  "not-a-jwt",
		RefreshToken: "whatever",
	})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLogoutRevokesSession(t *testing.T) {
	tenant := activeTenant()
	user := staffUser(t, "staff-secret", tenant.ID)
	svc, _, sessions := buildTestService(t, user, tenant)

	if err := svc.Logout(context.Background(), "access-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-123" {
		t.Fatalf("expected access-123 revoked, got %v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}
