package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"backend/internal/model"
	"backend/internal/repository"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewRefreshTokenRepository(db),
		[]byte("test-secret"),
	)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@test.com", Password: "whatever"})
	if !errors.Is(err, ErrUnknownEmail) {
		t.Fatalf("err = %v, want ErrUnknownEmail", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedUser(t, db, "known@test.com", "rightpass")

	_, err := svc.Login(context.Background(), LoginRequest{Email: "known@test.com", Password: "wrongpass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := seedUser(t, db, "off@test.com", "secret123")
	if err := db.Model(user).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginRequest{Email: "off@test.com", Password: "secret123"})
	if !errors.Is(err, ErrInactiveUser) {
		t.Fatalf("err = %v, want ErrInactiveUser", err)
	}
}

func TestLoginIssuesTokensAndTracksLastLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user := seedUser(t, db, "ok@test.com", "secret123")
	past := time.Now().Add(-48 * time.Hour)
	if err := db.Model(user).Update("last_login", past).Error; err != nil {
		t.Fatalf("set last_login: %v", err)
	}

	result, err := svc.Login(ctx, LoginRequest{Email: "ok@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Access == "" || result.Refresh == "" {
		t.Fatal("expected a signed token pair")
	}
	if result.TimeSinceLastLogin < 47*time.Hour || result.TimeSinceLastLogin > 49*time.Hour {
		t.Errorf("time since last login = %s, want about 48h", result.TimeSinceLastLogin)
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.LastLogin == nil || time.Since(*reloaded.LastLogin) > time.Minute {
		t.Error("last_login was not advanced to now")
	}

	var tokens int64
	if err := db.Model(&model.RefreshToken{}).Where("user_id = ?", user.ID).Count(&tokens).Error; err != nil {
		t.Fatalf("count tokens: %v", err)
	}
	if tokens != 1 {
		t.Errorf("refresh tokens = %d, want 1", tokens)
	}
}

func TestLogoutBlacklistsRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	seedUser(t, db, "bye@test.com", "secret123")
	result, err := svc.Login(ctx, LoginRequest{Email: "bye@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, result.Refresh); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// A blacklisted token can be neither reused for logout nor redeemed.
	if err := svc.Logout(ctx, result.Refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("second logout err = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.Refresh(ctx, result.Refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh after logout err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	seedUser(t, db, "rotate@test.com", "secret123")
	result, err := svc.Login(ctx, LoginRequest{Email: "rotate@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(ctx, result.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected a fresh token pair")
	}
	if pair.Refresh == result.Refresh {
		t.Fatal("refresh token was not rotated")
	}

	// The old token is spent.
	if _, err := svc.Refresh(ctx, result.Refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("reusing rotated token err = %v, want ErrInvalidToken", err)
	}
	// The new one works.
	if _, err := svc.Refresh(ctx, pair.Refresh); err != nil {
		t.Fatalf("redeeming rotated token: %v", err)
	}
}

func TestRefreshRejectsGarbageAndAccessTokens(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	seedUser(t, db, "strict@test.com", "secret123")
	result, err := svc.Login(ctx, LoginRequest{Email: "strict@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	for name, token := range map[string]string{
		"garbage":      "not.a.jwt",
		"access token": result.Access,
	} {
		if _, err := svc.Refresh(ctx, token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}
