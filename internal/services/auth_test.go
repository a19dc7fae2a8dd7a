package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/store"
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logg, err := logger.New("test")
	if err != nil {
		tb.Fatalf("failed to init logger: %v", err)
	}
	return logg
}

func newAuth(tb testing.TB) (AuthService, store.ContentStore) {
	tb.Helper()
	s := store.NewMemoryStore(testLogger(tb))
	return NewAuthService(s, testLogger(tb), "test-secret", 24*time.Hour), s
}

func TestLoginWithDefaultCredentials(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	token, err := auth.Login(ctx, store.DefaultAdminEmail, store.DefaultAdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a signed token")
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Email != store.DefaultAdminEmail || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	auth, _ := newAuth(t)

	if _, err := auth.Login(context.Background(), "  ADMIN@Emberlane.Studio ", store.DefaultAdminPassword); err != nil {
		t.Fatalf("Login with cased email: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, store.DefaultAdminEmail, "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	_, err = auth.Login(ctx, "nobody@example.com", store.DefaultAdminPassword)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth, _ := newAuth(t)

	if _, err := auth.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyTokenRejectsForeignSignature(t *testing.T) {
	auth, s := newAuth(t)

	other := NewAuthService(s, testLogger(t), "different-secret", time.Hour)
	token, err := other.Login(context.Background(), store.DefaultAdminEmail, store.DefaultAdminPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := auth.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestUpdateCredentialsHashesPassword(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	email := "owner@emberlane.studio"
	password := "rotated-password"
	creds, err := auth.UpdateCredentials(ctx, &email, &password)
	if err != nil {
		t.Fatalf("UpdateCredentials: %v", err)
	}
	if creds.Email != email {
		t.Fatalf("email not applied: %q", creds.Email)
	}
	if creds.Password == password {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.Password), []byte(password)); err != nil {
		t.Fatalf("stored password does not match: %v", err)
	}

	// The old password no longer works, the new one does.
	if _, err := auth.Login(ctx, email, store.DefaultAdminPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := auth.Login(ctx, email, password); err != nil {
		t.Fatalf("Login with rotated password: %v", err)
	}

	// A nil password leaves the hash untouched.
	email2 := "owner2@emberlane.studio"
	after, err := auth.UpdateCredentials(ctx, &email2, nil)
	if err != nil {
		t.Fatalf("UpdateCredentials (email only): %v", err)
	}
	if after.Password != creds.Password {
		t.Fatalf("email-only update changed the password hash")
	}
}
