package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/emberlane/emberlane-backend/internal/domain"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/store"
)

// ErrInvalidCredentials covers both a wrong email and a wrong password, so a
// caller cannot probe which admin email exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrInvalidToken = errors.New("invalid or expired token")

type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(tokenString string) (*AdminClaims, error)
	UpdateCredentials(ctx context.Context, email, password *string) (*domain.AdminCredentials, error)
	TokenTTL() time.Duration
}

type authService struct {
	store     store.ContentStore
	log       *logger.Logger
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(contentStore store.ContentStore, log *logger.Logger, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		store:     contentStore,
		log:       log.With("service", "AuthService"),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login checks the submitted email and password against the stored admin
// credentials and returns a signed bearer token. The first login on a fresh
// deployment materializes the default credentials.
func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
	creds, err := as.store.GetAdminCredentials(ctx)
	if err != nil {
		return "", fmt.Errorf("load admin credentials: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(email), creds.Email) {
		as.log.Warn("Login rejected", "reason", "unknown email")
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.Password), []byte(password)); err != nil {
		as.log.Warn("Login rejected", "reason", "wrong password")
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := AdminClaims{
		Email: creds.Email,
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   creds.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) VerifyToken(tokenString string) (*AdminClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UpdateCredentials merges the non-nil fields into the stored credentials,
// hashing the password before it reaches the store. Nil fields are left
// untouched.
func (as *authService) UpdateCredentials(ctx context.Context, email, password *string) (*domain.AdminCredentials, error) {
	patch := domain.AdminCredentialsPatch{Email: email}
	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	creds, err := as.store.UpdateAdminCredentials(ctx, patch)
	if err != nil {
		return nil, err
	}
	as.log.Info("Admin credentials updated", "email", creds.Email)
	return creds, nil
}

func (as *authService) TokenTTL() time.Duration {
	return as.tokenTTL
}
