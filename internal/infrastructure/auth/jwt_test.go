package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	token, err := manager.Generate("acc-123", "user@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.AccountID != "acc-123" || claims.Email != "user@example.com" || claims.Role != domain.RoleAdmin {
		t.Fatalf("expected claims to match account, got %+v", claims)
	}

	actor := claims.Actor()
	if actor.ID != "acc-123" || !actor.IsAdmin() {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	expiredClaims := auth.Claims{
		AccountID: "expired",
		Email:     "expired@example.com",
		Role:      domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := manager.Verify(expiredToken); err != domain.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := auth.NewJWTManager("other-secret", time.Minute)
	if _, err := otherManager.Verify(expiredToken); err == nil || err == domain.ErrExpiredToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); err == nil {
		t.Fatalf("expected failure for malformed token")
	}
}

func TestJWTManagerRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	claims := auth.Claims{
		AccountID: "acc-1",
		Role:      domain.Role("ROOT"),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := auth.NewJWTManager("secret", time.Minute).Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManagerRejectsForeignTokens(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)
	valid := jwt.RegisteredClaims{
		Issuer:    auth.Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}

	tests := []struct {
		name   string
		method jwt.SigningMethod
		claims auth.Claims
	}{
		{
			name:   "other issuer",
			method: jwt.SigningMethodHS256,
			claims: auth.Claims{AccountID: "acc-1", Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: valid.ExpiresAt,
			}},
		},
		{
			name:   "no expiry",
			method: jwt.SigningMethodHS256,
			claims: auth.Claims{AccountID: "acc-1", Role: domain.RoleUser, RegisteredClaims: jwt.RegisteredClaims{
				Issuer: auth.Issuer,
			}},
		},
		{
			name:   "other algorithm",
			method: jwt.SigningMethodHS512,
			claims: auth.Claims{AccountID: "acc-1", Role: domain.RoleUser, RegisteredClaims: valid},
		},
		{
			name:   "missing account",
			method: jwt.SigningMethodHS256,
			claims: auth.Claims{Role: domain.RoleUser, RegisteredClaims: valid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(tt.method, tt.claims).SignedString([]byte("secret"))
			if err != nil {
				t.Fatalf("failed to sign token: %v", err)
			}
			if _, err := manager.Verify(token); err != domain.ErrInvalidToken {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
