package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/meggy/internal/common"
)

func TestGenerateAndVerify_Success(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("super-secret", time.Hour, 24*time.Hour)

	tok, err := iss.AccessToken("user-123", "ann@example.com")
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}

	claims, err := iss.Verify(tok, TypeAccess)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "ann@example.com" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-2 * time.Hour)
	iss := NewIssuer("secret", time.Minute, time.Minute).WithClock(func() time.Time { return past })

	tok, err := iss.AccessToken("u1", "")
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}

	_, err = NewIssuer("secret", time.Minute, time.Minute).Verify(tok, TypeAccess)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongType(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("secret", time.Hour, time.Hour)
	refresh, err := iss.RefreshToken("u1")
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}

	if _, err := iss.Verify(refresh, TypeAccess); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access token: %v", err)
	}
	if _, err := iss.Verify(refresh, TypeRefresh); err != nil {
		t.Fatalf("refresh token rejected: %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer("right-secret", time.Hour, time.Hour).AccessToken("u2", "")
	if err != nil {
		t.Fatalf("AccessToken error: %v", err)
	}

	_, err = NewIssuer("wrong-secret", time.Hour, time.Hour).Verify(tok, TypeAccess)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u3", Type: TypeAccess}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewIssuer("k", time.Hour, time.Hour).Verify(tok, TypeAccess); err == nil {
		t.Fatalf("expected error for unsigned token")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("k", time.Hour, time.Hour).Verify("not.a.jwt", TypeAccess)
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
