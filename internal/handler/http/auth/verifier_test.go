package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTVerifierVerify(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "u1",
		"email": "u1@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if identity.UID != "u1" {
		t.Errorf("UID = %q, want u1", identity.UID)
	}
	if identity.Email != "u1@example.com" {
		t.Errorf("Email = %q, want u1@example.com", identity.Email)
	}
}

func TestJWTVerifierFailures(t *testing.T) {
	v := NewJWTVerifier(testSecret)

	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, []byte("another-secret-another-secret-xx"), jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	noSub := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name     string
		token    string
		wantCode string
	}{
		{"empty token", "", CodeMissingToken},
		{"whitespace token", "   ", CodeMissingToken},
		{"expired token", expired, CodeTokenExpired},
		{"wrong signature", wrongKey, CodeInvalidToken},
		{"not a jwt", "garbage", CodeMalformedToken},
		{"missing sub claim", noSub, CodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tt.token)
			if err == nil {
				t.Fatal("Verify() expected error")
			}
			var authErr *Error
			if !errors.As(err, &authErr) {
				t.Fatalf("Verify() error type = %T, want *Error", err)
			}
			if authErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", authErr.Code, tt.wantCode)
			}
			if authErr.Status != 401 {
				t.Errorf("status = %d, want 401", authErr.Status)
			}
		})
	}
}

func TestClassifyProviderError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"expired message", errors.New("firebase: token has expired"), CodeTokenExpired},
		{"expired beats invalid", errors.New("invalid because expired"), CodeTokenExpired},
		{"invalid message", errors.New("invalid signature"), CodeInvalidToken},
		{"malformed message", errors.New("malformed segment"), CodeMalformedToken},
		{"jwt message", errors.New("jwt parse failure"), CodeMalformedToken},
		{"unrecognized message", errors.New("upstream timeout"), CodeVerificationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyProviderError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("ClassifyProviderError(%q).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}
