package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is a verified caller, derived per-request and never persisted.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier verifies an opaque bearer credential against an identity
// provider. Implementations must return *Error for every failure so that
// callers can rely on the code/status classification.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// JWTVerifier verifies HS256-signed ID tokens carrying "sub" (uid) and
// optionally "email" claims.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier over the given signing secret.
func NewJWTVerifier(secret []byte) *JWTVerifier {
	return &JWTVerifier{secret: secret}
}

// Verify parses and validates the token and yields the caller's identity.
//
// Failure classification uses the provider's typed errors first and falls
// back to ClassifyProviderError for anything unrecognized.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, NewError(CodeMissingToken, "no token provided")
	}

	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, classifyJWTError(err)
	}
	if !tok.Valid {
		return nil, NewError(CodeInvalidToken, "invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewError(CodeInvalidToken, "invalid claims")
	}
	uid, ok := claims["sub"].(string)
	if !ok || uid == "" {
		return nil, NewError(CodeInvalidToken, "invalid sub claim")
	}

	identity := &Identity{UID: uid}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}

// classifyJWTError maps the jwt library's sentinel errors to auth codes.
func classifyJWTError(err error) *Error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewError(CodeTokenExpired, "token has expired")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return NewError(CodeMalformedToken, "malformed token")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return NewError(CodeInvalidToken, "invalid token")
	default:
		return ClassifyProviderError(err)
	}
}

// ClassifyProviderError classifies an identity-provider failure by
// inspecting its message for known substrings, in priority order:
// "expired", then "invalid", then "malformed"/"jwt", defaulting to the
// generic verification-failure code.
//
// This is a legacy compatibility shim for providers without typed errors;
// adapters that can map native error codes (like JWTVerifier) should, and
// only fall back here for unrecognized failures.
func ClassifyProviderError(err error) *Error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "expired"):
		return NewError(CodeTokenExpired, "token has expired")
	case strings.Contains(msg, "invalid"):
		return NewError(CodeInvalidToken, "invalid token")
	case strings.Contains(msg, "malformed"), strings.Contains(msg, "jwt"):
		return NewError(CodeMalformedToken, "malformed token")
	default:
		return NewError(CodeVerificationFailed, "token verification failed")
	}
}
