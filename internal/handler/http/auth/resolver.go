package auth

import (
	"log/slog"
	"net/http"
)

// Session is the result of optional authentication resolution.
// Exactly one of Authenticated and Guest is true.
type Session struct {
	Authenticated bool
	Guest         bool
	User          *Identity
}

// UID returns the resolved uid, or the empty string for guests.
func (s Session) UID() string {
	if s.User == nil {
		return ""
	}
	return s.User.UID
}

// Resolver converts an inbound request's bearer credential into an
// identity, for both optional and mandatory authentication flows.
type Resolver struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

// NewResolver creates a Resolver over the given verifier.
func NewResolver(verifier TokenVerifier, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{verifier: verifier, logger: logger}
}

// ResolveOptional resolves the caller for endpoints where authentication
// is optional.
//
// An absent token yields a guest immediately, with no verification
// attempted. A present token that fails verification also yields a guest:
// this endpoint class never surfaces auth failure to the caller, it only
// withholds the authenticated tier.
func (res *Resolver) ResolveOptional(r *http.Request) Session {
	token := ExtractToken(r)
	if token == "" {
		return Session{Guest: true}
	}

	identity, err := res.verifier.Verify(r.Context(), token)
	if err != nil {
		res.logger.Debug("optional auth degraded to guest",
			slog.String("error", err.Error()))
		return Session{Guest: true}
	}

	return Session{Authenticated: true, User: identity}
}

// ResolveRequired resolves the caller for endpoints that demand a verified
// identity. An absent token fails with CodeMissingToken; verification
// failures propagate unmodified from the verifier.
func (res *Resolver) ResolveRequired(r *http.Request) (*Identity, error) {
	token := ExtractToken(r)
	if token == "" {
		return nil, NewError(CodeMissingToken, "authorization token required")
	}

	return res.verifier.Verify(r.Context(), token)
}
