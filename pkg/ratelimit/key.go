package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// Endpoint names are policy buckets, not HTTP routes. Guests consume the
// per-action buckets; verified callers fold into the shared authenticated
// bucket keyed by uid instead of IP.
const (
	EndpointGenerate      = "generate"
	EndpointEdit          = "edit"
	EndpointAuthenticated = "authenticated"
)

// CompositeKey builds the string uniquely identifying a counter scope.
//
//   - authenticated bucket with a resolved uid: "user:<uid>:<endpoint>"
//   - resource-scoped bucket (guest edits):     "<ip>:<endpoint>:<resourceID>"
//   - otherwise:                                "<ip>:<endpoint>"
//
// The function is pure: identical inputs always produce identical keys,
// which is what guarantees one counter per (identity-or-ip, endpoint
// [, resource]).
func CompositeKey(ip, endpoint, resourceID, userID string) string {
	if endpoint == EndpointAuthenticated && userID != "" {
		return "user:" + userID + ":" + endpoint
	}
	if resourceID != "" {
		return ip + ":" + endpoint + ":" + resourceID
	}
	return ip + ":" + endpoint
}

// ClientIP resolves the client address for IP-keyed counters.
//
// Resolution order: first comma-separated X-Forwarded-For value (trimmed),
// then X-Real-IP, then the transport-level peer address, then the literal
// "unknown". Header values are taken as-is; deployments terminate TLS at a
// proxy that overwrites these headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := xff
		if i := strings.IndexByte(xff, ','); i >= 0 {
			first = xff[:i]
		}
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if r.RemoteAddr != "" {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil {
			return host
		}
		// RemoteAddr without a port (common in tests)
		return r.RemoteAddr
	}

	return "unknown"
}
