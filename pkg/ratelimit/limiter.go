package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Policy is the per-endpoint rate-limit configuration.
type Policy struct {
	// Window is the nominal counting window for the endpoint. Counters
	// actually reset at the next local midnight (see NextWindowReset);
	// Window documents the intended period and drives purge scheduling.
	Window time.Duration

	// MaxRequests is the maximum number of allowed requests per window.
	MaxRequests int
}

// Config is the immutable, process-wide policy table mapping endpoint
// names to policies. It is populated once at construction and never read
// from the environment inside the limiter.
type Config struct {
	Endpoints map[string]Policy
}

// Result is the outcome of a limit check or status probe.
//
// The limiter always returns a well-formed Result, never an error: unknown
// endpoints deny, storage failures fail open. Err carries the advisory
// reason in both cases.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window ends.
	ResetAt time.Time

	// Err is an advisory message: empty on a clean allow, otherwise one of
	// ErrMsgUnknownEndpoint, ErrMsgLimitExceeded, or ErrMsgLimiterFailure.
	Err string
}

// Advisory messages carried in Result.Err.
const (
	ErrMsgUnknownEndpoint = "Invalid endpoint configuration"
	ErrMsgLimitExceeded   = "Rate limit exceeded"
	ErrMsgLimiterFailure  = "Rate limiter error"
)

// CheckInput identifies the counter scope for a limit check.
type CheckInput struct {
	// Endpoint is the policy bucket name (EndpointGenerate, EndpointEdit,
	// EndpointAuthenticated).
	Endpoint string

	// ResourceID scopes the counter to a single resource (guest edits are
	// limited per article, not globally).
	ResourceID string

	// UserID keys the authenticated bucket by identity instead of IP.
	UserID string

	// Timezone is the IANA zone used for the window reset of a brand-new
	// counter. Empty or invalid values fall back to UTC.
	Timezone string
}

// Limiter is the policy engine: it maps an endpoint name and caller
// context to a policy, derives the composite key, and enforces the counter
// through a Store.
type Limiter struct {
	cfg     Config
	store   Store
	clock   Clock
	metrics Metrics
	logger  *slog.Logger
}

// LimiterOptions customizes a Limiter. Zero values select production
// defaults (system clock, noop metrics, default logger).
type LimiterOptions struct {
	Clock   Clock
	Metrics Metrics
	Logger  *slog.Logger
}

// NewLimiter creates a Limiter over the given policy table and store.
func NewLimiter(cfg Config, store Store, opts LimiterOptions) *Limiter {
	if opts.Clock == nil {
		opts.Clock = &SystemClock{}
	}
	if opts.Metrics == nil {
		opts.Metrics = NoopMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Limiter{
		cfg:     cfg,
		store:   store,
		clock:   opts.Clock,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
}

// CheckLimit decides whether the request may proceed and records its
// consumption.
//
// Outcomes:
//   - unknown endpoint: denied with ErrMsgUnknownEndpoint, storage untouched
//   - no live counter: counter created with count=1, allowed,
//     remaining = max-1
//   - live counter below the cap: incremented, allowed,
//     remaining = max-count
//   - live counter at the cap: denied with ErrMsgLimitExceeded, counter
//     unchanged
//   - storage failure: fail-open allow with ErrMsgLimiterFailure; an
//     outage in the limiting subsystem must not block the product's core
//     function
func (l *Limiter) CheckLimit(ctx context.Context, r *http.Request, in CheckInput) Result {
	start := time.Now()
	defer func() {
		l.metrics.RecordCheckDuration(in.Endpoint, time.Since(start))
	}()

	now := l.clock.Now()

	policy, ok := l.cfg.Endpoints[in.Endpoint]
	if !ok {
		l.logger.Error("rate limit check for unconfigured endpoint",
			slog.String("endpoint", in.Endpoint))
		l.metrics.RecordDenied(in.Endpoint)
		return Result{Allowed: false, Remaining: 0, ResetAt: now, Err: ErrMsgUnknownEndpoint}
	}

	ip := ClientIP(r)
	key := CompositeKey(ip, in.Endpoint, in.ResourceID, in.UserID)
	reset := NextWindowReset(now, in.Timezone)

	rec, allowed, err := l.store.Increment(ctx, key, now, reset, policy.MaxRequests)
	if err != nil {
		l.logger.Error("rate limit store failure, failing open",
			slog.String("endpoint", in.Endpoint),
			slog.String("key", key),
			slog.String("error", err.Error()))
		l.metrics.RecordFailOpen(in.Endpoint)
		return Result{Allowed: true, Remaining: 0, ResetAt: now, Err: ErrMsgLimiterFailure}
	}

	if !allowed {
		l.logger.Info("rate limit exceeded",
			slog.String("endpoint", in.Endpoint),
			slog.String("key", key),
			slog.Int("count", rec.Count),
			slog.Int("max", policy.MaxRequests),
			slog.Time("reset_at", rec.ResetAt))
		l.metrics.RecordDenied(in.Endpoint)
		return Result{Allowed: false, Remaining: 0, ResetAt: rec.ResetAt, Err: ErrMsgLimitExceeded}
	}

	l.metrics.RecordAllowed(in.Endpoint)
	return Result{
		Allowed:   true,
		Remaining: policy.MaxRequests - rec.Count,
		ResetAt:   rec.ResetAt,
	}
}

// GetStatus reports the state a CheckLimit call would observe without
// creating or mutating any counter.
//
// A missing counter reports remaining = max (not max-1): nothing has been
// consumed yet.
func (l *Limiter) GetStatus(ctx context.Context, r *http.Request, in CheckInput) Result {
	now := l.clock.Now()

	policy, ok := l.cfg.Endpoints[in.Endpoint]
	if !ok {
		return Result{Allowed: false, Remaining: 0, ResetAt: now, Err: ErrMsgUnknownEndpoint}
	}

	ip := ClientIP(r)
	key := CompositeKey(ip, in.Endpoint, in.ResourceID, in.UserID)

	rec, err := l.store.Get(ctx, key, now)
	if err != nil {
		l.logger.Error("rate limit store failure during status probe",
			slog.String("endpoint", in.Endpoint),
			slog.String("key", key),
			slog.String("error", err.Error()))
		return Result{Allowed: true, Remaining: 0, ResetAt: now, Err: ErrMsgLimiterFailure}
	}

	if rec == nil {
		return Result{
			Allowed:   true,
			Remaining: policy.MaxRequests,
			ResetAt:   NextWindowReset(now, in.Timezone),
		}
	}

	if rec.Count >= policy.MaxRequests {
		return Result{Allowed: false, Remaining: 0, ResetAt: rec.ResetAt, Err: ErrMsgLimitExceeded}
	}

	return Result{
		Allowed:   true,
		Remaining: policy.MaxRequests - rec.Count,
		ResetAt:   rec.ResetAt,
	}
}

// ResetLimits deletes the stored counters for an IP: all of its counters
// when endpoint is empty, otherwise only those of the named endpoint
// (including per-resource edit counters).
//
// This is an administrative and test utility; errors are logged, not
// returned.
func (l *Limiter) ResetLimits(ctx context.Context, ip, endpoint string) {
	prefix := ip + ":"
	if endpoint != "" {
		// No trailing colon: the generate key is "<ip>:generate" while
		// edit keys are "<ip>:edit:<resource>"; both must match.
		prefix = ip + ":" + endpoint
	}

	removed, err := l.store.DeleteByPrefix(ctx, prefix)
	if err != nil {
		l.logger.Error("failed to reset rate limits",
			slog.String("prefix", prefix),
			slog.String("error", err.Error()))
		return
	}

	l.logger.Info("rate limits reset",
		slog.String("prefix", prefix),
		slog.Int64("removed", removed))
}
