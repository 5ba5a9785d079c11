package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"doc-genie/internal/domain/entity"
	"doc-genie/internal/handler/http/auth"
	"doc-genie/internal/handler/http/respond"
	artUC "doc-genie/internal/usecase/article"
	"doc-genie/pkg/ratelimit"
)

// GenerateHandler handles article generation requests.
//
// Authentication is optional: a valid bearer token selects the
// authenticated policy bucket keyed by uid, anything else counts the
// caller as a guest keyed by IP.
type GenerateHandler struct {
	Svc     *artUC.Service
	Auth    *auth.Resolver
	Limiter *ratelimit.Limiter
}

func (h GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic    string `json:"topic"`
		ParentID string `json:"parentId"`
		Timezone string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}
	if req.Topic == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "topic is required",
		})
		return
	}

	session := h.Auth.ResolveOptional(r)

	endpoint := ratelimit.EndpointGenerate
	if session.Authenticated {
		endpoint = ratelimit.EndpointAuthenticated
	}

	res := h.Limiter.CheckLimit(r.Context(), r, ratelimit.CheckInput{
		Endpoint: endpoint,
		UserID:   session.UID(),
		Timezone: req.Timezone,
	})
	setRateLimitHeaders(w, res)
	if !res.Allowed {
		respond.JSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:   "rate_limit_exceeded",
			Message: denialMessage(session.Authenticated),
		})
		return
	}

	art, err := h.Svc.Generate(r.Context(), artUC.GenerateInput{
		Topic:    req.Topic,
		ParentID: req.ParentID,
		OwnerUID: session.UID(),
	})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(art))
}

// setRateLimitHeaders exposes the limit state on every governed response.
func setRateLimitHeaders(w http.ResponseWriter, res ratelimit.Result) {
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}

// respondUsecaseError maps use case failures to HTTP responses.
func respondUsecaseError(w http.ResponseWriter, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": vErr.Error(),
		})
	case errors.Is(err, artUC.ErrInvalidArticleID):
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": artUC.ErrInvalidArticleID.Error(),
		})
	case errors.Is(err, artUC.ErrParentNotFound):
		respond.JSON(w, http.StatusNotFound, map[string]string{
			"error":   "not_found",
			"message": artUC.ErrParentNotFound.Error(),
		})
	case errors.Is(err, artUC.ErrArticleNotFound):
		respond.JSON(w, http.StatusNotFound, map[string]string{
			"error":   "not_found",
			"message": artUC.ErrArticleNotFound.Error(),
		})
	case errors.Is(err, artUC.ErrNotOwner):
		respond.JSON(w, http.StatusForbidden, map[string]string{
			"error":   "forbidden",
			"message": artUC.ErrNotOwner.Error(),
		})
	case errors.Is(err, artUC.ErrEmptyCompletion):
		respond.JSON(w, http.StatusBadGateway, map[string]string{
			"error":   "generation_failed",
			"message": "the generator returned no content",
		})
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
