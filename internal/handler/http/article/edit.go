package article

import (
	"encoding/json"
	"net/http"

	"doc-genie/internal/handler/http/auth"
	"doc-genie/internal/handler/http/respond"
	artUC "doc-genie/internal/usecase/article"
	"doc-genie/pkg/ratelimit"
)

// EditHandler handles article revision requests.
//
// Guest edits are rate limited per article (each article id gets its own
// counter); authenticated callers share the uid-keyed bucket with
// generation.
type EditHandler struct {
	Svc     *artUC.Service
	Auth    *auth.Resolver
	Limiter *ratelimit.Limiter
}

func (h EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleID  string `json:"articleId"`
		EditPrompt string `json:"editPrompt"`
		Timezone   string `json:"timezone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "request body must be valid JSON",
		})
		return
	}
	if req.ArticleID == "" || req.EditPrompt == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "invalid_request",
			"message": "articleId and editPrompt are required",
		})
		return
	}

	session := h.Auth.ResolveOptional(r)

	in := ratelimit.CheckInput{
		Endpoint: ratelimit.EndpointEdit,
		Timezone: req.Timezone,
	}
	if session.Authenticated {
		in.Endpoint = ratelimit.EndpointAuthenticated
		in.UserID = session.UID()
	} else {
		in.ResourceID = req.ArticleID
	}

	res := h.Limiter.CheckLimit(r.Context(), r, in)
	setRateLimitHeaders(w, res)
	if !res.Allowed {
		respond.JSON(w, http.StatusTooManyRequests, rateLimitedResponse{
			Error:   "rate_limit_exceeded",
			Message: denialMessage(session.Authenticated),
		})
		return
	}

	art, err := h.Svc.Edit(r.Context(), artUC.EditInput{
		ArticleID:   req.ArticleID,
		Instruction: req.EditPrompt,
		CallerUID:   session.UID(),
	})
	if err != nil {
		respondUsecaseError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(art))
}
