package article

import (
	"net/http"

	"doc-genie/internal/handler/http/auth"
	artUC "doc-genie/internal/usecase/article"
	"doc-genie/pkg/ratelimit"
)

// Register registers the article endpoints with the given mux.
// Both routes resolve authentication optionally; rate limiting decides
// access, never the auth layer.
func Register(mux *http.ServeMux, svc *artUC.Service, resolver *auth.Resolver, limiter *ratelimit.Limiter) {
	mux.Handle("POST /api/articles/generate", GenerateHandler{
		Svc:     svc,
		Auth:    resolver,
		Limiter: limiter,
	})
	mux.Handle("POST /api/articles/edit", EditHandler{
		Svc:     svc,
		Auth:    resolver,
		Limiter: limiter,
	})
}
