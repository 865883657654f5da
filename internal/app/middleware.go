package app

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/ledgerkeep/ledgerkeep/internal/shared"
)

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger *slog.Logger
	Config *Config
}

// CompanyHeader carries the tenant resolved by the upstream auth gateway.
const CompanyHeader = "X-Company-ID"

// MiddlewareStack installs the Ledgerkeep middleware chain.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	requestTimeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		requestTimeout = cfg.Config.AppRequestTimeout
	}

	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(requestTimeout),
		httprate.LimitByIP(300, time.Minute),
		secureMiddleware.Handler,
		CompanyIdentity(cfg.Logger),
	}
}

// CompanyIdentity resolves the caller's company id into the request context.
// Requests without a parseable company header proceed without an identity;
// handlers that need one reject those via shared.CompanyFromContext.
func CompanyIdentity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(CompanyHeader)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			companyID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || companyID <= 0 {
				if logger != nil {
					logger.Warn("invalid company header", slog.String("value", raw))
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := shared.ContextWithCompany(r.Context(), companyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
