package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/aus-site/aus-server/internal/model"
	"github.com/aus-site/aus-server/internal/service"
	"github.com/aus-site/aus-server/internal/store"
)

type contextKeyAuth string

const (
	// adminKey is the context key for the authenticated admin record.
	adminKey contextKeyAuth = "auth_admin"
	// claimsKey is the context key for the decoded token claims.
	claimsKey contextKeyAuth = "auth_claims"
)

// bearerRe matches "Bearer <token>" with a case-insensitive prefix.
var bearerRe = regexp.MustCompile(`(?i)^bearer\s+(.+)$`)

// RequireAuth returns an HTTP middleware that authenticates the request via
// a JWT bearer token in the Authorization header. On success the loaded
// Admin record and the decoded claims are attached to the request context as
// immutable values; handlers read them with AdminFromContext and
// ClaimsFromContext.
//
// The admin record is re-loaded from the store on every request, so a role
// downgrade or token revocation takes effect on the very next request.
func RequireAuth(authSvc *service.AuthService, st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "No token provided")
				return
			}

			claims, err := authSvc.VerifyToken(token)
			if err != nil {
				if errors.Is(err, service.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			admin, err := st.GetAdmin(r.Context(), claims.AdminID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeAuthError(w, http.StatusUnauthorized, "Invalid token or user not found")
					return
				}
				writeAuthError(w, http.StatusInternalServerError, "Server error")
				return
			}

			if claims.TokenVersion != admin.TokenVersion {
				writeAuthError(w, http.StatusUnauthorized, "Token revoked")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, admin)
			ctx = context.WithValue(ctx, claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperadmin returns an HTTP middleware that enforces the superadmin
// role. It must be used after RequireAuth in the middleware chain.
func RequireSuperadmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin := AdminFromContext(r.Context())
			if admin == nil || !admin.Superadmin {
				writeAuthError(w, http.StatusForbidden, "Access denied: Not a superadmin")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminFromContext extracts the authenticated admin from the context.
// Returns nil if the request was not authenticated.
func AdminFromContext(ctx context.Context) *model.Admin {
	if a, ok := ctx.Value(adminKey).(*model.Admin); ok {
		return a
	}
	return nil
}

// ClaimsFromContext extracts the decoded token claims from the context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *service.Claims {
	if c, ok := ctx.Value(claimsKey).(*service.Claims); ok {
		return c
	}
	return nil
}

// WithAdmin returns a context carrying the given admin, as RequireAuth would
// attach it. Exported for tests that exercise role-gated handlers directly.
func WithAdmin(ctx context.Context, admin *model.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

func bearerToken(r *http.Request) string {
	m := bearerRe.FindStringSubmatch(r.Header.Get("Authorization"))
	if m == nil {
		return ""
	}
	return m[1]
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Message: message})
}
