package mid

import (
	"context"
	"net/http"

	"github.com/tasktide/tasktide/bridge/scaffolding/errs"
	"github.com/tasktide/tasktide/core/scaffolding/authz"
	"github.com/tasktide/tasktide/infrastructure/web"
)

// Headers set by the authentication layer in front of this service. Requests
// reach the handlers only after that layer has verified the caller, so the
// values are trusted as-is.
const (
	userIDHeader   = "X-User-Id"
	userRoleHeader = "X-User-Role"
)

// Principal lifts the caller identity headers into an authz.Principal on the
// context. A request without an identity is rejected before any handler or
// policy check runs.
func Principal() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			userID := r.Header.Get(userIDHeader)
			if userID == "" {
				return errs.Newf(errs.Unauthenticated, "no authenticated user")
			}

			p := authz.Principal{
				UserID: userID,
				Role:   authz.ParseRole(r.Header.Get(userRoleHeader)),
			}

			return next(setPrincipal(ctx, p), r)
		}
	}
}

// RequireAdmin rejects any principal that does not hold the admin role. It
// must run after Principal.
func RequireAdmin() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			p, err := GetPrincipal(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if p.Role != authz.RoleAdmin {
				return errs.Newf(errs.PermissionDenied, "admin role required")
			}

			return next(ctx, r)
		}
	}
}
