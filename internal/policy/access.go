package policy

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/auth"
	"github.com/diewo77/billing-admin/gate"
)

// AccessGate is the per-route authorization checkpoint. Profiles are resolved
// from the database through a TTL cache so role checks do not add a query to
// every request.
type AccessGate struct {
	Gate     *gate.Gate[uint]
	Resolver *gate.CachedResolver[uint]
}

// NewAccessGate builds the gate with a database-backed, cached resolver.
func NewAccessGate(db *gorm.DB, cacheTTL time.Duration) *AccessGate {
	cached := gate.NewCachedResolver[uint](NewDBProfileResolver(db), cacheTTL)
	return &AccessGate{Gate: gate.NewGate[uint](cached), Resolver: cached}
}

// Can reports whether the request's identity may perform action on resource.
func (a *AccessGate) Can(ctx context.Context, action gate.Action, resource string) bool {
	id, ok := auth.FromContext(ctx)
	if !ok {
		return false
	}
	return a.Gate.Can(ctx, id.UserID, action, resource)
}

// Require returns middleware enforcing the permission for a route.
// Unauthenticated requests go to the login page; authenticated requests
// lacking the permission are silently redirected home, matching the
// application's long-standing behavior of never showing a forbidden page.
func (a *AccessGate) Require(resource string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.FromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if err := a.Gate.Authorize(r.Context(), id.UserID, action, resource); err != nil {
				log.Debug().
					Uint("user_id", id.UserID).
					Str("role", id.Role).
					Str("resource", resource).
					Str("action", string(action)).
					Msg("access denied")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// InvalidateUser clears the cached profile after a role or state change.
func (a *AccessGate) InvalidateUser(userID uint) {
	a.Resolver.Invalidate(userID)
}
