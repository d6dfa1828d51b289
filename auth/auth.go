// Package auth implements cookie-backed session authentication.
//
// The session cookie carries only the user id, signed with HMAC-SHA256 so it
// cannot be forged or altered client-side. The full identity (display name,
// role) is resolved from the database on every request by the middleware, so
// a user that is disabled or deleted after logging in loses access on their
// next request.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type ctxKey struct{}

const sessionCookieName = "session"

// Identity is the authenticated subject attached to a request context.
// It is populated once per request by Middleware and passed explicitly;
// there is no process-wide session state.
type Identity struct {
	UserID      uint
	DisplayName string
	Role        string
}

// IdentityResolver loads the identity for a session's user id.
// Returning (nil, nil) means the user no longer exists or is disabled;
// the session is then treated as stale and cleared.
type IdentityResolver func(ctx context.Context, userID uint) (*Identity, error)

var resolver IdentityResolver

// SetIdentityResolver configures the resolver used by Middleware.
// Call once during app bootstrap.
func SetIdentityResolver(r IdentityResolver) { resolver = r }

var secret string

// SetSecret sets the session signing secret. Call once during app bootstrap
// with the configured value.
func SetSecret(s string) { secret = s }

// Secret returns the configured secret, falling back to SESSION_SECRET and
// then a default dev value.
func Secret() string {
	if secret != "" {
		return secret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(uidStr string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(uidStr))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed session cookie for the user.
func CreateSession(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uidStr + "." + sign(uidStr),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// ClearSession deletes the session cookie. Idempotent.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and returns the user id.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return 0, false
	}
	uidStr, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(uidStr))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the identity attached by Middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}

// Middleware resolves the session cookie to an Identity and attaches it to
// the request context. A cookie referring to a missing or disabled user is
// cleared and the request proceeds unauthenticated. A transient resolver
// error keeps the cookie so the user is not logged out by a DB hiccup; the
// request just proceeds unauthenticated.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := ParseSession(r); ok {
			if resolver != nil {
				id, err := resolver(r.Context(), uid)
				switch {
				case err != nil:
					// keep the cookie, proceed anonymous
				case id != nil:
					r = r.WithContext(WithIdentity(r.Context(), id))
				default:
					ClearSession(w)
				}
			} else {
				r = r.WithContext(WithIdentity(r.Context(), &Identity{UserID: uid}))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects unauthenticated requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
