// Package authz resolves the caller on each request and enforces
// capabilities before handlers run.
package authz

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/wayfare/internal/auth"
	"github.com/MrJamesThe3rd/wayfare/internal/http/respond"
)

const HeaderProfileID = "X-Profile-Id"

type ctxKey struct{}

type Guard struct {
	resolver *auth.Resolver
}

func NewGuard(resolver *auth.Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// IdentityFrom reads the identity a request presents. Non-bearer
// Authorization schemes are ignored.
func IdentityFrom(r *http.Request) auth.Identity {
	id := auth.Identity{ProfileID: strings.TrimSpace(r.Header.Get(HeaderProfileID))}

	if scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		id.BearerToken = strings.TrimSpace(token)
	}

	return id
}

func PrincipalFrom(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*auth.Principal)
	return p, ok
}

func withPrincipal(r *http.Request, p *auth.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ctxKey{}, p))
}

// Require rejects callers without capability c: 401 when no valid identity
// is presented, 403 when it lacks c.
func (g *Guard) Require(c auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := g.resolver.Authorize(r.Context(), IdentityFrom(r), c)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, withPrincipal(r, p))
		})
	}
}

// Authenticated requires any resolvable identity.
func (g *Guard) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := g.resolver.Resolve(r.Context(), IdentityFrom(r))
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, withPrincipal(r, p))
	})
}

// Optional attaches the principal when an identity is presented. A presented
// identity that does not resolve is still rejected.
func (g *Guard) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFrom(r)
		if id.Empty() {
			next.ServeHTTP(w, r)
			return
		}

		p, err := g.resolver.Resolve(r.Context(), id)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, withPrincipal(r, p))
	})
}
