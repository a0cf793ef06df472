package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
)

var ErrNotFound = errors.New("profile not found")

type Capability string

const (
	CapabilityAdmin   Capability = "admin"
	CapabilityPartner Capability = "partner"
)

// Principal is a resolved caller with its stored capability flags.
type Principal struct {
	ProfileID string
	IsAdmin   bool
	IsPartner bool
}

// Has reports whether p holds c. Admins hold every capability.
func (p *Principal) Has(c Capability) bool {
	if p == nil {
		return false
	}

	switch c {
	case CapabilityAdmin:
		return p.IsAdmin
	case CapabilityPartner:
		return p.IsAdmin || p.IsPartner
	default:
		return false
	}
}

// Identity is what a caller presented. Either field may be empty.
type Identity struct {
	ProfileID   string
	BearerToken string
}

func (id Identity) Empty() bool {
	return strings.TrimSpace(id.ProfileID) == "" && strings.TrimSpace(id.BearerToken) == ""
}

//go:generate mockgen -source=auth.go -destination=repository_mock.go -package=auth
type Repository interface {
	GetPrincipal(ctx context.Context, profileID string) (*Principal, error)
}

type Resolver struct {
	repo   Repository
	secret []byte
	log    *slog.Logger
}

// NewResolver builds a Resolver. An empty jwtSecret disables bearer tokens.
func NewResolver(repo Repository, jwtSecret string, logger *slog.Logger) *Resolver {
	r := &Resolver{repo: repo, log: logger}
	if jwtSecret != "" {
		r.secret = []byte(jwtSecret)
	}

	return r
}

// Resolve turns a presented identity into a Principal. A bearer token, when
// present, takes precedence over a bare profile id.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (*Principal, error) {
	if id.Empty() {
		return nil, apperr.Unauthorized("authentication required")
	}

	profileID := strings.TrimSpace(id.ProfileID)

	if token := strings.TrimSpace(id.BearerToken); token != "" {
		sub, err := r.subject(token)
		if err != nil {
			r.log.Debug("rejected bearer token", "error", err)
			return nil, apperr.Unauthorized("invalid bearer token")
		}

		profileID = sub
	}

	p, err := r.repo.GetPrincipal(ctx, profileID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Unauthorized("unknown profile")
		}

		return nil, fmt.Errorf("getting principal: %w", err)
	}

	return p, nil
}

// Authorize resolves id and checks it holds c.
func (r *Resolver) Authorize(ctx context.Context, id Identity, c Capability) (*Principal, error) {
	p, err := r.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.Has(c) {
		return nil, apperr.Forbidden("%s capability required", c)
	}

	return p, nil
}

func (r *Resolver) subject(raw string) (string, error) {
	if r.secret == nil {
		return "", errors.New("bearer tokens are disabled")
	}

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}

	if sub == "" {
		return "", errors.New("token has no subject")
	}

	return sub, nil
}
