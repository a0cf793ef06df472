package share

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/MrJamesThe3rd/wayfare/internal/apperr"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
)

const (
	DefaultWindow = 7 * 24 * time.Hour

	tokenBytes = 24
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=share
type Repository interface {
	CreateShare(ctx context.Context, s *Share) error
	GetShareByToken(ctx context.Context, token string) (*Share, error)
	GetItinerary(ctx context.Context, id string) (*Itinerary, error)
}

type Service struct {
	repo     Repository
	clock    clock.Clock
	baseURL  string
	window   time.Duration
	random   io.Reader
	sanitize *bluemonday.Policy
	log      *slog.Logger
}

func NewService(repo Repository, clk clock.Clock, baseURL string, window time.Duration, logger *slog.Logger) *Service {
	if window <= 0 {
		window = DefaultWindow
	}

	return &Service{
		repo:     repo,
		clock:    clk,
		baseURL:  strings.TrimRight(baseURL, "/"),
		window:   window,
		random:   rand.Reader,
		sanitize: bluemonday.StrictPolicy(),
		log:      logger,
	}
}

// Issue creates a new share link for an itinerary. createdBy is recorded
// when the caller identified itself.
func (s *Service) Issue(ctx context.Context, itineraryID string, createdBy *string) (*Issued, error) {
	if strings.TrimSpace(itineraryID) == "" {
		return nil, apperr.Invalid("itinerary id is required")
	}

	if _, err := s.repo.GetItinerary(ctx, itineraryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("itinerary %q not found", itineraryID)
		}

		return nil, fmt.Errorf("getting itinerary: %w", err)
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	now := s.clock.Now()

	sh := &Share{
		ID:          uuid.New(),
		ItineraryID: itineraryID,
		Token:       token,
		CreatedBy:   createdBy,
		ExpiresAt:   now.Add(s.window),
		IsPublic:    true,
		CreatedAt:   now,
	}

	if err := s.repo.CreateShare(ctx, sh); err != nil {
		return nil, fmt.Errorf("creating share: %w", err)
	}

	s.log.Info("itinerary shared", "itinerary_id", itineraryID, "share_id", sh.ID, "expires_at", sh.ExpiresAt)

	return &Issued{
		Token:     token,
		URL:       s.baseURL + "/share/" + token,
		ExpiresAt: sh.ExpiresAt,
	}, nil
}

// Resolve validates a token and returns the public view of its itinerary.
// Unknown tokens are NotFound; lapsed ones are Gone.
func (s *Service) Resolve(ctx context.Context, token string) (*PublicItinerary, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.NotFound("share not found")
	}

	sh, err := s.repo.GetShareByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("share not found")
		}

		return nil, fmt.Errorf("getting share: %w", err)
	}

	if !sh.IsPublic {
		return nil, apperr.NotFound("share not found")
	}

	if !s.clock.Now().Before(sh.ExpiresAt) {
		return nil, apperr.Gone("share link expired")
	}

	it, err := s.repo.GetItinerary(ctx, sh.ItineraryID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("share not found")
		}

		return nil, fmt.Errorf("getting itinerary: %w", err)
	}

	return s.project(it, sh.ExpiresAt), nil
}

func (s *Service) newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(s.random, b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// project copies only public fields, stripping any markup from free text.
func (s *Service) project(it *Itinerary, expiresAt time.Time) *PublicItinerary {
	out := &PublicItinerary{
		Title:       s.clean(it.Title),
		Destination: s.clean(it.Destination),
		Summary:     s.clean(it.Summary),
		Days:        make([]PublicDay, 0, len(it.Days)),
		ExpiresAt:   expiresAt,
	}

	for _, d := range it.Days {
		pd := PublicDay{
			Day:   d.Day,
			Title: s.clean(d.Title),
			Stops: make([]PublicStop, 0, len(d.Stops)),
		}

		for _, st := range d.Stops {
			pd.Stops = append(pd.Stops, PublicStop{Name: s.clean(st.Name), Notes: s.clean(st.Notes)})
		}

		out.Days = append(out.Days, pd)
	}

	return out
}

// clean strips markup. Sanitize entity-encodes the text it keeps, which the
// JSON response must not carry, so entities are decoded again.
func (s *Service) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitize.Sanitize(v)))
}
