package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/wayfare/internal/share"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateShare(ctx context.Context, sh *share.Share) error {
	query := `
		INSERT INTO itinerary_shares (id, itinerary_id, token, created_by, expires_at, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		sh.ID, sh.ItineraryID, sh.Token, sh.CreatedBy, sh.ExpiresAt, sh.IsPublic, sh.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating share: %w", err)
	}

	return nil
}

func (s *Store) GetShareByToken(ctx context.Context, token string) (*share.Share, error) {
	query := `
		SELECT id, itinerary_id, token, created_by, expires_at, is_public, created_at
		FROM itinerary_shares
		WHERE token = $1
	`

	var (
		sh        share.Share
		createdBy sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query, token).Scan(
		&sh.ID, &sh.ItineraryID, &sh.Token, &createdBy, &sh.ExpiresAt, &sh.IsPublic, &sh.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, share.ErrNotFound
		}

		return nil, fmt.Errorf("getting share: %w", err)
	}

	if createdBy.Valid {
		sh.CreatedBy = &createdBy.String
	}

	return &sh, nil
}

func (s *Store) GetItinerary(ctx context.Context, id string) (*share.Itinerary, error) {
	query := `
		SELECT id, owner_id, title, destination, summary, days, internal_notes, created_at
		FROM itineraries
		WHERE id = $1
	`

	var (
		it                   share.Itinerary
		ownerID              sql.NullString
		title, dest, summary sql.NullString
		notes                sql.NullString
		days                 []byte
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&it.ID, &ownerID, &title, &dest, &summary, &days, &notes, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, share.ErrNotFound
		}

		return nil, fmt.Errorf("getting itinerary: %w", err)
	}

	if ownerID.Valid {
		it.OwnerID = &ownerID.String
	}

	it.Title = title.String
	it.Destination = dest.String
	it.Summary = summary.String
	it.InternalNotes = notes.String

	if len(days) > 0 {
		if err := json.Unmarshal(days, &it.Days); err != nil {
			return nil, fmt.Errorf("decoding itinerary days: %w", err)
		}
	}

	return &it, nil
}
