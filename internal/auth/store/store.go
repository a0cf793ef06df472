package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/wayfare/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetPrincipal(ctx context.Context, profileID string) (*auth.Principal, error) {
	query := `SELECT id, is_admin, is_partner FROM profiles WHERE id = $1`

	var p auth.Principal

	err := s.db.QueryRowContext(ctx, query, profileID).Scan(&p.ProfileID, &p.IsAdmin, &p.IsPartner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &p, nil
}
