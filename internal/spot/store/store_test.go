package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wayfare/internal/reaper"
	"github.com/MrJamesThe3rd/wayfare/internal/spot/store"
)

func setupStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return store.New(db), mock
}

func TestStore_ListExpired(t *testing.T) {
	s, mock := setupStore(t)

	cutoff := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	marked := cutoff.Add(-time.Second)

	mock.ExpectQuery(`FROM spots WHERE pending_deleted_at IS NOT NULL AND pending_deleted_at < \$1`).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"id", "image_path", "pending_deleted_at"}).
			AddRow("spot-1", "images/spot-1.jpg", marked).
			AddRow("spot-2", "", marked))

	entries, err := s.ListExpired(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, []reaper.Entry{
		{ID: "spot-1", ObjectKey: "images/spot-1.jpg", MarkedAt: marked},
		{ID: "spot-2", MarkedAt: marked},
	}, entries)
}

func TestStore_Delete(t *testing.T) {
	type testCase struct {
		name    string
		result  func(e *sqlmock.ExpectedExec)
		want    bool
		wantErr bool
	}

	tests := []testCase{
		{
			name:   "Deleted",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
			want:   true,
		},
		{
			name:   "AlreadyGone",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			want:   false,
		},
		{
			name:    "Failure",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnError(errors.New("lock timeout")) },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := setupStore(t)
			tt.result(mock.ExpectExec(`DELETE FROM spots WHERE id = \$1 AND pending_deleted_at IS NOT NULL`).WithArgs("spot-1"))

			got, err := s.Delete(context.Background(), "spot-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_CountPendingDelete(t *testing.T) {
	s, mock := setupStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM spots WHERE pending_deleted_at IS NOT NULL`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.CountPendingDelete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
