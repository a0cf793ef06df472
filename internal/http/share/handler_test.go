package share_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wayfare/internal/auth"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
	"github.com/MrJamesThe3rd/wayfare/internal/http/authz"
	sharehttp "github.com/MrJamesThe3rd/wayfare/internal/http/share"
	"github.com/MrJamesThe3rd/wayfare/internal/share"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (http.Handler, *share.MockRepository, *auth.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := share.NewMockRepository(ctrl)
	authRepo := auth.NewMockRepository(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := sharehttp.NewHandler(
		share.NewService(repo, clock.NewManual(testNow), "https://wayfare.example", 0, logger),
		authz.NewGuard(auth.NewResolver(authRepo, "", logger)),
	)

	r := chi.NewRouter()
	r.Route("/itineraries", h.ItineraryRoutes)
	r.Route("/share", h.Routes)

	return r, repo, authRepo
}

func TestHandler_Issue(t *testing.T) {
	h, repo, authRepo := setup(t)

	authRepo.EXPECT().GetPrincipal(gomock.Any(), "profile-1").Return(&auth.Principal{ProfileID: "profile-1"}, nil)
	repo.EXPECT().GetItinerary(gomock.Any(), "it-1").Return(&share.Itinerary{ID: "it-1"}, nil)
	repo.EXPECT().CreateShare(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, s *share.Share) error {
		require.NotNil(t, s.CreatedBy)
		assert.Equal(t, "profile-1", *s.CreatedBy)
		return nil
	})

	req := httptest.NewRequest(http.MethodPost, "/itineraries/it-1/share", nil)
	req.Header.Set(authz.HeaderProfileID, "profile-1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Data share.Issued `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.True(t, strings.HasPrefix(env.Data.URL, "https://wayfare.example/share/"))
	assert.Equal(t, testNow.Add(share.DefaultWindow), env.Data.ExpiresAt)
}

func TestHandler_Issue_Anonymous(t *testing.T) {
	h, repo, _ := setup(t)

	repo.EXPECT().GetItinerary(gomock.Any(), "it-1").Return(&share.Itinerary{ID: "it-1"}, nil)
	repo.EXPECT().CreateShare(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, s *share.Share) error {
		assert.Nil(t, s.CreatedBy)
		return nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/itineraries/it-1/share", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_Resolve(t *testing.T) {
	type testCase struct {
		name       string
		share      *share.Share
		err        error
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "Valid",
			share:      &share.Share{ItineraryID: "it-1", ExpiresAt: testNow.Add(time.Minute), IsPublic: true},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Expired",
			share:      &share.Share{ItineraryID: "it-1", ExpiresAt: testNow, IsPublic: true},
			wantStatus: http.StatusGone,
		},
		{
			name:       "Unknown",
			err:        share.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, repo, _ := setup(t)

			repo.EXPECT().GetShareByToken(gomock.Any(), "tok").Return(tt.share, tt.err)

			if tt.wantStatus == http.StatusOK {
				repo.EXPECT().GetItinerary(gomock.Any(), "it-1").
					Return(&share.Itinerary{ID: "it-1", Title: "Kep", InternalNotes: "secret"}, nil)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/share/tok", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"title":"Kep"`)
				assert.NotContains(t, rec.Body.String(), "secret")
				assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			}
		})
	}
}
