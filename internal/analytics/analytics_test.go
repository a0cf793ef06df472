package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wayfare/internal/analytics"
	"github.com/MrJamesThe3rd/wayfare/internal/clock"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestService_Summary(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *analytics.MockRepository, spots *analytics.MockSpotCounter)
		want      *analytics.Summary
		wantErr   string
	}

	tests := []testCase{
		{
			name: "AllCounters",
			setupMock: func(repo *analytics.MockRepository, spots *analytics.MockSpotCounter) {
				repo.EXPECT().CountTransactionsByStatus(gomock.Any()).Return(map[string]int{"pending": 2, "completed": 5}, nil)
				repo.EXPECT().CountActiveSubscriptions(gomock.Any()).Return(4, nil)
				repo.EXPECT().CountPaymentsSince(gomock.Any(), testNow.Add(-24*time.Hour)).Return(9, nil)
				spots.EXPECT().CountPendingDelete(gomock.Any()).Return(1, nil)
			},
			want: &analytics.Summary{
				TransactionsByStatus: map[string]int{"pending": 2, "completed": 5},
				ActiveSubscriptions:  4,
				RecentPayments:       9,
				SpotsPendingDelete:   1,
				GeneratedAt:          testNow,
			},
		},
		{
			name: "EmptyDatabase",
			setupMock: func(repo *analytics.MockRepository, spots *analytics.MockSpotCounter) {
				repo.EXPECT().CountTransactionsByStatus(gomock.Any()).Return(nil, nil)
				repo.EXPECT().CountActiveSubscriptions(gomock.Any()).Return(0, nil)
				repo.EXPECT().CountPaymentsSince(gomock.Any(), gomock.Any()).Return(0, nil)
				spots.EXPECT().CountPendingDelete(gomock.Any()).Return(0, nil)
			},
			want: &analytics.Summary{TransactionsByStatus: map[string]int{}, GeneratedAt: testNow},
		},
		{
			name: "OneCounterFails",
			setupMock: func(repo *analytics.MockRepository, spots *analytics.MockSpotCounter) {
				repo.EXPECT().CountTransactionsByStatus(gomock.Any()).Return(map[string]int{}, nil).AnyTimes()
				repo.EXPECT().CountActiveSubscriptions(gomock.Any()).Return(0, errors.New("db down"))
				repo.EXPECT().CountPaymentsSince(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
				spots.EXPECT().CountPendingDelete(gomock.Any()).Return(0, nil).AnyTimes()
			},
			wantErr: "counting subscriptions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := analytics.NewMockRepository(ctrl)
			spots := analytics.NewMockSpotCounter(ctrl)
			tt.setupMock(repo, spots)

			got, err := analytics.NewService(repo, spots, clock.NewManual(testNow)).Summary(context.Background())

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
