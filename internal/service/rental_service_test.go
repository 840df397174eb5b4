package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dom/bikeshare-backend/internal/domain"
	"github.com/dom/bikeshare-backend/internal/repository/postgres"
	"github.com/dom/bikeshare-backend/internal/service"
	"github.com/dom/bikeshare-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRentalService(t *testing.T) (*service.RentalService, *testutil.TestDB, *testutil.FakeClock) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	clk := testutil.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := service.NewRentalService(repos.Rental, repos.Reward, clk, testutil.TestConfig())
	return svc, testDB, clk
}

func TestRentalService_StartRental(t *testing.T) {
	svc, _, clk := newTestRentalService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		bikeID  string
		wantErr error
	}{
		{
			name:   "successful start",
			userID: "u1",
			bikeID: "b1",
		},
		{
			name:    "missing user id",
			userID:  "",
			bikeID:  "b1",
			wantErr: domain.ErrMissingUserID,
		},
		{
			name:    "missing bike id",
			userID:  "u1",
			bikeID:  "",
			wantErr: domain.ErrMissingBikeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rental, err := svc.StartRental(ctx, tt.userID, tt.bikeID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, rental.UserID)
			assert.Equal(t, tt.bikeID, rental.BikeID)
			assert.True(t, rental.Active())
			assert.Nil(t, rental.RentalEnd)
			assert.Equal(t, 0, rental.RewardPoints)
			assert.Equal(t, clk.Now(), rental.RentalStart.UTC())

			points, err := svc.GetUserPoints(ctx, tt.userID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, points, int64(10))
		})
	}
}

func TestRentalService_StartRental_AccumulatesBonus(t *testing.T) {
	svc, _, _ := newTestRentalService(t)
	ctx := context.Background()

	_, err := svc.StartRental(ctx, "u1", "b1")
	require.NoError(t, err)
	_, err = svc.StartRental(ctx, "u1", "b2")
	require.NoError(t, err)

	points, err := svc.GetUserPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(20), points)
}

func TestRentalService_EndRental(t *testing.T) {
	svc, _, clk := newTestRentalService(t)
	ctx := context.Background()

	rental, err := svc.StartRental(ctx, "u1", "b1")
	require.NoError(t, err)

	points, err := svc.GetUserPoints(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(10), points)

	clk.Advance(45 * time.Minute)

	ended, err := svc.EndRental(ctx, rental.ID)
	require.NoError(t, err)
	assert.True(t, ended.Completed())
	require.NotNil(t, ended.RentalEnd)
	assert.Equal(t, clk.Now(), ended.RentalEnd.UTC())
	assert.Equal(t, 4, ended.RewardPoints)

	points, err = svc.GetUserPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(14), points)

	// The stored record is final
	stored, err := svc.GetRental(ctx, rental.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed())
	assert.Equal(t, 4, stored.RewardPoints)
}

func TestRentalService_EndRental_Twice(t *testing.T) {
	svc, _, clk := newTestRentalService(t)
	ctx := context.Background()

	rental, err := svc.StartRental(ctx, "u1", "b1")
	require.NoError(t, err)

	clk.Advance(10 * time.Minute)

	_, err = svc.EndRental(ctx, rental.ID)
	require.NoError(t, err)

	_, err = svc.EndRental(ctx, rental.ID)
	assert.ErrorIs(t, err, domain.ErrRentalAlreadyCompleted)

	// Second attempt must not have touched the record or the balance
	stored, err := svc.GetRental(ctx, rental.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.RewardPoints)

	points, err := svc.GetUserPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(11), points)
}

func TestRentalService_EndRental_RewardBoundaries(t *testing.T) {
	svc, _, clk := newTestRentalService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		duration   time.Duration
		wantReward int
	}{
		{"just under one interval", 9*time.Minute + 59*time.Second, 0},
		{"exactly one interval", 10 * time.Minute, 1},
		{"two and a half intervals", 25 * time.Minute, 2},
		{"fractional minutes count toward duration", 19*time.Minute + 59*time.Second, 1},
		{"clock moved backwards clamps to zero", -5 * time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rental, err := svc.StartRental(ctx, "u_boundaries", "b1")
			require.NoError(t, err)

			clk.Advance(tt.duration)
			ended, err := svc.EndRental(ctx, rental.ID)
			clk.Advance(-tt.duration)

			require.NoError(t, err)
			assert.Equal(t, tt.wantReward, ended.RewardPoints)
		})
	}
}

func TestRentalService_EndRental_NotFound(t *testing.T) {
	svc, _, _ := newTestRentalService(t)

	_, err := svc.EndRental(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrRentalNotFound)
}

func TestRentalService_EndRental_MissingAccount(t *testing.T) {
	// A rental row without a reward account mimics a crash between the
	// rental insert and the start-bonus credit. Returning the bike must
	// still succeed; only the credit is skipped.
	svc, testDB, clk := newTestRentalService(t)
	ctx := context.Background()

	rental := testutil.NewRentalBuilder().
		WithUserID("orphan").
		WithStart(clk.Now()).
		Build(t, testDB.DB)

	clk.Advance(30 * time.Minute)

	ended, err := svc.EndRental(ctx, rental.ID)
	require.NoError(t, err)
	assert.True(t, ended.Completed())
	assert.Equal(t, 3, ended.RewardPoints)

	_, err = svc.GetUserPoints(ctx, "orphan")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRentalService_GetRental(t *testing.T) {
	svc, _, _ := newTestRentalService(t)
	ctx := context.Background()

	rental, err := svc.StartRental(ctx, "u1", "b1")
	require.NoError(t, err)

	got, err := svc.GetRental(ctx, rental.ID)
	require.NoError(t, err)
	assert.Equal(t, rental.ID, got.ID)

	_, err = svc.GetRental(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRentalNotFound)
}

func TestRentalService_ListRentals(t *testing.T) {
	svc, _, _ := newTestRentalService(t)
	ctx := context.Background()

	rentals, err := svc.ListRentals(ctx)
	require.NoError(t, err)
	assert.Empty(t, rentals)

	first, err := svc.StartRental(ctx, "u1", "b1")
	require.NoError(t, err)
	second, err := svc.StartRental(ctx, "u2", "b2")
	require.NoError(t, err)

	rentals, err = svc.ListRentals(ctx)
	require.NoError(t, err)
	require.Len(t, rentals, 2)

	ids := []uuid.UUID{rentals[0].ID, rentals[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestRentalService_GetUserPoints_NotFound(t *testing.T) {
	svc, _, _ := newTestRentalService(t)

	_, err := svc.GetUserPoints(context.Background(), "never_rented")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestRentalService_ConcurrentCompletions(t *testing.T) {
	// Two rentals for one rider ending at the same moment must both land
	// their credits; the ledger update is an atomic read-modify-write.
	svc, _, clk := newTestRentalService(t)
	ctx := context.Background()

	first, err := svc.StartRental(ctx, "u1", "b1")
	require.NoError(t, err)
	second, err := svc.StartRental(ctx, "u1", "b2")
	require.NoError(t, err)

	clk.Advance(45 * time.Minute)

	var wg sync.WaitGroup
	for _, id := range []uuid.UUID{first.ID, second.ID} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := svc.EndRental(ctx, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	// 2 start bonuses + 4 points per rental, regardless of completion order
	points, err := svc.GetUserPoints(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(28), points)
}
