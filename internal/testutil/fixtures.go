package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/dom/bikeshare-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FakeClock is a settable clock.Clock for deterministic duration tests.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward (or backward, with a negative d).
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// RentalBuilder creates test rentals with a builder pattern
type RentalBuilder struct {
	userID string
	bikeID string
	start  time.Time
	end    *time.Time
	points int
}

// NewRentalBuilder creates a new RentalBuilder with default values
func NewRentalBuilder() *RentalBuilder {
	return &RentalBuilder{
		userID: "user_" + uuid.New().String()[:8],
		bikeID: "bike_" + uuid.New().String()[:8],
		start:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *RentalBuilder) WithUserID(userID string) *RentalBuilder {
	b.userID = userID
	return b
}

func (b *RentalBuilder) WithBikeID(bikeID string) *RentalBuilder {
	b.bikeID = bikeID
	return b
}

func (b *RentalBuilder) WithStart(start time.Time) *RentalBuilder {
	b.start = start
	return b
}

// CompletedAt marks the rental as returned at end with the given reward.
func (b *RentalBuilder) CompletedAt(end time.Time, points int) *RentalBuilder {
	b.end = &end
	b.points = points
	return b
}

// Build creates the rental in the database
func (b *RentalBuilder) Build(t *testing.T, db *gorm.DB) *domain.BikeRental {
	t.Helper()

	rental := &domain.BikeRental{
		ID:           uuid.New(),
		UserID:       b.userID,
		BikeID:       b.bikeID,
		RentalStart:  b.start,
		RentalEnd:    b.end,
		RewardPoints: b.points,
	}

	if err := db.Create(rental).Error; err != nil {
		t.Fatalf("failed to create rental: %v", err)
	}

	return rental
}
