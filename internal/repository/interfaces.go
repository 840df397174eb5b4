package repository

import (
	"context"

	"github.com/dom/bikeshare-backend/internal/domain"
	"github.com/google/uuid"
)

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.BikeRental) error
	Update(ctx context.Context, rental *domain.BikeRental) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BikeRental, error)
	List(ctx context.Context) ([]*domain.BikeRental, error)
}

type RewardRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.RewardAccount, error)
	// Credit atomically adds amount to the user's balance, creating the
	// account at zero first if it does not exist. It is the sole mutator of
	// RewardAccount.Points.
	Credit(ctx context.Context, userID string, amount int64) error
	// CreditExisting adds amount only if the account already exists and
	// reports whether a row was updated.
	CreditExisting(ctx context.Context, userID string, amount int64) (bool, error)
}

type Repositories struct {
	Rental RentalRepository
	Reward RewardRepository
}
