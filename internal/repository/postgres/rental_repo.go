package postgres

import (
	"context"

	"github.com/dom/bikeshare-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type rentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *rentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *domain.BikeRental) error {
	return r.db.WithContext(ctx).Create(rental).Error
}

func (r *rentalRepository) Update(ctx context.Context, rental *domain.BikeRental) error {
	return r.db.WithContext(ctx).Save(rental).Error
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BikeRental, error) {
	var rental domain.BikeRental
	err := r.db.WithContext(ctx).First(&rental, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// List returns every rental. Ordering is whatever the database hands back;
// callers must not depend on it.
func (r *rentalRepository) List(ctx context.Context) ([]*domain.BikeRental, error) {
	var rentals []*domain.BikeRental
	err := r.db.WithContext(ctx).Find(&rentals).Error
	if err != nil {
		return nil, err
	}
	return rentals, nil
}
