package domain

import (
	"time"

	"github.com/google/uuid"
)

type BikeRental struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	UserID       string     `json:"userId" gorm:"index;not null"`
	BikeID       string     `json:"bikeId" gorm:"index;not null"`
	RentalStart  time.Time  `json:"rentalStart" gorm:"not null"`
	RentalEnd    *time.Time `json:"rentalEnd"`
	RewardPoints int        `json:"rewardPoints" gorm:"not null;default:0"`
}

// Completed reports whether the rental has been returned. A rental with
// RentalEnd set is final and must never be mutated again.
func (r *BikeRental) Completed() bool {
	return r.RentalEnd != nil
}

func (r *BikeRental) Active() bool {
	return r.RentalEnd == nil
}

type RewardAccount struct {
	UserID string `json:"userId" gorm:"primary_key"`
	Points int64  `json:"points" gorm:"not null;default:0"`
}
