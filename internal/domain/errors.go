package domain

import "errors"

// Rental errors
var (
	ErrRentalNotFound         = errors.New("rental not found")
	ErrRentalAlreadyCompleted = errors.New("rental is already completed")
)

// Reward account errors
var (
	ErrAccountNotFound = errors.New("reward account not found")
)

// Validation errors
var (
	ErrMissingUserID = errors.New("userId is required")
	ErrMissingBikeID = errors.New("bikeId is required")
)
