package service

import (
	"github.com/dom/bikeshare-backend/internal/clock"
	"github.com/dom/bikeshare-backend/internal/config"
	"github.com/dom/bikeshare-backend/internal/repository"
)

type Services struct {
	Rental *RentalService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, clk clock.Clock) *Services {
	return &Services{
		Rental: NewRentalService(repos.Rental, repos.Reward, clk, cfg),
	}
}
