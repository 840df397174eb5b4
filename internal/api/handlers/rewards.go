package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/bikeshare-backend/internal/domain"
	"github.com/dom/bikeshare-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type RewardsHandler struct {
	rentalService *service.RentalService
}

func NewRewardsHandler(rentalService *service.RentalService) *RewardsHandler {
	return &RewardsHandler{rentalService: rentalService}
}

type UserRewardsResponse struct {
	Points int64 `json:"points"`
}

func (h *RewardsHandler) GetUserRewards(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	points, err := h.rentalService.GetUserPoints(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UserRewardsResponse{Points: points})
}
