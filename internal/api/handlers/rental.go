package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dom/bikeshare-backend/internal/domain"
	"github.com/dom/bikeshare-backend/internal/service"
	"github.com/dom/bikeshare-backend/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type RentalHandler struct {
	rentalService *service.RentalService
	hub           *websocket.Hub
}

func NewRentalHandler(rentalService *service.RentalService, hub *websocket.Hub) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
		hub:           hub,
	}
}

type StartRentalRequest struct {
	UserID string `json:"userId"`
	BikeID string `json:"bikeId"`
}

type RentalResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	BikeID       string     `json:"bikeId"`
	RentalStart  time.Time  `json:"rentalStart"`
	RentalEnd    *time.Time `json:"rentalEnd"`
	RewardPoints int        `json:"rewardPoints"`
}

func newRentalResponse(rental *domain.BikeRental) RentalResponse {
	return RentalResponse{
		ID:           rental.ID.String(),
		UserID:       rental.UserID,
		BikeID:       rental.BikeID,
		RentalStart:  rental.RentalStart,
		RentalEnd:    rental.RentalEnd,
		RewardPoints: rental.RewardPoints,
	}
}

func (h *RentalHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rental, err := h.rentalService.StartRental(r.Context(), req.UserID, req.BikeID)
	if err != nil {
		if errors.Is(err, domain.ErrMissingUserID) || errors.Is(err, domain.ErrMissingBikeID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to start rental", http.StatusInternalServerError)
		return
	}

	h.hub.RentalStarted(rental)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newRentalResponse(rental))
}

func (h *RentalHandler) End(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// A malformed id cannot name any rental.
		http.Error(w, "Rental not found", http.StatusNotFound)
		return
	}

	rental, err := h.rentalService.EndRental(r.Context(), rentalID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRentalNotFound):
			http.Error(w, "Rental not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrRentalAlreadyCompleted):
			http.Error(w, "Rental is already completed", http.StatusConflict)
		default:
			http.Error(w, "Failed to end rental", http.StatusInternalServerError)
		}
		return
	}

	h.hub.RentalCompleted(rental)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newRentalResponse(rental))
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	rentalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Rental not found", http.StatusNotFound)
		return
	}

	rental, err := h.rentalService.GetRental(r.Context(), rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrRentalNotFound) {
			http.Error(w, "Rental not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newRentalResponse(rental))
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	rentals, err := h.rentalService.ListRentals(r.Context())
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]RentalResponse, 0, len(rentals))
	for _, rental := range rentals {
		resp = append(resp, newRentalResponse(rental))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
