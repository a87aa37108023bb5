package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/farmer"
	"github.com/jprdgz/sakahan-api/internal/logger"
)

// RegisterFarmerRequest represents the request to register a farmer account
type RegisterFarmerRequest struct {
	Username string `json:"username" validate:"required,max=100"`
}

// ActiveFarmersResponse represents the active farmer count
type ActiveFarmersResponse struct {
	Active int `json:"active"`
}

// FarmerHandler handles farmer account HTTP requests
type FarmerHandler struct {
	farmerSvc farmer.Service
}

// NewFarmerHandler creates a new farmer handler
func NewFarmerHandler(farmerSvc farmer.Service) *FarmerHandler {
	return &FarmerHandler{
		farmerSvc: farmerSvc,
	}
}

// Register handles farmer registration
// @Summary Register a farmer
// @Description Register a farmer account, or refresh its activity timestamp if the username exists
// @Tags farmers
// @Accept json
// @Produce json
// @Param request body RegisterFarmerRequest true "Farmer details"
// @Success 201 {object} domain.Farmer "Farmer registered"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farmers [post]
func (h *FarmerHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterFarmerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "RegisterFarmer"); err != nil {
		return
	}

	registered, err := h.farmerSvc.RegisterFarmer(r.Context(), &domain.Farmer{
		Username: req.Username,
	})
	if err != nil {
		respondServiceError(w, r, "RegisterFarmer", err)
		return
	}

	log.Info("Farmer registered", "farmer_id", registered.ID, "username", registered.Username)
	respondJSON(w, http.StatusCreated, registered)
}

// Get handles fetching a farmer account
// @Summary Get a farmer
// @Description Fetch a farmer account by ID
// @Tags farmers
// @Produce json
// @Param farmerID path string true "Farmer ID"
// @Success 200 {object} domain.Farmer "Farmer found"
// @Failure 404 {object} ErrorResponse "Farmer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farmers/{farmerID} [get]
func (h *FarmerHandler) Get(w http.ResponseWriter, r *http.Request) {
	farmerID := chi.URLParam(r, "farmerID")

	f, err := h.farmerSvc.GetFarmer(r.Context(), farmerID)
	if err != nil {
		respondServiceError(w, r, "GetFarmer", err)
		return
	}

	respondJSON(w, http.StatusOK, f)
}

// CountActive handles the active farmer count
// @Summary Count active farmers
// @Description Count farmers whose last activity falls inside the configured window
// @Tags farmers
// @Produce json
// @Success 200 {object} ActiveFarmersResponse "Active farmer count"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farmers/active [get]
func (h *FarmerHandler) CountActive(w http.ResponseWriter, r *http.Request) {
	count, err := h.farmerSvc.CountActive(r.Context())
	if err != nil {
		respondServiceError(w, r, "CountActiveFarmers", err)
		return
	}

	respondJSON(w, http.StatusOK, ActiveFarmersResponse{Active: count})
}
