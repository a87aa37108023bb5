package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jprdgz/sakahan-api/internal/catalog"
	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/logger"
)

// SetOversupplyRequest represents the request to replace the oversupply
// flags. An empty list clears the flag on every crop.
type SetOversupplyRequest struct {
	CropNames []string `json:"crop_names" validate:"dive,required,max=100"`
}

// CatalogHandler handles crop catalog HTTP requests
type CatalogHandler struct {
	catalogSvc catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogSvc: catalogSvc,
	}
}

// ListCrops handles listing the crop catalog
// @Summary List crops
// @Description List every crop in the catalog in seed order
// @Tags catalog
// @Produce json
// @Success 200 {array} domain.Crop "Crops"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /crops [get]
func (h *CatalogHandler) ListCrops(w http.ResponseWriter, r *http.Request) {
	crops, err := h.catalogSvc.ListCrops(r.Context())
	if err != nil {
		respondServiceError(w, r, "ListCrops", err)
		return
	}

	respondJSON(w, http.StatusOK, crops)
}

// GetCrop handles fetching a single crop by name
// @Summary Get a crop
// @Description Fetch a catalog entry by crop name, case-insensitively
// @Tags catalog
// @Produce json
// @Param name path string true "Crop name"
// @Success 200 {object} domain.Crop "Crop found"
// @Failure 404 {object} ErrorResponse "Crop not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /crops/{name} [get]
func (h *CatalogHandler) GetCrop(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	crop, err := h.catalogSvc.GetCrop(r.Context(), name)
	if err != nil {
		// A missing catalog entry is a 404 here, unlike the selection
		// path where an unknown crop name is a bad request.
		if errors.Is(err, domain.ErrCropNotFound) {
			respondError(w, http.StatusNotFound, "Crop not found")
			return
		}
		respondServiceError(w, r, "GetCrop", err)
		return
	}

	respondJSON(w, http.StatusOK, crop)
}

// SetOversupply handles replacing the catalog's oversupply flags
// @Summary Set oversupplied crops
// @Description Flag the named crops as oversupplied and clear the flag on every other crop
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body SetOversupplyRequest true "Crop names"
// @Success 200 {object} SuccessResponse "Flags updated"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown crop"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /crops/oversupply [post]
func (h *CatalogHandler) SetOversupply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SetOversupplyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "SetOversupply"); err != nil {
		return
	}

	if err := h.catalogSvc.SetOversupply(r.Context(), req.CropNames); err != nil {
		respondServiceError(w, r, "SetOversupply", err)
		return
	}

	log.Info("Oversupply flags updated", "count", len(req.CropNames))
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgOversupplyUpdatedSuccess})
}

// ListOversupplied handles listing the currently flagged crops
// @Summary List oversupplied crops
// @Description List the names of crops currently flagged as oversupplied
// @Tags catalog
// @Produce json
// @Success 200 {array} string "Oversupplied crop names"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /crops/oversupply [get]
func (h *CatalogHandler) ListOversupplied(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalogSvc.ListOversupplied(r.Context())
	if err != nil {
		respondServiceError(w, r, "ListOversupplied", err)
		return
	}

	respondJSON(w, http.StatusOK, names)
}
