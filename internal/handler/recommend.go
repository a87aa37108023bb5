package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jprdgz/sakahan-api/internal/logger"
	"github.com/jprdgz/sakahan-api/internal/recommend"
)

// SelectCropRequest represents the request to commit a crop choice
type SelectCropRequest struct {
	CropName string `json:"crop_name" validate:"required,max=100"`
}

// RecommendHandler handles recommendation HTTP requests
type RecommendHandler struct {
	recommendSvc recommend.Service
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(recommendSvc recommend.Service) *RecommendHandler {
	return &RecommendHandler{
		recommendSvc: recommendSvc,
	}
}

// Get handles fetching recommendations for a field
// @Summary Get crop recommendations
// @Description Return the ranked crop suggestions, weather and tip for a field. Once a crop is selected the frozen snapshot is returned instead.
// @Tags recommendations
// @Produce json
// @Param fieldID path string true "Field ID"
// @Success 200 {object} domain.RecommendationSet "Recommendations"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 409 {object} ErrorResponse "Field is archived"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/{fieldID}/recommendations [get]
func (h *RecommendHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	fieldID := chi.URLParam(r, "fieldID")

	set, err := h.recommendSvc.GetRecommendations(r.Context(), fieldID)
	if err != nil {
		respondServiceError(w, r, "GetRecommendations", err)
		return
	}

	log.Info("Recommendations served",
		"field_id", fieldID,
		"locked", set.Locked,
		"count", len(set.Recommendations))

	respondJSON(w, http.StatusOK, set)
}

// SelectCrop handles committing a crop choice for a field
// @Summary Select a crop
// @Description Commit a crop choice for a field and freeze the current recommendation snapshot onto it
// @Tags recommendations
// @Accept json
// @Produce json
// @Param fieldID path string true "Field ID"
// @Param request body SelectCropRequest true "Crop choice"
// @Success 200 {object} domain.Field "Field with frozen selection"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown crop"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 409 {object} ErrorResponse "Field is archived"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/{fieldID}/select-crop [post]
func (h *RecommendHandler) SelectCrop(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	fieldID := chi.URLParam(r, "fieldID")

	var req SelectCropRequest
	if err := DecodeAndValidateRequest(r, w, &req, "SelectCrop"); err != nil {
		return
	}

	log.Info("Select crop request received", "field_id", fieldID, "crop", req.CropName)

	f, err := h.recommendSvc.SelectCrop(r.Context(), fieldID, req.CropName)
	if err != nil {
		respondServiceError(w, r, "SelectCrop", err)
		return
	}

	log.Info("Crop selected", "field_id", f.ID, "crop", f.SelectedCrop)
	respondJSON(w, http.StatusOK, f)
}
