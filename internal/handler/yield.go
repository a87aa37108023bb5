package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jprdgz/sakahan-api/internal/yield"
)

// FieldYieldResponse represents the harvest total for a single field
type FieldYieldResponse struct {
	FieldID    string  `json:"field_id"`
	TotalKilos float64 `json:"total_kilos"`
}

// YieldHandler handles yield reporting HTTP requests
type YieldHandler struct {
	yieldSvc yield.Service
}

// NewYieldHandler creates a new yield handler
func NewYieldHandler(yieldSvc yield.Service) *YieldHandler {
	return &YieldHandler{
		yieldSvc: yieldSvc,
	}
}

// Trend handles the yield trend projection
// @Summary Get yield trend
// @Description Return per-year kilos-per-hectare buckets, scoped to an owner when owner_id is given
// @Tags yield
// @Produce json
// @Param owner_id query string false "Owner ID to scope by"
// @Success 200 {array} domain.YieldPoint "Yield trend"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /yield/trend [get]
func (h *YieldHandler) Trend(w http.ResponseWriter, r *http.Request) {
	ownerID := GetOptionalQueryParam(r, "owner_id", "")

	points, err := h.yieldSvc.Trend(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, "YieldTrend", err)
		return
	}

	respondJSON(w, http.StatusOK, points)
}

// FieldTotal handles the per-field harvest total
// @Summary Get a field's harvest total
// @Description Sum the kilos recorded across a field's completed harvests
// @Tags yield
// @Produce json
// @Param fieldID path string true "Field ID"
// @Success 200 {object} FieldYieldResponse "Harvest total"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/{fieldID}/yield [get]
func (h *YieldHandler) FieldTotal(w http.ResponseWriter, r *http.Request) {
	fieldID := chi.URLParam(r, "fieldID")

	total, err := h.yieldSvc.FieldTotal(r.Context(), fieldID)
	if err != nil {
		respondServiceError(w, r, "FieldYield", err)
		return
	}

	respondJSON(w, http.StatusOK, FieldYieldResponse{
		FieldID:    fieldID,
		TotalKilos: total,
	})
}
