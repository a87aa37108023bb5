package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jprdgz/sakahan-api/internal/domain"
	"github.com/jprdgz/sakahan-api/internal/field"
	"github.com/jprdgz/sakahan-api/internal/logger"
)

// CreateFieldRequest represents the request to register a new field
type CreateFieldRequest struct {
	OwnerID        string   `json:"owner_id" validate:"required,max=64"`
	Name           string   `json:"name" validate:"required,max=100"`
	SoilType       string   `json:"soil_type" validate:"required,max=50"`
	WateringMethod string   `json:"watering_method" validate:"max=50"`
	LastYearCrop   string   `json:"last_year_crop" validate:"max=100"`
	SizeHectares   float64  `json:"size_hectares" validate:"required,gt=0"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// UpdateFieldRequest represents the request to update a field's editable attributes
type UpdateFieldRequest struct {
	Name           string   `json:"name" validate:"required,max=100"`
	SoilType       string   `json:"soil_type" validate:"required,max=50"`
	WateringMethod string   `json:"watering_method" validate:"max=50"`
	LastYearCrop   string   `json:"last_year_crop" validate:"max=100"`
	SizeHectares   float64  `json:"size_hectares" validate:"required,gt=0"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// FieldHandler handles field-related HTTP requests
type FieldHandler struct {
	fieldSvc field.Service
}

// NewFieldHandler creates a new field handler
func NewFieldHandler(fieldSvc field.Service) *FieldHandler {
	return &FieldHandler{
		fieldSvc: fieldSvc,
	}
}

func locationFromCoords(lat, lon *float64) *domain.Location {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.Location{Latitude: *lat, Longitude: *lon}
}

// Create handles field registration
// @Summary Register a new field
// @Description Register a cultivated plot for a farmer
// @Tags fields
// @Accept json
// @Produce json
// @Param request body CreateFieldRequest true "Field details"
// @Success 201 {object} domain.Field "Field created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields [post]
func (h *FieldHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CreateFieldRequest
	if err := DecodeAndValidateRequest(r, w, &req, "CreateField"); err != nil {
		return
	}

	log.Info("Create field request received", "owner_id", req.OwnerID, "name", req.Name)

	created, err := h.fieldSvc.CreateField(r.Context(), &domain.Field{
		OwnerID:        req.OwnerID,
		Name:           req.Name,
		SoilType:       req.SoilType,
		WateringMethod: req.WateringMethod,
		LastYearCrop:   req.LastYearCrop,
		SizeHectares:   req.SizeHectares,
		Location:       locationFromCoords(req.Latitude, req.Longitude),
	})
	if err != nil {
		respondServiceError(w, r, "CreateField", err)
		return
	}

	log.Info("Field created", "field_id", created.ID, "owner_id", created.OwnerID)
	respondJSON(w, http.StatusCreated, created)
}

// Get handles fetching a single field
// @Summary Get a field
// @Description Fetch a field by its ID
// @Tags fields
// @Produce json
// @Param fieldID path string true "Field ID"
// @Success 200 {object} domain.Field "Field found"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/{fieldID} [get]
func (h *FieldHandler) Get(w http.ResponseWriter, r *http.Request) {
	fieldID := chi.URLParam(r, "fieldID")

	f, err := h.fieldSvc.GetField(r.Context(), fieldID)
	if err != nil {
		respondServiceError(w, r, "GetField", err)
		return
	}

	respondJSON(w, http.StatusOK, f)
}

// Update handles editing a field's attributes
// @Summary Update a field
// @Description Update a field's editable attributes. Archived fields reject updates.
// @Tags fields
// @Accept json
// @Produce json
// @Param fieldID path string true "Field ID"
// @Param request body UpdateFieldRequest true "New field details"
// @Success 200 {object} domain.Field "Field updated"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 409 {object} ErrorResponse "Field is archived"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/{fieldID} [put]
func (h *FieldHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	fieldID := chi.URLParam(r, "fieldID")

	var req UpdateFieldRequest
	if err := DecodeAndValidateRequest(r, w, &req, "UpdateField"); err != nil {
		return
	}

	updated, err := h.fieldSvc.UpdateField(r.Context(), &domain.Field{
		ID:             fieldID,
		Name:           req.Name,
		SoilType:       req.SoilType,
		WateringMethod: req.WateringMethod,
		LastYearCrop:   req.LastYearCrop,
		SizeHectares:   req.SizeHectares,
		Location:       locationFromCoords(req.Latitude, req.Longitude),
	})
	if err != nil {
		respondServiceError(w, r, "UpdateField", err)
		return
	}

	log.Info("Field updated", "field_id", updated.ID)
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles removing a field
// @Summary Delete a field
// @Description Delete a field and its tasks. Fields with recorded yield cannot be deleted.
// @Tags fields
// @Produce json
// @Param fieldID path string true "Field ID"
// @Success 200 {object} SuccessResponse "Field deleted"
// @Failure 404 {object} ErrorResponse "Field not found"
// @Failure 409 {object} ErrorResponse "Field has recorded yield"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/{fieldID} [delete]
func (h *FieldHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	fieldID := chi.URLParam(r, "fieldID")

	if err := h.fieldSvc.DeleteField(r.Context(), fieldID); err != nil {
		respondServiceError(w, r, "DeleteField", err)
		return
	}

	log.Info("Field deleted", "field_id", fieldID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFieldDeletedSuccess})
}

// ListActive handles listing an owner's active fields
// @Summary List active fields
// @Description List the non-archived fields for an owner
// @Tags fields
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Success 200 {array} domain.Field "Active fields"
// @Failure 400 {object} ErrorResponse "Missing owner_id"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields [get]
func (h *FieldHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	fields, err := h.fieldSvc.ListActive(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, "ListActiveFields", err)
		return
	}

	respondJSON(w, http.StatusOK, fields)
}

// ListCompleted handles listing an owner's harvested fields
// @Summary List completed fields
// @Description List the archived (harvested) fields for an owner, most recent first
// @Tags fields
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Success 200 {array} domain.Field "Completed fields"
// @Failure 400 {object} ErrorResponse "Missing owner_id"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/completed [get]
func (h *FieldHandler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	fields, err := h.fieldSvc.ListCompleted(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, "ListCompletedFields", err)
		return
	}

	respondJSON(w, http.StatusOK, fields)
}

// ListAll handles listing every field across owners
// @Summary List all fields
// @Description List every registered field regardless of owner or state
// @Tags fields
// @Produce json
// @Success 200 {array} domain.Field "All fields"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /fields/all [get]
func (h *FieldHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	fields, err := h.fieldSvc.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, r, "ListAllFields", err)
		return
	}

	respondJSON(w, http.StatusOK, fields)
}
