package domain

import "time"

// LifecycleState tracks a field's progression from registration to harvest.
// Transitions only ever move forward: Active -> Planted -> Harvested.
type LifecycleState string

const (
	FieldActive    LifecycleState = "active"
	FieldPlanted   LifecycleState = "planted"
	FieldHarvested LifecycleState = "harvested"
)

// Location is an optional lat/long pair for a field.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Field is a single cultivated plot owned by a farmer.
//
// Invariants maintained by the field and task services:
//   - Archived == true exactly when State == FieldHarvested.
//   - LockedRecommendations is non-nil exactly when SelectedCrop is non-empty.
type Field struct {
	ID             string         `json:"id"`
	OwnerID        string         `json:"owner_id"`
	Name           string         `json:"name"`
	SoilType       string         `json:"soil_type"`
	WateringMethod string         `json:"watering_method,omitempty"`
	LastYearCrop   string         `json:"last_year_crop,omitempty"`
	SizeHectares   float64        `json:"size_hectares"`
	Location       *Location      `json:"location,omitempty"`
	SelectedCrop   string         `json:"selected_crop,omitempty"`
	// LockedRecommendations, LockedWeather and LockedTip hold the snapshot
	// frozen at crop selection. Once present they are returned verbatim;
	// the live path is never consulted again for this field until it is
	// archived and recreated.
	LockedRecommendations []Recommendation `json:"locked_recommendations,omitempty"`
	LockedWeather         *WeatherSnapshot `json:"locked_weather,omitempty"`
	LockedTip             string           `json:"locked_tip,omitempty"`
	State                 LifecycleState   `json:"state"`
	PlantedDate           *time.Time       `json:"planted_date,omitempty"`
	HarvestDate           *time.Time       `json:"harvest_date,omitempty"`
	Archived              bool             `json:"archived"`
	CompletedAt           *time.Time       `json:"completed_at,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// Locked reports whether the field has a committed crop selection.
func (f *Field) Locked() bool {
	return f.SelectedCrop != ""
}

// Farmer is the owning account for fields and tasks. Only the slice the
// engine needs is modeled here; profile data lives elsewhere.
type Farmer struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
}
