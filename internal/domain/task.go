package domain

import "time"

// TaskType enumerates the kinds of scheduled field work.
type TaskType string

const (
	TaskPlanting    TaskType = "planting"
	TaskWatering    TaskType = "watering"
	TaskFertilizing TaskType = "fertilizing"
	TaskHarvesting  TaskType = "harvesting"
)

// ValidTaskType reports whether t is one of the known task types.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskPlanting, TaskWatering, TaskFertilizing, TaskHarvesting:
		return true
	}
	return false
}

// Task is a unit of scheduled work on a field. A task is mutated exactly
// once, when it is marked completed; completion is the event that drives
// the field lifecycle state machine.
type Task struct {
	ID            string    `json:"id"`
	FieldID       string    `json:"field_id"`
	OwnerID       string    `json:"owner_id"`
	Type          TaskType  `json:"type"`
	Crop          string    `json:"crop,omitempty"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Completed     bool      `json:"completed"`
	// KilosHarvested is meaningful only for harvesting tasks; it is recorded
	// at completion time and never changed afterwards.
	KilosHarvested float64    `json:"kilos_harvested,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// YieldPoint is one year's bucket in a yield trend projection.
type YieldPoint struct {
	Year            int     `json:"year"`
	TotalKilos      float64 `json:"total_kilos"`
	Hectares        float64 `json:"hectares"`
	KilosPerHectare float64 `json:"kilos_per_hectare"`
}
