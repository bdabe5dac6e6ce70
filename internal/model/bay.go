package model

import "time"

// Bay statuses.
const (
	BayAvailable   = "available"
	BayOccupied    = "occupied"
	BayMaintenance = "maintenance"
)

// Bay represents a physical work bay. The engine only reads bay status and
// writes the job link; bay lifecycle (maintenance, retirement) is owned by
// the bay-management side.
type Bay struct {
	ID           string    `gorm:"primaryKey;size:32" json:"id"`
	Type         string    `gorm:"size:64" json:"type"`
	Section      string    `gorm:"size:8;index" json:"section"`
	Number       int       `json:"number"`
	Capacity     int       `json:"capacity"`
	Equipment    []string  `gorm:"serializer:json" json:"equipment"`
	Status       string    `gorm:"size:16;not null;default:available" json:"status"`
	CurrentJobID *string   `gorm:"size:32" json:"currentJobId,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
