package model

import "time"

// Employee statuses. Only available <-> busy is driven by the assignment
// engine; on_break and off_duty are set by operator action.
const (
	EmployeeAvailable = "available"
	EmployeeBusy      = "busy"
	EmployeeOnBreak   = "on_break"
	EmployeeOffDuty   = "off_duty"
)

// Employee represents a workshop technician.
type Employee struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Role        string    `gorm:"size:64" json:"role"`
	Specialties []string  `gorm:"serializer:json" json:"specialties"`
	HourlyRate  float64   `json:"hourlyRate"`
	Status      string    `gorm:"size:16;not null;default:available" json:"status"`
	CurrentJob  *string   `gorm:"size:32" json:"currentJob,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
