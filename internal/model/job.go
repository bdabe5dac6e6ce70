package model

import "time"

// Job statuses. The engine only moves jobs between pending and assigned;
// in_progress and completed arrive from the intake feed and are preserved.
const (
	JobPending    = "pending"
	JobAssigned   = "assigned"
	JobInProgress = "in_progress"
	JobCompleted  = "completed"
)

// Job represents one unit of service work.
//
// AssignedEmployees is the authoritative assignee set (ordered, unique).
// LegacyAssignee is the old single-assignee column still present in data
// imported from earlier exports; it is folded into AssignedEmployees by
// engine.MigrateLegacyAssignment and never written back.
type Job struct {
	ID                string    `gorm:"primaryKey;size:32" json:"id"`
	Vehicle           string    `gorm:"size:128" json:"vehicle"`
	Customer          string    `gorm:"size:128" json:"customer"`
	Service           string    `gorm:"size:128" json:"service"`
	Priority          string    `gorm:"size:16" json:"priority"`
	Status            string    `gorm:"size:16;not null;default:pending" json:"status"`
	AssignedEmployees []string  `gorm:"serializer:json" json:"assignedEmployees"`
	LegacyAssignee    *string   `gorm:"column:assigned_employee;size:32" json:"assignedEmployee,omitempty"`
	BayID             *string   `gorm:"size:32;index" json:"bayId,omitempty"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

// Title is the display label snapshotted onto assignment rows.
func (j *Job) Title() string {
	return j.Service + " - " + j.Vehicle
}

// HasAssignee reports whether the employee is already in the assignee set.
func (j *Job) HasAssignee(employeeID string) bool {
	for _, id := range j.AssignedEmployees {
		if id == employeeID {
			return true
		}
	}
	return false
}
