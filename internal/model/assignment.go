package model

import "time"

// Assignment is one occupied hourly slot for one employee. A two-hour
// booking produces two rows sharing EmployeeID/JobID/Date but with
// different hour labels. At most one row may exist per
// (employee, date, hour).
type Assignment struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	EmployeeID string    `gorm:"size:32;not null;uniqueIndex:idx_employee_slot,priority:1" json:"employeeId"`
	JobID      string    `gorm:"size:32;not null;index" json:"jobId"`
	Date       string    `gorm:"size:10;not null;uniqueIndex:idx_employee_slot,priority:2" json:"date"`
	Weekday    int       `gorm:"not null" json:"day"`
	Hour       string    `gorm:"size:8;not null;uniqueIndex:idx_employee_slot,priority:3" json:"hour"`
	StartTime  string    `gorm:"size:8" json:"startTime"`
	Duration   float64   `json:"duration"`
	JobTitle   string    `gorm:"size:256" json:"jobTitle"`
	CreatedAt  time.Time `json:"-"`
}
