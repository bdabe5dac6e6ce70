package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Subscribers pick the employees they want to be told about; a notification
// goes out when a watched employee becomes available again.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Employees []*Employee `gorm:"many2many:subscription_employee_mapping;"`
}
