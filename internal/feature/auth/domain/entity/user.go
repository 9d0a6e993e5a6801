// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is a UUID assigned at signup.
	ID string `gorm:"primaryKey;size:36"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash, never plaintext.
	Password string `gorm:"size:255;not null"`

	// Profile fields collected at signup and forwarded to the welcome pipeline.
	Name              string `gorm:"size:255"`
	Country           string `gorm:"size:64"`
	InvestmentGoals   string `gorm:"size:255"`
	RiskTolerance     string `gorm:"size:64"`
	PreferredIndustry string `gorm:"size:128"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
