// Package models contains database model definitions.
package models

import "time"

// Document is one JSON document of a collection.
type Document struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         string `gorm:"primaryKey;size:64"`
	Data       []byte `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
