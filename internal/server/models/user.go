// Package models holds the development server's domain records.
package models

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
