package models

import "time"

// Contact represents a single contact-form submission
type Contact struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Product   string    `json:"product"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Visit represents the visit counter for a single page
type Visit struct {
	ID    int64  `json:"id"`
	Page  string `json:"page"`
	Count int64  `json:"count"`
}

// AdminAccount represents the admin user that can list and export contacts
type AdminAccount struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never exposed in JSON
	Name         string     `json:"name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
