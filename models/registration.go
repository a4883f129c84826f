package models

import "time"

type Registration struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	CollegeName   string    `json:"college_name"`
	Department    string    `json:"department"`
	EventCategory string    `json:"event_category"`
	EventDate     string    `json:"event_date"`
	EventID       int64     `json:"event_id"`
	Created       time.Time `json:"created"`
}

// RegistrationInput carries a submitted registration before validation.
type RegistrationInput struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	CollegeName   string `json:"college_name"`
	Department    string `json:"department"`
	EventCategory string `json:"event_category"`
	EventDate     string `json:"event_date"`
	EventID       int64  `json:"event_id"`
}

// AdminFilter narrows admin listing, counting and export. Empty fields match
// everything.
type AdminFilter struct {
	EventDate string
	EventID   int64
}
