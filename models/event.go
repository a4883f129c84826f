package models

import "time"

// DateLayout is the wire and storage format for all calendar dates.
const DateLayout = "2006-01-02"

type EventConfiguration struct {
	ID                int64     `json:"id"`
	EventName         string    `json:"event_name"`
	EventCategory     string    `json:"event_category"`
	EventDate         string    `json:"event_date"`
	RegistrationStart string    `json:"registration_start_date"`
	RegistrationEnd   string    `json:"registration_end_date"`
	Created           time.Time `json:"created"`
}

// EventOption is one entry of an ordered id->name listing used by the
// cascading selects and the admin filters.
type EventOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
