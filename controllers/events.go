package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"event-registration/models"
	"event-registration/storage"
	"event-registration/utils"
)

// eventCategories is the fixed set offered on the event configuration form.
var eventCategories = map[string]bool{
	"Online Workshop":  true,
	"Hackathon":        true,
	"Conference":       true,
	"One-day Workshop": true,
}

type EventController struct{}

// CreateEvent stores a new event configuration.
func (ec *EventController) CreateEvent(catalog *storage.EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EventName         string `json:"event_name"`
			EventCategory     string `json:"event_category"`
			EventDate         string `json:"event_date"`
			RegistrationStart string `json:"registration_start_date"`
			RegistrationEnd   string `json:"registration_end_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid body"})
			return
		}
		defer r.Body.Close()

		if body.EventName == "" || !eventCategories[body.EventCategory] {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid event name or category"})
			return
		}
		for _, d := range []string{body.EventDate, body.RegistrationStart, body.RegistrationEnd} {
			if _, err := time.Parse(models.DateLayout, d); err != nil {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Dates must be in YYYY-MM-DD format"})
				return
			}
		}

		id, err := catalog.Create(r.Context(), models.EventConfiguration{
			EventName:         body.EventName,
			EventCategory:     body.EventCategory,
			EventDate:         body.EventDate,
			RegistrationStart: body.RegistrationStart,
			RegistrationEnd:   body.RegistrationEnd,
		})
		if err != nil {
			if errors.Is(err, models.ErrInvalidWindow) {
				utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
				return
			}
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save event"})
			return
		}

		utils.ResponseJSONStatus(w, http.StatusCreated, map[string]interface{}{
			"id":      id,
			"message": "Event has been successfully configured.",
		})
	}
}

// GetCategories lists the categories currently open for registration. An
// empty list means there is nothing to register for right now.
func (ec *EventController) GetCategories(catalog *storage.EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := catalog.OpenCategories(r.Context(), time.Now())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch categories"})
			return
		}
		utils.ResponseJSON(w, categories)
	}
}

// GetEventDates lists open event dates for a category.
func (ec *EventController) GetEventDates(catalog *storage.EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		if category == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Category is required"})
			return
		}
		dates, err := catalog.OpenDates(r.Context(), category, time.Now())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch event dates"})
			return
		}
		utils.ResponseJSON(w, dates)
	}
}

// GetEventNames lists open events for a category and date.
func (ec *EventController) GetEventNames(catalog *storage.EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		date := r.URL.Query().Get("date")
		if category == "" || date == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Category and date are required"})
			return
		}
		events, err := catalog.OpenEvents(r.Context(), category, date, time.Now())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch event names"})
			return
		}
		utils.ResponseJSON(w, events)
	}
}
