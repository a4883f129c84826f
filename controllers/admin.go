package controllers

import (
	"net/http"
	"strconv"
	"time"

	"event-registration/models"
	"event-registration/reporting"
	"event-registration/storage"
	"event-registration/utils"
)

type AdminController struct{}

// GetEventDates lists every event date for the admin filters, including
// dates whose registration window has closed.
func (ac *AdminController) GetEventDates(catalog *storage.EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dates, err := catalog.AllDates(r.Context())
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch event dates"})
			return
		}
		utils.ResponseJSON(w, dates)
	}
}

// GetEventNames lists events on a date regardless of openness.
func (ac *AdminController) GetEventNames(catalog *storage.EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Date is required"})
			return
		}
		events, err := catalog.EventsOnDate(r.Context(), date)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch event names"})
			return
		}
		utils.ResponseJSON(w, events)
	}
}

// GetRegistrations returns the filtered registrations and their total count.
func (ac *AdminController) GetRegistrations(engine *reporting.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid event ID"})
			return
		}
		report, err := engine.Resolve(r.Context(), filter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch registrations"})
			return
		}
		utils.ResponseJSON(w, report)
	}
}

// ExportCSV streams the filtered registrations as a CSV download.
func (ac *AdminController) ExportCSV(engine *reporting.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid event ID"})
			return
		}
		report, err := engine.Resolve(r.Context(), filter)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to fetch registrations"})
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+reporting.ExportFilename(time.Now())+`"`)
		w.Write([]byte(reporting.ToCSV(report.Rows)))
	}
}

func parseFilter(r *http.Request) (models.AdminFilter, error) {
	filter := models.AdminFilter{EventDate: r.URL.Query().Get("event_date")}
	if raw := r.URL.Query().Get("event_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.AdminFilter{}, err
		}
		filter.EventID = id
	}
	return filter, nil
}
