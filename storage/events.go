package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"event-registration/models"
)

// EventCatalog answers which event configurations exist and which are
// currently open for registration. Dates are compared as YYYY-MM-DD strings,
// so the window check is inclusive on both ends.
type EventCatalog struct {
	db *sql.DB
}

func NewEventCatalog(db *sql.DB) *EventCatalog {
	return &EventCatalog{db: db}
}

// Create validates the registration window and persists a new configuration.
func (c *EventCatalog) Create(ctx context.Context, cfg models.EventConfiguration) (int64, error) {
	if cfg.RegistrationEnd < cfg.RegistrationStart {
		return 0, fmt.Errorf("%w: registration end date must be after the start date", models.ErrInvalidWindow)
	}
	if cfg.EventDate < cfg.RegistrationEnd {
		return 0, fmt.Errorf("%w: event date must be after the registration end date", models.ErrInvalidWindow)
	}

	res, err := c.db.ExecContext(ctx, `
		INSERT INTO event_configuration
			(event_name, event_category, event_date, registration_start_date, registration_end_date, created)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cfg.EventName, cfg.EventCategory, cfg.EventDate, cfg.RegistrationStart, cfg.RegistrationEnd,
		time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to save event configuration: %w", err)
	}
	return res.LastInsertId()
}

// OpenCategories returns the distinct categories that have at least one
// configuration whose registration window contains now.
func (c *EventCatalog) OpenCategories(ctx context.Context, now time.Time) ([]string, error) {
	today := now.Format(models.DateLayout)
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT event_category FROM event_configuration
		WHERE registration_start_date <= ? AND registration_end_date >= ?
		ORDER BY event_category ASC`, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// OpenDates returns the distinct event dates still open for registration in
// the given category, ascending.
func (c *EventCatalog) OpenDates(ctx context.Context, category string, now time.Time) ([]string, error) {
	today := now.Format(models.DateLayout)
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT event_date FROM event_configuration
		WHERE event_category = ?
		  AND registration_start_date <= ? AND registration_end_date >= ?
		ORDER BY event_date ASC`, category, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query event dates: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// OpenEvents returns the open configurations matching category and date,
// ordered by name.
func (c *EventCatalog) OpenEvents(ctx context.Context, category, date string, now time.Time) ([]models.EventOption, error) {
	today := now.Format(models.DateLayout)
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, event_name FROM event_configuration
		WHERE event_category = ? AND event_date = ?
		  AND registration_start_date <= ? AND registration_end_date >= ?
		ORDER BY event_name ASC`, category, date, today, today)
	if err != nil {
		return nil, fmt.Errorf("failed to query event names: %w", err)
	}
	defer rows.Close()
	return scanOptions(rows)
}

// AllDates returns every distinct event date regardless of openness,
// descending. Admin listing needs to see past events too.
func (c *EventCatalog) AllDates(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT event_date FROM event_configuration
		ORDER BY event_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query event dates: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// EventsOnDate returns all configurations on the date regardless of openness.
func (c *EventCatalog) EventsOnDate(ctx context.Context, date string) ([]models.EventOption, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, event_name FROM event_configuration
		WHERE event_date = ?
		ORDER BY event_name ASC`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query event names: %w", err)
	}
	defer rows.Close()
	return scanOptions(rows)
}

// Get returns the configuration with the given id, or nil when absent.
func (c *EventCatalog) Get(ctx context.Context, id int64) (*models.EventConfiguration, error) {
	var cfg models.EventConfiguration
	var created int64
	err := c.db.QueryRowContext(ctx, `
		SELECT id, event_name, event_category, event_date, registration_start_date, registration_end_date, created
		FROM event_configuration WHERE id = ?`, id).
		Scan(&cfg.ID, &cfg.EventName, &cfg.EventCategory, &cfg.EventDate,
			&cfg.RegistrationStart, &cfg.RegistrationEnd, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event: %w", err)
	}
	cfg.Created = time.Unix(created, 0).UTC()
	return &cfg, nil
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanOptions(rows *sql.Rows) ([]models.EventOption, error) {
	out := []models.EventOption{}
	for rows.Next() {
		var o models.EventOption
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
