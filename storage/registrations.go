package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-registration/models"

	"github.com/go-sql-driver/mysql"
)

// RegistrationStore persists registrations. Rows are append-only; nothing in
// scope updates or deletes them.
type RegistrationStore struct {
	db *sql.DB
}

func NewRegistrationStore(db *sql.DB) *RegistrationStore {
	return &RegistrationStore{db: db}
}

// Exists reports whether a registration with the exact email and event date
// is already stored. Matching is case-sensitive; email is not normalized.
func (s *RegistrationStore) Exists(ctx context.Context, email, eventDate string) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM event_registration
		WHERE email = ? AND event_date = ?
		LIMIT 1`, email, eventDate).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	return true, nil
}

// Insert appends a registration. The unique (email, event_date) index backs
// up the caller's duplicate check; a violation comes back as
// models.ErrDuplicateRegistration.
func (s *RegistrationStore) Insert(ctx context.Context, reg models.Registration) (int64, error) {
	created := reg.Created
	if created.IsZero() {
		created = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO event_registration
			(full_name, email, college_name, department, event_category, event_date, event_id, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.FullName, reg.Email, reg.CollegeName, reg.Department,
		reg.EventCategory, reg.EventDate, reg.EventID, created.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", models.ErrDuplicateRegistration, err)
		}
		return 0, fmt.Errorf("failed to save registration: %w", err)
	}
	return res.LastInsertId()
}

// List returns registrations matching the filter, newest first.
func (s *RegistrationStore) List(ctx context.Context, filter models.AdminFilter) ([]models.Registration, error) {
	query := `
		SELECT id, full_name, email, college_name, department, event_category, event_date, event_id, created
		FROM event_registration`
	where, args := filterClause(filter)
	query += where + " ORDER BY created DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	out := []models.Registration{}
	for rows.Next() {
		var r models.Registration
		var created int64
		if err := rows.Scan(&r.ID, &r.FullName, &r.Email, &r.CollegeName, &r.Department,
			&r.EventCategory, &r.EventDate, &r.EventID, &created); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of registrations matching the filter, using the
// same filter semantics as List.
func (s *RegistrationStore) Count(ctx context.Context, filter models.AdminFilter) (int, error) {
	query := "SELECT COUNT(*) FROM event_registration"
	where, args := filterClause(filter)
	query += where

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return n, nil
}

func filterClause(filter models.AdminFilter) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}
	if filter.EventDate != "" {
		conds = append(conds, "event_date = ?")
		args = append(args, filter.EventDate)
	}
	if filter.EventID != 0 {
		conds = append(conds, "event_id = ?")
		args = append(args, filter.EventID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	// The test database is SQLite, which has no typed driver error here.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
