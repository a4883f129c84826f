package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"event-registration/models"
	"event-registration/storage"
)

// csvHeader is the fixed export column set. The export deliberately lists
// event_category rather than resolving event names.
var csvHeader = []string{
	"ID",
	"Full Name",
	"Email",
	"College Name",
	"Department",
	"Event Category",
	"Event Date",
	"Submission Date",
}

// Report is one consistent admin view: the filtered rows and their count.
type Report struct {
	Rows  []models.Registration `json:"registrations"`
	Total int                   `json:"total_count"`
}

// Engine resolves admin filters into listings and CSV exports.
type Engine struct {
	store *storage.RegistrationStore
}

func NewEngine(store *storage.RegistrationStore) *Engine {
	return &Engine{store: store}
}

// Resolve returns the rows matching the filter together with the total
// count. There is no paging, so Total always equals len(Rows).
func (e *Engine) Resolve(ctx context.Context, filter models.AdminFilter) (Report, error) {
	rows, err := e.store.List(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	total, err := e.store.Count(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return Report{Rows: rows, Total: total}, nil
}

// ToCSV renders registrations as a CSV document: the fixed header, one line
// per row, every field double-quoted with inner quotes doubled, and a newline
// terminating every line including the last.
func ToCSV(rows []models.Registration) string {
	var b strings.Builder
	writeCSVLine(&b, csvHeader)
	for _, r := range rows {
		writeCSVLine(&b, []string{
			fmt.Sprintf("%d", r.ID),
			r.FullName,
			r.Email,
			r.CollegeName,
			r.Department,
			r.EventCategory,
			r.EventDate,
			r.Created.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return b.String()
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// ExportFilename names the download after the moment of export.
func ExportFilename(now time.Time) string {
	return "event_registrations_" + now.Format("2006-01-02_15-04-05") + ".csv"
}
