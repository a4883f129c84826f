package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-registration/models"
	"event-registration/storage"
	"event-registration/validation"

	"github.com/sirupsen/logrus"
)

// Notifier sends the registration confirmation. Delivery failures never fail
// the registration; the workflow only logs them.
type Notifier interface {
	SendConfirmation(reg models.Registration, eventName string) error
}

// Step is how far the cascading category -> date -> event selection has
// progressed.
type Step int

const (
	StepCategory Step = iota // nothing chosen yet
	StepDate                 // category chosen, waiting on date
	StepEvent                // category and date chosen, waiting on event
	StepReady                // all three chosen, form can be submitted
)

// Selection holds the three dependent selection slots. Changing an earlier
// slot clears everything after it, so stale options can never be submitted.
type Selection struct {
	Category string
	Date     string
	EventID  int64
}

// Step reports the current position in the cascade.
func (s Selection) Step() Step {
	switch {
	case s.Category == "":
		return StepCategory
	case s.Date == "":
		return StepDate
	case s.EventID == 0:
		return StepEvent
	default:
		return StepReady
	}
}

// Workflow drives the registration form: the cascading selection and the
// validated submit.
type Workflow struct {
	catalog  *storage.EventCatalog
	store    *storage.RegistrationStore
	notifier Notifier
	log      *logrus.Logger
}

func New(catalog *storage.EventCatalog, store *storage.RegistrationStore, notifier Notifier, log *logrus.Logger) *Workflow {
	return &Workflow{catalog: catalog, store: store, notifier: notifier, log: log}
}

// CategoryOptions returns the categories currently open for registration.
func (w *Workflow) CategoryOptions(ctx context.Context, now time.Time) ([]string, error) {
	return w.catalog.OpenCategories(ctx, now)
}

// SelectCategory sets the category slot, clears the dependent date and event
// slots, and returns the open dates for the category.
func (w *Workflow) SelectCategory(ctx context.Context, sel *Selection, category string, now time.Time) ([]string, error) {
	sel.Category = category
	sel.Date = ""
	sel.EventID = 0
	if category == "" {
		return nil, errors.New("category is required")
	}
	return w.catalog.OpenDates(ctx, category, now)
}

// SelectDate sets the date slot, clears the dependent event slot, and returns
// the open events on that date. The category must already be selected; event
// options are never computed from a date alone.
func (w *Workflow) SelectDate(ctx context.Context, sel *Selection, date string, now time.Time) ([]models.EventOption, error) {
	if sel.Step() < StepDate {
		return nil, errors.New("category must be selected first")
	}
	sel.Date = date
	sel.EventID = 0
	if date == "" {
		return nil, errors.New("date is required")
	}
	return w.catalog.OpenEvents(ctx, sel.Category, date, now)
}

// SelectEvent sets the final slot. Category and date must both be selected.
func (w *Workflow) SelectEvent(sel *Selection, eventID int64) error {
	if sel.Step() < StepEvent {
		return errors.New("category and date must be selected first")
	}
	sel.EventID = eventID
	return nil
}

// Submit validates the input, guards against duplicates, stores the
// registration and sends the confirmation email. All field failures are
// collected and returned together; any failure means nothing was written and
// no email was sent. A non-nil error means the store itself failed.
func (w *Workflow) Submit(ctx context.Context, input models.RegistrationInput) (int64, []models.FieldError, error) {
	failures := []models.FieldError{}

	if !validation.IsValidEmail(input.Email) {
		failures = append(failures, models.FieldError{
			Field:   "email",
			Message: "Please enter a valid email address.",
		})
	}
	textFields := []struct {
		name  string
		label string
		value string
	}{
		{"full_name", "Full Name", input.FullName},
		{"college_name", "College Name", input.CollegeName},
		{"department", "Department", input.Department},
	}
	for _, f := range textFields {
		if !validation.IsValidTextField(f.value) {
			failures = append(failures, models.FieldError{
				Field:   f.name,
				Message: validation.FieldErrorMessage(f.label),
			})
		}
	}

	if input.EventDate != "" {
		dup, err := validation.IsDuplicate(ctx, w.store, input.Email, input.EventDate)
		if err != nil {
			return 0, nil, fmt.Errorf("duplicate check failed: %w", err)
		}
		if dup {
			failures = append(failures, duplicateFailure())
		}
	}

	if len(failures) > 0 {
		return 0, failures, nil
	}

	reg := models.Registration{
		FullName:      input.FullName,
		Email:         input.Email,
		CollegeName:   input.CollegeName,
		Department:    input.Department,
		EventCategory: input.EventCategory,
		EventDate:     input.EventDate,
		EventID:       input.EventID,
		Created:       time.Now(),
	}

	id, err := w.store.Insert(ctx, reg)
	if err != nil {
		// Two submissions can pass the existence check together; the unique
		// index catches the loser and it gets the same duplicate failure.
		if errors.Is(err, models.ErrDuplicateRegistration) {
			return 0, []models.FieldError{duplicateFailure()}, nil
		}
		return 0, nil, err
	}
	reg.ID = id

	eventName := "Event"
	if event, err := w.catalog.Get(ctx, input.EventID); err != nil {
		w.log.WithError(err).Warn("could not resolve event name for confirmation")
	} else if event != nil {
		eventName = event.EventName
	}

	if err := w.notifier.SendConfirmation(reg, eventName); err != nil {
		// The registration is committed; a failed email must not undo it.
		w.log.WithError(err).WithField("email", reg.Email).Error("confirmation email failed")
	}

	return id, nil, nil
}

func duplicateFailure() models.FieldError {
	return models.FieldError{
		Field:   "email",
		Message: "You have already registered for an event on this date. Duplicate registrations are not allowed.",
	}
}
