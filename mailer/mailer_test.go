package mailer

import (
	"errors"
	"io"
	"net/smtp"
	"testing"

	"event-registration/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to  []string
	msg string
}

func newTestMailer(cfg Config) (*Mailer, *[]sentMail) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	sent := &[]sentMail{}
	m := New(cfg, log)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, sentMail{to: to, msg: string(msg)})
		return nil
	}
	return m, sent
}

func sampleRegistration() models.Registration {
	return models.Registration{
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		CollegeName:   "State College",
		Department:    "Physics",
		EventCategory: "Hackathon",
		EventDate:     "2025-03-01",
	}
}

func TestSendConfirmationBody(t *testing.T) {
	m, sent := newTestMailer(Config{From: "events@example.com"})

	require.NoError(t, m.SendConfirmation(sampleRegistration(), "Build-A-Thon"))
	require.Len(t, *sent, 1)

	msg := (*sent)[0].msg
	assert.Equal(t, []string{"jane@example.com"}, (*sent)[0].to)
	assert.Contains(t, msg, "Subject: Event Registration Confirmation - Build-A-Thon")
	assert.Contains(t, msg, "Dear Jane Doe,")
	assert.Contains(t, msg, "Event Name: Build-A-Thon")
	assert.Contains(t, msg, "Event Date: 2025-03-01")
	assert.Contains(t, msg, "Category: Hackathon")
	assert.Contains(t, msg, "College: State College")
	assert.Contains(t, msg, "Department: Physics")
	assert.Contains(t, msg, "Event Management Team")
}

func TestSendConfirmationCopiesAdminWhenEnabled(t *testing.T) {
	m, sent := newTestMailer(Config{
		From:               "events@example.com",
		AdminEmail:         "admin@example.com",
		AdminNotifications: true,
	})

	require.NoError(t, m.SendConfirmation(sampleRegistration(), "Build-A-Thon"))
	require.Len(t, *sent, 2)
	assert.Equal(t, []string{"admin@example.com"}, (*sent)[1].to)
	assert.Contains(t, (*sent)[1].msg, "Subject: New Event Registration - Build-A-Thon")
}

func TestSendConfirmationSkipsAdminWhenDisabled(t *testing.T) {
	m, sent := newTestMailer(Config{
		From:       "events@example.com",
		AdminEmail: "admin@example.com",
	})

	require.NoError(t, m.SendConfirmation(sampleRegistration(), "Build-A-Thon"))
	assert.Len(t, *sent, 1)
}

func TestAdminFailureDoesNotFailConfirmation(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := New(Config{
		From:               "events@example.com",
		AdminEmail:         "admin@example.com",
		AdminNotifications: true,
	}, log)

	calls := 0
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		if calls == 2 {
			return errors.New("smtp down")
		}
		return nil
	}

	assert.NoError(t, m.SendConfirmation(sampleRegistration(), "Build-A-Thon"))
	assert.Equal(t, 2, calls)
}
