package mailer

import (
	"fmt"
	"net/smtp"

	"event-registration/models"

	"github.com/sirupsen/logrus"
)

// Config carries the SMTP transport settings plus the admin notification
// settings. Everything is passed in explicitly; the mailer reads no globals.
type Config struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string

	AdminEmail         string
	AdminNotifications bool
}

// Mailer sends registration confirmation emails over SMTP.
type Mailer struct {
	cfg Config
	log *logrus.Logger

	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg Config, log *logrus.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// SendConfirmation emails the registrant, and the admin address when admin
// notifications are enabled and an address is configured. Both mails share
// one body.
func (m *Mailer) SendConfirmation(reg models.Registration, eventName string) error {
	body := buildBody(reg, eventName)

	if err := m.sendOne(reg.Email, "Event Registration Confirmation - "+eventName, body); err != nil {
		return fmt.Errorf("failed to send confirmation to %s: %w", reg.Email, err)
	}

	if m.cfg.AdminNotifications && m.cfg.AdminEmail != "" {
		if err := m.sendOne(m.cfg.AdminEmail, "New Event Registration - "+eventName, body); err != nil {
			// The registrant already got their confirmation; a lost admin
			// copy is only worth a log line.
			m.log.WithError(err).Warn("admin notification failed")
		}
	}
	return nil
}

func (m *Mailer) sendOne(to, subject, body string) error {
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := []byte("To: " + to + "\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	return m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.From, []string{to}, msg)
}

func buildBody(reg models.Registration, eventName string) string {
	return fmt.Sprintf("Dear %s,\n\n"+
		"Thank you for registering for the event. Below are your registration details:\n\n"+
		"Name: %s\n"+
		"Event Name: %s\n"+
		"Event Date: %s\n"+
		"Category: %s\n"+
		"College: %s\n"+
		"Department: %s\n\n"+
		"We look forward to seeing you at the event!\n\n"+
		"Best regards,\n"+
		"Event Management Team",
		reg.FullName, reg.FullName, eventName, reg.EventDate,
		reg.EventCategory, reg.CollegeName, reg.Department)
}
