// Package notify holds the outbound side-effect collaborators of the hiring
// pipeline: email notification and calendar event creation. Failures here
// are logged by callers and never fail a committed state transition.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
)

// Notification kinds
const (
	KindApplicationSubmitted = "application_submitted"
	KindInterviewScheduled   = "interview_scheduled"
)

// Mailer sends one transactional notification email.
type Mailer interface {
	Send(kind string, recipient string, data map[string]string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay configured from the
// environment.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewMailerFromEnv returns an SMTPMailer when SMTP_HOST is configured, or a
// LogMailer so local development works without a relay.
func NewMailerFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("SMTP_HOST not set, email notifications will only be logged")
		return &LogMailer{}
	}
	return &SMTPMailer{
		Host: host,
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASSWORD"),
		From: os.Getenv("SMTP_FROM"),
	}
}

// Send delivers the rendered template for kind to recipient.
func (m *SMTPMailer) Send(kind string, recipient string, data map[string]string) error {
	subject, body := renderTemplate(kind, data)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, recipient, subject, body)

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}

	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{recipient}, []byte(msg))
}

func renderTemplate(kind string, data map[string]string) (string, string) {
	switch kind {
	case KindApplicationSubmitted:
		return fmt.Sprintf("Application received: %s", data["job_title"]),
			fmt.Sprintf("Hi %s,\n\nYour application for %s at %s has been received. The hiring team will review it shortly.\n",
				data["first_name"], data["job_title"], data["company_name"])
	case KindInterviewScheduled:
		return fmt.Sprintf("Interview scheduled: %s", data["job_title"]),
			fmt.Sprintf("Hi %s,\n\nAn interview for %s has been scheduled on %s (%s). Location/link: %s\n",
				data["first_name"], data["job_title"], data["scheduled_at"], data["type"], data["location"])
	default:
		return "Notification", fmt.Sprintf("%v", data)
	}
}

// LogMailer writes would-be emails to the log. Used when SMTP is not configured
// and in tests.
type LogMailer struct{}

// Send logs the notification instead of delivering it.
func (m *LogMailer) Send(kind string, recipient string, data map[string]string) error {
	subject, _ := renderTemplate(kind, data)
	log.Printf("mail (%s) to %s: %s", kind, recipient, subject)
	return nil
}
