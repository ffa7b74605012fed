package notify

import (
	"context"
	"log"
	"os"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarEvent is the input for creating an interview event.
type CalendarEvent struct {
	Title       string
	Description string
	Start       time.Time
	Duration    int // minutes
	Attendees   []string
}

// Calendar creates events for scheduled interviews.
type Calendar interface {
	CreateEvent(ctx context.Context, event CalendarEvent) (string, error)
}

// GoogleCalendar creates events on the primary calendar of a service account.
type GoogleCalendar struct {
	service *calendar.Service
}

// NewCalendarFromEnv returns a GoogleCalendar when a service account key file
// is configured, or a LogCalendar otherwise.
func NewCalendarFromEnv(ctx context.Context) Calendar {
	keyFile := os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY_FILE")
	if keyFile == "" {
		log.Println("GOOGLE_SERVICE_ACCOUNT_KEY_FILE not set, calendar events will only be logged")
		return &LogCalendar{}
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(keyFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		log.Printf("failed to initialize calendar service, falling back to log-only: %v", err)
		return &LogCalendar{}
	}
	return &GoogleCalendar{service: svc}
}

// CreateEvent inserts the event on the primary calendar and returns its id.
func (g *GoogleCalendar) CreateEvent(ctx context.Context, event CalendarEvent) (string, error) {
	end := event.Start.Add(time.Duration(event.Duration) * time.Minute)

	attendees := make([]*calendar.EventAttendee, 0, len(event.Attendees))
	for _, email := range event.Attendees {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := g.service.Events.Insert("primary", &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Start:       &calendar.EventDateTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
		Attendees:   attendees,
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 30},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

// LogCalendar logs events instead of creating them. Used when no service
// account is configured and in tests.
type LogCalendar struct{}

// CreateEvent logs the event and returns an empty id.
func (l *LogCalendar) CreateEvent(_ context.Context, event CalendarEvent) (string, error) {
	log.Printf("calendar event %q at %s (%d min) for %v", event.Title, event.Start.Format(time.RFC3339), event.Duration, event.Attendees)
	return "", nil
}
