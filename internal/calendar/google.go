package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/valdezlabs/citabot/pkg/logging"
)

// GoogleConfig controls how appointment events are written.
type GoogleConfig struct {
	CalendarID           string
	CredentialsFile      string
	Timezone             string
	Duration             time.Duration
	ReminderEmailMinutes int
	ReminderPopupMinutes int
	Timeout              time.Duration
}

// GoogleCreator writes appointment events to a Google Calendar using a
// service account.
type GoogleCreator struct {
	service *gcal.Service
	cfg     GoogleConfig
	logger  *logging.Logger
}

// NewGoogleCreator builds the Calendar API service from a service-account
// credentials file and returns a ready creator.
func NewGoogleCreator(ctx context.Context, cfg GoogleConfig, logger *logging.Logger) (*GoogleCreator, error) {
	if strings.TrimSpace(cfg.CalendarID) == "" {
		return nil, errors.New("calendar: calendar id is required")
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Mexico_City"
	}
	if cfg.Duration <= 0 {
		cfg.Duration = time.Hour
	}
	if cfg.ReminderEmailMinutes <= 0 {
		cfg.ReminderEmailMinutes = 1440
	}
	if cfg.ReminderPopupMinutes <= 0 {
		cfg.ReminderPopupMinutes = 60
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	service, err := gcal.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to create calendar service: %w", err)
	}

	return &GoogleCreator{
		service: service,
		cfg:     cfg,
		logger:  logger.Component("calendar"),
	}, nil
}

// CreateAppointment inserts a one-hour event titled "Cita - {holder}" with
// an email reminder the day before and a popup one hour before.
func (c *GoogleCreator) CreateAppointment(ctx context.Context, holderName string, start time.Time) (Confirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	event := BuildEvent(holderName, start, c.cfg)

	created, err := c.service.Events.Insert(c.cfg.CalendarID, event).Context(ctx).Do()
	if err != nil {
		c.logger.Error("calendar event creation failed", "error", err, "holder", holderName)
		return Confirmation{}, fmt.Errorf("calendar: failed to create event: %w", err)
	}

	c.logger.Info("calendar event created", "event_id", created.Id, "link", created.HtmlLink)
	return Confirmation{EventID: created.Id, Link: created.HtmlLink}, nil
}

// BuildEvent assembles the Calendar API payload for an appointment.
func BuildEvent(holderName string, start time.Time, cfg GoogleConfig) *gcal.Event {
	return &gcal.Event{
		Summary:     fmt.Sprintf("Cita - %s", holderName),
		Description: "Cita agendada vía Telegram",
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: cfg.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: start.Add(cfg.Duration).Format(time.RFC3339),
			TimeZone: cfg.Timezone,
		},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: int64(cfg.ReminderEmailMinutes)},
				{Method: "popup", Minutes: int64(cfg.ReminderPopupMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}
