package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/shared"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GoogleCalendar struct {
	events     *calendar.EventsService
	calendarID string
	studioName string
	loc        *time.Location
}

func NewGoogleCalendar(ctx context.Context, credentialsFile, calendarID, studioName string, loc *time.Location) (*GoogleCalendar, error) {
	svc, err := calendar.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errs.Wrap(err, "create calendar service")
	}
	return &GoogleCalendar{
		events:     svc.Events,
		calendarID: calendarID,
		studioName: studioName,
		loc:        loc,
	}, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, p shared.BookingPayload) (string, error) {
	created, err := g.events.Insert(g.calendarID, g.event(p)).Context(ctx).Do()
	if err != nil {
		return "", errs.Wrap(err, "insert calendar event")
	}
	return created.Id, nil
}

func (g *GoogleCalendar) UpdateEvent(ctx context.Context, eventID string, p shared.BookingPayload) error {
	if _, err := g.events.Patch(g.calendarID, eventID, g.event(p)).Context(ctx).Do(); err != nil {
		return errs.Wrap(err, "patch calendar event")
	}
	return nil
}

// DeleteEvent treats an event that is already gone as deleted.
func (g *GoogleCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	err := g.events.Delete(g.calendarID, eventID).Context(ctx).Do()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return nil
	}
	if err != nil {
		return errs.Wrap(err, "delete calendar event")
	}
	return nil
}

func (g *GoogleCalendar) event(p shared.BookingPayload) *calendar.Event {
	start, end := eventWindow(p)
	var desc strings.Builder
	fmt.Fprintf(&desc, "Client: %s\nEmail: %s\nPhone: %s\n", p.Name, p.Email, p.Phone)
	if len(p.Services) > 0 {
		fmt.Fprintf(&desc, "Services: %s\n", strings.Join(p.Services, ", "))
	}
	fmt.Fprintf(&desc, "Booking: %s\n", p.BookingID)

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", g.studioName, p.Name),
		Description: desc.String(),
		Start:       &calendar.EventDateTime{DateTime: start.In(g.loc).Format(time.RFC3339), TimeZone: g.loc.String()},
		End:         &calendar.EventDateTime{DateTime: end.In(g.loc).Format(time.RFC3339), TimeZone: g.loc.String()},
	}
}

// LogCalendar stands in when calendar sync is not configured. It hands out
// local ids so bookings still carry a stable reference.
type LogCalendar struct {
	logger *slog.Logger
}

func NewLogCalendar(logger *slog.Logger) *LogCalendar {
	return &LogCalendar{logger: logger}
}

func (c *LogCalendar) CreateEvent(ctx context.Context, p shared.BookingPayload) (string, error) {
	id := "local-" + uuid.NewString()
	c.logger.InfoContext(ctx, "calendar sync skipped", "op", "create", "booking_id", p.BookingID, "event_id", id)
	return id, nil
}

func (c *LogCalendar) UpdateEvent(ctx context.Context, eventID string, p shared.BookingPayload) error {
	c.logger.InfoContext(ctx, "calendar sync skipped", "op", "update", "booking_id", p.BookingID, "event_id", eventID)
	return nil
}

func (c *LogCalendar) DeleteEvent(ctx context.Context, eventID string) error {
	c.logger.InfoContext(ctx, "calendar sync skipped", "op", "delete", "event_id", eventID)
	return nil
}
