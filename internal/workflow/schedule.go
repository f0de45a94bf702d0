package workflow

import (
	"context"
	"sort"
	"strings"

	"github.com/eudistrict/chancery/internal/auth"
	"github.com/eudistrict/chancery/internal/models"
	"github.com/eudistrict/chancery/internal/records"
)

// EventInput is a new calendar entry.
type EventInput struct {
	StartDate   string
	EndDate     string // defaults to StartDate
	Title       string
	Location    string
	Description string
}

// ListSchedule returns every event ordered by start date. Events starting
// on the same day keep their worksheet order.
func (e *Engine) ListSchedule(ctx context.Context) ([]models.ScheduleEvent, error) {
	s, err := e.read(ctx, records.Schedule)
	if err != nil {
		return nil, err
	}
	events := decodeAll(e, records.Schedule, s.records, records.DecodeEvent)
	SortEvents(events)
	return events, nil
}

// UpcomingEvents returns the events that have not ended before today.
func (e *Engine) UpcomingEvents(ctx context.Context) ([]models.ScheduleEvent, error) {
	events, err := e.ListSchedule(ctx)
	if err != nil {
		return nil, err
	}
	today := e.today()
	upcoming := make([]models.ScheduleEvent, 0, len(events))
	for _, ev := range events {
		// YYYY-MM-DD strings order like the dates they spell.
		if ev.EndDate >= today {
			upcoming = append(upcoming, ev)
		}
	}
	return upcoming, nil
}

// SortEvents orders events by start date, stable.
func SortEvents(events []models.ScheduleEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartDate < events[j].StartDate
	})
}

// CreateEvent appends a calendar entry. Any officer may add events.
func (e *Engine) CreateEvent(ctx context.Context, who *models.Identity, in EventInput) (*models.ScheduleEvent, error) {
	if err := auth.Authorize(who, anyRole...); err != nil {
		return nil, err
	}

	ev := models.ScheduleEvent{
		ID:          e.newID(),
		StartDate:   strings.TrimSpace(in.StartDate),
		EndDate:     strings.TrimSpace(in.EndDate),
		Title:       strings.TrimSpace(in.Title),
		Location:    strings.TrimSpace(in.Location),
		Description: strings.TrimSpace(in.Description),
	}
	if ev.Title == "" {
		return nil, invalidField("title", "is required")
	}
	if !records.ValidDate(ev.StartDate) {
		return nil, invalidField("start_date", "must be a YYYY-MM-DD date")
	}
	if ev.EndDate == "" {
		ev.EndDate = ev.StartDate
	} else if !records.ValidDate(ev.EndDate) {
		return nil, invalidField("end_date", "must be a YYYY-MM-DD date")
	}
	if ev.EndDate < ev.StartDate {
		return nil, invalidField("end_date", "must not be before start_date")
	}

	if err := e.appendRow(ctx, records.Schedule, records.EncodeEvent(ev)); err != nil {
		return nil, err
	}
	e.logger.Info("Event scheduled", "id", ev.ID, "start", ev.StartDate, "by", who.Username)
	return &ev, nil
}
