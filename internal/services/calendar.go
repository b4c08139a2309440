package services

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"sutplan.dev/internal/models"
	"sutplan.dev/internal/parser"
)

// ErrMalformedFeed means the upstream payload could not be parsed as an
// iCalendar document at all.
var ErrMalformedFeed = errors.New("malformed calendar feed")

// CalendarService decodes raw iCalendar text into schedule events.
// All instants are normalized to Europe/Warsaw before serialization so
// the serialized start strings sort chronologically.
type CalendarService struct {
	logger *slog.Logger
	parser *parser.SummaryParser
	loc    *time.Location
}

func (s *CalendarService) Decode(raw string) ([]models.Event, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	events := []models.Event{}

	for _, ve := range cal.Events() {
		uid := propValue(ve, ics.ComponentPropertyUniqueId)
		summaryRaw := propValue(ve, ics.ComponentPropertySummary)

		start, err := ve.GetStartAt()
		if err != nil {
			s.logger.Warn("event without usable DTSTART, skipping", "uid", uid)
			continue
		}

		end, err := ve.GetEndAt()
		if err != nil {
			s.logger.Warn("event without usable DTEND, skipping", "uid", uid)
			continue
		}

		event := models.Event{
			UID:        uid,
			Start:      start.In(s.loc).Format(time.RFC3339),
			End:        end.In(s.loc).Format(time.RFC3339),
			SummaryRaw: summaryRaw,
		}

		if summary, ok := s.parser.Parse(summaryRaw); ok {
			event.Subject = &summary.Subject
			event.Type = &summary.Type
			event.Teacher = &summary.Teacher
			event.Room = &summary.Room
		}

		events = append(events, event)
	}

	// Lexicographic order on the serialized strings: chronological as long
	// as every timestamp carries the same offset. Stable so events with
	// the same start keep their feed order.
	slices.SortStableFunc(events, func(a, b models.Event) int {
		return strings.Compare(a.Start, b.Start)
	})

	return events, nil
}

func propValue(ve *ics.VEvent, name ics.ComponentProperty) string {
	prop := ve.GetProperty(name)
	if prop == nil {
		return ""
	}
	return prop.Value
}
