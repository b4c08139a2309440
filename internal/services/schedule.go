package services

import (
	"context"
	"log/slog"

	"sutplan.dev/internal/clients/plan"
	"sutplan.dev/internal/models"
	"sutplan.dev/internal/repositories"
)

// ScheduleService answers schedule queries, going upstream only on a
// cache miss. Concurrent misses for the same key may fetch twice; the
// last writer wins, which is harmless since fetches are idempotent.
type ScheduleService struct {
	logger    *slog.Logger
	calendar  *CalendarService
	plan      plan.Fetcher
	schedules *repositories.ScheduleRepository
}

func (s *ScheduleService) GetSchedule(
	ctx context.Context,
	groupID string,
	week int,
) ([]models.Event, error) {
	if events, ok := s.schedules.Get(groupID, week); ok {
		s.logger.Debug("cache hit", "group_id", groupID, "week", week)
		return events, nil
	}

	s.logger.Info(
		"cache miss, fetching from plan server",
		"group_id", groupID,
		"week", week,
	)

	raw, err := s.plan.Fetch(ctx, groupID, week)
	if err != nil {
		return nil, err
	}

	events, err := s.calendar.Decode(raw)
	if err != nil {
		return nil, err
	}

	s.schedules.Set(groupID, week, events)

	return events, nil
}
