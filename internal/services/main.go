package services

import (
	"log/slog"
	"time"
	_ "time/tzdata"

	"sutplan.dev/internal/clients/plan"
	"sutplan.dev/internal/parser"
	"sutplan.dev/internal/repositories"
)

type Services struct {
	Calendar *CalendarService
	Schedule *ScheduleService
}

func New(
	logger *slog.Logger,
	repos *repositories.Repositories,
	fetcher plan.Fetcher,
) *Services {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		panic(err)
	}

	calendar := &CalendarService{
		logger: logger,
		parser: parser.NewSummaryParser(logger, parser.DefaultTypeKeywords),
		loc:    loc,
	}

	return &Services{
		Calendar: calendar,
		Schedule: &ScheduleService{
			logger:    logger,
			calendar:  calendar,
			plan:      fetcher,
			schedules: repos.Schedules,
		},
	}
}
