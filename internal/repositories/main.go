package repositories

import "time"

type Repositories struct {
	Schedules *ScheduleRepository
}

func New(cacheMaxSize int, cacheTTL time.Duration) *Repositories {
	return &Repositories{
		Schedules: NewScheduleRepository(cacheMaxSize, cacheTTL),
	}
}
