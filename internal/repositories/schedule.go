package repositories

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"sutplan.dev/internal/models"
)

// ScheduleRepository caches decoded schedules per (group, week) pair.
//
// Entries live for the configured TTL and the store is bounded: once at
// capacity the least recently used entry is evicted. Expiry is checked on
// access, no background sweeper is needed. Safe for concurrent use.
type ScheduleRepository struct {
	cache *expirable.LRU[string, []models.Event]
}

func NewScheduleRepository(
	maxSize int,
	ttl time.Duration,
) *ScheduleRepository {
	return &ScheduleRepository{
		cache: expirable.NewLRU[string, []models.Event](maxSize, nil, ttl),
	}
}

func cacheKey(groupID string, week int) string {
	return fmt.Sprintf("%s:%d", groupID, week)
}

func (repo *ScheduleRepository) Get(
	groupID string,
	week int,
) ([]models.Event, bool) {
	return repo.cache.Get(cacheKey(groupID, week))
}

func (repo *ScheduleRepository) Set(
	groupID string,
	week int,
	events []models.Event,
) {
	repo.cache.Add(cacheKey(groupID, week), events)
}

func (repo *ScheduleRepository) Len() int {
	return repo.cache.Len()
}
