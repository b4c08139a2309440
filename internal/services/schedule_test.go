package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"sutplan.dev/internal/clients/plan"
	"sutplan.dev/internal/repositories"
	"sutplan.dev/internal/services"
)

type stubFetcher struct {
	raw   string
	err   error
	calls int
}

func (f *stubFetcher) Fetch(
	_ context.Context,
	_ string,
	_ int,
) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.raw, nil
}

func scheduleFeed() string {
	return icsFeed(
		"BEGIN:VEVENT",
		"UID:plan-1",
		"SUMMARY:Gk lab MaS 3073 - s.lab. 352A",
		"DTSTART:20260309T154500Z",
		"DTEND:20260309T171500Z",
		"END:VEVENT",
	)
}

func TestGetScheduleCachesResult(t *testing.T) {
	fetcher := &stubFetcher{raw: scheduleFeed()}
	svc := testServices(fetcher)

	first, err := svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	require.NoError(t, err)

	second, err := svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, first, second)
}

func TestGetScheduleDistinctKeys(t *testing.T) {
	fetcher := &stubFetcher{raw: scheduleFeed()}
	svc := testServices(fetcher)

	_, err := svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	require.NoError(t, err)

	_, err = svc.Schedule.GetSchedule(context.Background(), "inf1", 11)
	require.NoError(t, err)

	_, err = svc.Schedule.GetSchedule(context.Background(), "inf2", 10)
	require.NoError(t, err)

	assert.Equal(t, 3, fetcher.calls)
}

func TestGetScheduleFetchErrorNotCached(t *testing.T) {
	fetcher := &stubFetcher{err: plan.ErrInvalidFormat}
	svc := testServices(fetcher)

	_, err := svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	assert.ErrorIs(t, err, plan.ErrInvalidFormat)

	_, err = svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	assert.ErrorIs(t, err, plan.ErrInvalidFormat)

	assert.Equal(t, 2, fetcher.calls)
}

func TestGetScheduleMalformedFeedNotCached(t *testing.T) {
	fetcher := &stubFetcher{raw: "BEGIN:VCALENDAR but not really"}
	svc := testServices(fetcher)

	_, err := svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	assert.ErrorIs(t, err, services.ErrMalformedFeed)

	_, err = svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	assert.ErrorIs(t, err, services.ErrMalformedFeed)

	assert.Equal(t, 2, fetcher.calls)
}

func TestGetScheduleRefetchesAfterExpiry(t *testing.T) {
	fetcher := &stubFetcher{raw: scheduleFeed()}
	svc := services.New(
		logging.NewNopLogger(),
		repositories.New(128, 50*time.Millisecond),
		fetcher,
	)

	_, err := svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	_, err = svc.Schedule.GetSchedule(context.Background(), "inf1", 10)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls)
}
