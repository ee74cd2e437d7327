package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	calls  atomic.Int32
	dryRun atomic.Bool
}

func (f *fakePoster) PostCurrentLeaderboard(ctx context.Context, dryRun bool) error {
	f.calls.Add(1)
	f.dryRun.Store(dryRun)
	return nil
}

func TestNew_InvalidCron(t *testing.T) {
	_, err := New(&fakePoster{}, "not a cron", time.UTC)
	assert.Error(t, err)
}

func TestScheduler_NextRunIsFridayEvening(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	s, err := New(&fakePoster{}, "0 18 * * 5", loc)
	require.NoError(t, err)
	s.Start()
	defer s.Shutdown()

	next, err := s.NextRun()
	require.NoError(t, err)
	next = next.In(loc)
	assert.Equal(t, time.Friday, next.Weekday())
	assert.Equal(t, 18, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestScheduler_RunNow(t *testing.T) {
	poster := &fakePoster{}
	s, err := New(poster, "0 18 * * 5", nil)
	require.NoError(t, err)
	s.Start()
	defer s.Shutdown()

	require.NoError(t, s.RunNow())
	assert.Eventually(t, func() bool { return poster.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.False(t, poster.dryRun.Load())
}
