package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type countingSweeper struct {
	calls   atomic.Int32
	removed int
}

func (s *countingSweeper) Sweep(now time.Time) int {
	s.calls.Add(1)
	return s.removed
}

func TestScheduler_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScheduler("*/5 * * * *", &countingSweeper{}, nil)
	require.NoError(t, s.Start())
	s.Stop()
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScheduler("every now and then", &countingSweeper{}, nil)
	assert.Error(t, s.Start())
}

func TestScheduler_SweepDownloads(t *testing.T) {
	sweeper := &countingSweeper{removed: 3}
	s := NewScheduler("@every 1h", sweeper, nil)

	fixed := time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	s.sweepDownloads()
	s.sweepDownloads()
	assert.Equal(t, int32(2), sweeper.calls.Load())
}
