package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddJobRejectsDuplicateID(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("rollover", "0 0 * * *", func() {}))

	err := s.AddJob("rollover", "0 0 * * *", func() {})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddJobInvalidCron(t *testing.T) {
	s := NewEventScheduler()

	assert.Error(t, s.AddJob("bad", "not a cron expr", func() {}))
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("tick", "* * * * *", func() {}))

	s.Start()
	s.Start() // second start is a no-op
	s.Stop()
	s.Stop() // second stop is a no-op
}
