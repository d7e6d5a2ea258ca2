package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs chan struct{}
}

func (j *countingJob) Name() string { return j.name }
func (j *countingJob) Run() error {
	j.runs <- struct{}{}
	return nil
}

func TestScheduler_AddJob_RunsOnSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "test-job", runs: make(chan struct{}, 1)}

	require.NoError(t, s.AddJob("@every 1s", job))
	s.Start()
	defer s.Stop()

	select {
	case <-job.runs:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run within expected window")
	}
}

func TestScheduler_AddJob_RejectsInvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "bad-job", runs: make(chan struct{}, 1)}

	err := s.AddJob("not a valid cron expression", job)
	assert.Error(t, err)
}

func TestScheduler_RunNow_ExecutesImmediately(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "immediate-job", runs: make(chan struct{}, 1)}

	require.NoError(t, s.RunNow(job))
	select {
	case <-job.runs:
	default:
		t.Fatal("expected job.Run to have executed synchronously")
	}
}
