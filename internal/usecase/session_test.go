package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroChart/internal/domain/models"
)

func snap() *models.ChartSnapshot {
	return models.NewChartSnapshot(models.AscendantPoint{}, nil, "ok")
}

func TestStateTransitions(t *testing.T) {
	s := NewState()
	assert.Equal(t, PhaseInput, s.Phase())
	assert.Equal(t, models.DefaultBirthTime, s.Form().Time)

	loading, err := s.Submit(sample)
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, loading.Phase())
	assert.Equal(t, PhaseInput, s.Phase(), "receiver is unchanged")

	_, err = loading.Submit(sample)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	done, err := loading.Succeed(snap())
	require.NoError(t, err)
	assert.Equal(t, PhaseResult, done.Phase())
	assert.NotNil(t, done.Snapshot())

	back := done.Reset()
	assert.Equal(t, PhaseInput, back.Phase())
	assert.Nil(t, back.Snapshot())
	assert.Equal(t, models.DefaultBirthData(), back.Form())
}

func TestStateFailure(t *testing.T) {
	loading, err := NewState().Submit(sample)
	require.NoError(t, err)

	failed, err := loading.Fail(FailureMessage)
	require.NoError(t, err)
	assert.Equal(t, PhaseInput, failed.Phase())
	assert.Equal(t, FailureMessage, failed.ErrorMessage())
	assert.Equal(t, sample, failed.Form(), "form keeps what the user typed")

	again, err := failed.Submit(sample)
	require.NoError(t, err)
	assert.Empty(t, again.ErrorMessage())
}

func TestStateRejectsInvalidTransitions(t *testing.T) {
	s := NewState()
	_, err := s.Succeed(snap())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = s.Fail("x")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	loading, _ := s.Submit(sample)
	_, err = loading.Succeed(nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSessionsOneInFlight(t *testing.T) {
	ss := NewSessions(time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ss.Begin("a", sample); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	_, err := ss.Begin("b", sample)
	assert.NoError(t, err, "sessions are independent")

	st, err := ss.Complete("a", snap())
	require.NoError(t, err)
	assert.Equal(t, PhaseResult, st.Phase())

	st, err = ss.Begin("a", sample)
	require.NoError(t, err, "submitting from the result view starts over")
	assert.Nil(t, st.Snapshot())
}

func TestSessionsFailAndReset(t *testing.T) {
	ss := NewSessions(time.Minute)
	_, err := ss.Fail("a", FailureMessage)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _ = ss.Begin("a", sample)
	st, err := ss.Fail("a", FailureMessage)
	require.NoError(t, err)
	assert.Equal(t, FailureMessage, ss.Get("a").ErrorMessage())

	st = ss.Reset("a")
	assert.Equal(t, PhaseInput, st.Phase())
	assert.Empty(t, st.ErrorMessage())
}

func TestSessionsSweep(t *testing.T) {
	now := time.Now()
	ss := NewSessions(10 * time.Minute)
	ss.now = func() time.Time { return now }

	ss.Reset("idle")
	_, _ = ss.Begin("busy", sample)
	now = now.Add(time.Hour)
	ss.Reset("fresh")

	assert.Equal(t, 1, ss.Sweep())
	assert.Equal(t, 2, ss.Len())
	assert.Equal(t, PhaseLoading, ss.Get("busy").Phase())
}

func TestSessionsObserveTracksSweeps(t *testing.T) {
	now := time.Now()
	ss := NewSessions(10 * time.Minute)
	ss.now = func() time.Time { return now }

	var seen []int
	ss.Observe(func(n int) { seen = append(seen, n) })

	ss.Reset("a")
	_, _ = ss.Begin("b", sample)
	now = now.Add(time.Hour)
	ss.Sweep()

	assert.Equal(t, []int{0, 1, 2, 1}, seen)
}

func TestSessionsRunStops(t *testing.T) {
	ss := NewSessions(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ss.Run(ctx, time.Millisecond)
		close(done)
	}()
	ss.Reset("x")
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, 0, ss.Len())
}
