package poll

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSupervisorPollsWhileAllConditionsActive(t *testing.T) {
	var polls atomic.Int32
	online := NewFlag(true)
	visible := NewFlag(true)
	s := NewSupervisor(5*time.Millisecond, func(context.Context) {
		polls.Add(1)
	}, online, visible)

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return polls.Load() >= 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1, s.ActiveTickers())
}

func TestSupervisorStopsWhenAnyConditionDrops(t *testing.T) {
	var polls atomic.Int32
	online := NewFlag(true)
	visible := NewFlag(true)
	s := NewSupervisor(5*time.Millisecond, func(context.Context) {
		polls.Add(1)
	}, online, visible)

	s.Start(context.Background())
	defer s.Stop()

	visible.Set(false)
	assert.Eventually(t, func() bool {
		return s.ActiveTickers() == 0
	}, time.Second, time.Millisecond)

	// no further polls once the ticker is down
	settled := polls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, polls.Load())
}

func TestSupervisorNeverStartsWhenConditionInactive(t *testing.T) {
	var polls atomic.Int32
	online := NewFlag(false)
	s := NewSupervisor(5*time.Millisecond, func(context.Context) {
		polls.Add(1)
	}, online)

	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), polls.Load())
	assert.Equal(t, 0, s.ActiveTickers())
}

func TestSupervisorSingleTickerAfterRepeatedToggles(t *testing.T) {
	online := NewFlag(true)
	visible := NewFlag(true)
	s := NewSupervisor(time.Millisecond, func(context.Context) {}, online, visible)

	s.Start(context.Background())
	defer s.Stop()

	for i := 0; i < 50; i++ {
		visible.Set(false)
		visible.Set(true)
		online.Set(false)
		online.Set(true)
		assert.LessOrEqual(t, s.ActiveTickers(), 1)
	}

	assert.Eventually(t, func() bool {
		return s.ActiveTickers() == 1
	}, time.Second, time.Millisecond)
}

func TestSupervisorStopTearsDownTicker(t *testing.T) {
	s := NewSupervisor(time.Millisecond, func(context.Context) {}, NewFlag(true))

	s.Start(context.Background())
	assert.Eventually(t, func() bool {
		return s.ActiveTickers() == 1
	}, time.Second, time.Millisecond)

	s.Stop()
	assert.Equal(t, 0, s.ActiveTickers())
}

func TestFlagNotifiesOnTransitionOnly(t *testing.T) {
	flag := NewFlag(true)

	flag.Set(true)
	select {
	case <-flag.Changes():
		t.Fatal("no notification expected for a non-transition")
	default:
	}

	flag.Set(false)
	select {
	case <-flag.Changes():
	default:
		t.Fatal("expected notification for a transition")
	}
}
