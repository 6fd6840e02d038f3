package clock

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

var _ Clock = clockwork.NewFakeClock()

func TestSystemMovesForward(t *testing.T) {
	a := System.Now()
	time.Sleep(time.Millisecond)
	assert.True(t, System.Now().After(a))
}

func TestFakeClockDrivesNow(t *testing.T) {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	fake := clockwork.NewFakeClockAt(start)
	var c Clock = fake

	fake.Advance(1500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())

	// 时钟回拨
	fake.Advance(-time.Second)
	assert.Equal(t, start.Add(500*time.Millisecond), c.Now())
}
