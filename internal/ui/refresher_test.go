package ui

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefresherTicksUntilStopped(t *testing.T) {
	var ticks atomic.Int32
	r := NewRefresher(time.Millisecond, func() { ticks.Add(1) })

	r.Start()
	assert.True(t, r.Running())
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	r.Stop()
	assert.False(t, r.Running())

	// 最多还有一个已经在执行的 tick
	time.Sleep(5 * time.Millisecond)
	settled := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())
}

func TestRefresherStartStopIdempotent(t *testing.T) {
	var ticks atomic.Int32
	r := NewRefresher(time.Hour, func() { ticks.Add(1) })

	r.Stop()
	assert.False(t, r.Running())

	r.Start()
	r.Start()
	assert.True(t, r.Running())

	r.Stop()
	r.Stop()
	assert.False(t, r.Running())
	assert.Equal(t, int32(0), ticks.Load())
}

func TestRefresherRearm(t *testing.T) {
	var ticks atomic.Int32
	r := NewRefresher(time.Millisecond, func() { ticks.Add(1) })

	r.Start()
	r.Stop()
	before := ticks.Load()

	r.Start()
	defer r.Stop()
	assert.Eventually(t, func() bool { return ticks.Load() > before }, time.Second, time.Millisecond)
}

func TestRefresherSetInterval(t *testing.T) {
	var ticks atomic.Int32
	r := NewRefresher(time.Hour, func() { ticks.Add(1) })

	r.SetInterval(0)
	assert.Equal(t, time.Hour, r.Interval())

	r.Start()
	defer r.Stop()
	r.SetInterval(time.Millisecond)

	assert.Equal(t, time.Millisecond, r.Interval())
	assert.True(t, r.Running())
	assert.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)
}
