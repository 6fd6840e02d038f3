package ui

import (
	"testing"
	"time"

	"Stopwatch/internal/config"
	"Stopwatch/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

type recordingPlayer struct {
	played []models.TimerState
}

func (p *recordingPlayer) Play(state models.TimerState) {
	p.played = append(p.played, state)
}

// 刷新间隔设为一小时，测试中只有按钮触发重绘
var quietDisplay = config.DisplayConfig{RefreshInterval: time.Hour, FontSize: 64}

func newTestView(t *testing.T) (*StopwatchView, clockwork.FakeClock, *recordingPlayer) {
	t.Helper()
	return newTestViewWithDisplay(t, quietDisplay)
}

func newTestViewWithDisplay(t *testing.T, display config.DisplayConfig) (*StopwatchView, clockwork.FakeClock, *recordingPlayer) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	clk := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	player := &recordingPlayer{}
	v := NewStopwatchView(models.NewStopwatch(clk), player, display)
	t.Cleanup(v.Close)
	return v, clk, player
}

func TestViewInitialControls(t *testing.T) {
	v, _, _ := newTestView(t)

	assert.Equal(t, "00:00:000", v.timeLabel.Text)
	assert.False(t, v.startButton.Disabled())
	assert.True(t, v.pauseButton.Disabled())
	assert.False(t, v.resetButton.Disabled())
	assert.False(t, v.refresher.Running())
}

func TestViewStartPauseReset(t *testing.T) {
	v, clk, player := newTestView(t)

	test.Tap(v.startButton)
	assert.True(t, v.startButton.Disabled())
	assert.False(t, v.pauseButton.Disabled())
	assert.True(t, v.refresher.Running())

	clk.Advance(61*time.Second + 500*time.Millisecond)
	test.Tap(v.pauseButton)
	assert.Equal(t, "01:01:500", v.timeLabel.Text)
	assert.False(t, v.startButton.Disabled())
	assert.True(t, v.pauseButton.Disabled())
	assert.False(t, v.refresher.Running())

	// 暂停期间时间不再增加
	clk.Advance(time.Minute)
	v.refreshDisplay()
	assert.Equal(t, "01:01:500", v.timeLabel.Text)

	test.Tap(v.resetButton)
	assert.Equal(t, "00:00:000", v.timeLabel.Text)
	assert.Equal(t, models.StateIdle, v.stopwatch.State())

	assert.Equal(t, []models.TimerState{models.StateRunning, models.StatePaused, models.StateIdle}, player.played)
}

func TestViewResetWhileRunning(t *testing.T) {
	v, clk, _ := newTestView(t)

	test.Tap(v.startButton)
	clk.Advance(3 * time.Second)
	test.Tap(v.resetButton)

	assert.Equal(t, "00:00:000", v.timeLabel.Text)
	assert.False(t, v.refresher.Running())
	assert.False(t, v.startButton.Disabled())
	assert.True(t, v.pauseButton.Disabled())
}

func TestViewDisabledButtonsIgnoreTaps(t *testing.T) {
	v, clk, player := newTestView(t)

	test.Tap(v.pauseButton)
	assert.Equal(t, models.StateIdle, v.stopwatch.State())

	test.Tap(v.startButton)
	clk.Advance(time.Second)
	test.Tap(v.startButton)

	assert.Equal(t, time.Second, v.stopwatch.Elapsed())
	assert.Equal(t, []models.TimerState{models.StateRunning}, player.played)
}

func TestViewResumeContinues(t *testing.T) {
	v, clk, _ := newTestView(t)

	test.Tap(v.startButton)
	clk.Advance(2 * time.Second)
	test.Tap(v.pauseButton)
	test.Tap(v.startButton)
	clk.Advance(250 * time.Millisecond)
	test.Tap(v.pauseButton)

	assert.Equal(t, "00:02:250", v.timeLabel.Text)
}

func TestViewApplyDisplay(t *testing.T) {
	v, _, _ := newTestView(t)

	v.ApplyDisplay(config.DisplayConfig{RefreshInterval: 5 * time.Millisecond, FontSize: 32})
	assert.Equal(t, 5*time.Millisecond, v.refresher.Interval())
	assert.Equal(t, float32(32), v.timeLabel.TextSize)
}

func TestViewRefreshesWhileRunning(t *testing.T) {
	v, clk, _ := newTestViewWithDisplay(t, config.DisplayConfig{RefreshInterval: time.Millisecond, FontSize: 64})

	test.Tap(v.startButton)
	clk.Advance(1500 * time.Millisecond)

	// 没有按钮操作，只靠刷新循环更新显示
	assert.Eventually(t, func() bool {
		return v.timeLabel.Text == "00:01:500"
	}, 2*time.Second, time.Millisecond)

	test.Tap(v.pauseButton)
	assert.False(t, v.refresher.Running())
	clk.Advance(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "00:01:500", v.timeLabel.Text)

	// 再次开始时刷新循环重新启动
	test.Tap(v.startButton)
	assert.True(t, v.refresher.Running())
	clk.Advance(250 * time.Millisecond)
	assert.Eventually(t, func() bool {
		return v.timeLabel.Text == "00:01:750"
	}, 2*time.Second, time.Millisecond)
}
