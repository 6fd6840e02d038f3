package models

import (
	"context"
	"time"

	"Stopwatch/internal/clock"

	"github.com/looplab/fsm"
)

type TimerState int

const (
	StateIdle TimerState = iota
	StateRunning
	StatePaused
)

func (s TimerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

func parseState(name string) TimerState {
	switch name {
	case "running":
		return StateRunning
	case "paused":
		return StatePaused
	default:
		return StateIdle
	}
}

const (
	eventStart = "start"
	eventPause = "pause"
	eventReset = "reset"
)

// Stopwatch 秒表的核心状态：运行模式 + 已累计时间。
// 只能由一个 goroutine 使用（界面线程），不加锁。
type Stopwatch struct {
	machine      *fsm.FSM
	clock        clock.Clock
	accumulated  time.Duration // 已完成的运行段累计时长
	segmentStart time.Time     // 当前运行段的开始时间，仅在 running 时有意义
}

// NewStopwatch 创建一个处于 idle 状态、累计时间为 0 的秒表
func NewStopwatch(clk clock.Clock) *Stopwatch {
	if clk == nil {
		clk = clock.System
	}
	sw := &Stopwatch{clock: clk}

	sw.machine = fsm.NewFSM(
		StateIdle.String(),
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle.String(), StatePaused.String()}, Dst: StateRunning.String()},
			{Name: eventPause, Src: []string{StateRunning.String()}, Dst: StatePaused.String()},
			{Name: eventReset, Src: []string{StateIdle.String(), StateRunning.String(), StatePaused.String()}, Dst: StateIdle.String()},
		},
		fsm.Callbacks{
			"enter_" + StateRunning.String(): sw.onEnterRunning,
			"leave_" + StateRunning.String(): sw.onLeaveRunning,
		},
	)
	return sw
}

func (sw *Stopwatch) onEnterRunning(_ context.Context, _ *fsm.Event) {
	sw.segmentStart = sw.clock.Now()
}

// 离开 running（暂停或重置）时把当前运行段计入累计时间
func (sw *Stopwatch) onLeaveRunning(_ context.Context, _ *fsm.Event) {
	sw.accumulated += sw.segment()
	sw.segmentStart = time.Time{}
}

// segment 当前运行段的时长；时钟回拨时按 0 计
func (sw *Stopwatch) segment() time.Duration {
	d := sw.clock.Now().Sub(sw.segmentStart)
	if d < 0 {
		return 0
	}
	return d
}

func (sw *Stopwatch) fire(event string) {
	// 非法转换（running 时再次 start）返回 InvalidEventError，
	// idle 时 reset 返回 NoTransitionError，两者都是空操作
	_ = sw.machine.Event(context.Background(), event)
}

// Start 开始或继续计时；已在运行时不做任何事
func (sw *Stopwatch) Start() {
	sw.fire(eventStart)
}

// Pause 暂停计时；不在运行时不做任何事
func (sw *Stopwatch) Pause() {
	sw.fire(eventPause)
}

// Reset 停止并清零，任何状态下都有效
func (sw *Stopwatch) Reset() {
	sw.fire(eventReset)
	sw.accumulated = 0
	sw.segmentStart = time.Time{}
}

// State 返回当前运行模式
func (sw *Stopwatch) State() TimerState {
	return parseState(sw.machine.Current())
}

// Elapsed 返回总计时长，不修改任何状态
func (sw *Stopwatch) Elapsed() time.Duration {
	if sw.State() == StateRunning {
		return sw.accumulated + sw.segment()
	}
	return sw.accumulated
}

// ElapsedSeconds 以秒为单位返回 Elapsed
func (sw *Stopwatch) ElapsedSeconds() float64 {
	return sw.Elapsed().Seconds()
}

// CanStart 开始按钮是否可用
func (sw *Stopwatch) CanStart() bool {
	return sw.State() != StateRunning
}

// CanPause 暂停按钮是否可用
func (sw *Stopwatch) CanPause() bool {
	return sw.State() == StateRunning
}
