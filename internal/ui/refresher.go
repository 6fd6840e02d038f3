package ui

import (
	"sync"
	"time"
)

// Refresher 以固定间隔重复执行 tick，直到被 Stop。
// Start/Stop 都是幂等的，可以反复启停。
type Refresher struct {
	mu       sync.Mutex
	interval time.Duration
	tick     func()
	stop     chan struct{}
}

func NewRefresher(interval time.Duration, tick func()) *Refresher {
	return &Refresher{
		interval: interval,
		tick:     tick,
	}
}

// Start 启动刷新循环；已在运行时不做任何事
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startLocked()
}

func (r *Refresher) startLocked() {
	if r.stop != nil {
		return
	}
	r.stop = make(chan struct{})
	go r.loop(r.interval, r.stop)
}

// Stop 取消刷新循环。已经发出的 tick 可能仍会执行一次。
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Refresher) stopLocked() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	r.stop = nil
}

func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stop != nil
}

func (r *Refresher) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// SetInterval 修改刷新间隔，正在运行时立即按新间隔重新启动
func (r *Refresher) SetInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d <= 0 || d == r.interval {
		return
	}
	r.interval = d
	if r.stop != nil {
		r.stopLocked()
		r.startLocked()
	}
}

func (r *Refresher) loop(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			// ticker 与 stop 同时就绪时优先退出
			select {
			case <-stop:
				return
			default:
			}
			if r.tick != nil {
				r.tick()
			}
		}
	}
}
