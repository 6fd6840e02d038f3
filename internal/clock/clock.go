package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock 秒表需要的时间来源；clockwork.Clock 与 clockwork.FakeClock 都满足该接口
type Clock interface {
	Now() time.Time
}

// System 使用系统时钟（含单调时钟读数）
var System Clock = clockwork.NewRealClock()
