package models

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration 将时长转换为 MM:SS:mmm 显示格式。
// 分钟字段至少两位，超过 99 分钟时直接加宽，不回绕也不截断。
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := int64(d / time.Millisecond)
	minutes := ms / 60000
	seconds := (ms / 1000) % 60
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%03d", minutes, seconds, millis)
}

// time.Duration 能表示的最大整秒数
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// FormatSeconds 按秒（带小数）格式化：先四舍五入到微秒，再向下取整到毫秒。
// 这样 3599.999 这类十进制值不会因二进制浮点误差显示成 998 毫秒；
// 代价是距离毫秒边界不足 0.5 微秒的值会进到下一毫秒。
func FormatSeconds(t float64) string {
	if math.IsNaN(t) || t <= 0 {
		return FormatDuration(0)
	}
	if t > maxSeconds {
		t = maxSeconds
	}
	return FormatDuration(time.Duration(math.Round(t*1e6)) * time.Microsecond)
}
