package ui

import (
	"Stopwatch/internal/config"
	"Stopwatch/internal/models"
	"Stopwatch/internal/sound"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

// StopwatchView 秒表界面：显示屏、三个控制按钮和刷新循环。
// 它是唯一持有控件引用的地方，秒表本身不知道界面的存在。
type StopwatchView struct {
	stopwatch *models.Stopwatch
	player    sound.Player
	refresher *Refresher

	// UI 组件
	container   *fyne.Container
	timeLabel   *canvas.Text
	startButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button
}

// NewStopwatchView 创建秒表界面
func NewStopwatchView(sw *models.Stopwatch, player sound.Player, display config.DisplayConfig) *StopwatchView {
	if player == nil {
		player = sound.Nop{}
	}
	v := &StopwatchView{
		stopwatch: sw,
		player:    player,
	}

	// 刷新循环在自己的 goroutine 中运行，重绘交回界面线程执行
	v.refresher = NewRefresher(display.RefreshInterval, func() {
		fyne.Do(v.refreshDisplay)
	})

	v.timeLabel = canvas.NewText(models.FormatDuration(sw.Elapsed()), displayFgColor)
	v.timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	v.timeLabel.TextSize = float32(display.FontSize)
	v.timeLabel.Alignment = fyne.TextAlignCenter

	displayBg := canvas.NewRectangle(displayBgColor)
	displayBg.StrokeColor = displayEdgeColor
	displayBg.StrokeWidth = 4
	displayBg.CornerRadius = 6

	v.startButton = widget.NewButtonWithIcon("START", theme.MediaPlayIcon(), v.start)
	v.startButton.Importance = widget.SuccessImportance

	v.pauseButton = widget.NewButtonWithIcon("PAUSE", theme.MediaPauseIcon(), v.pause)
	v.pauseButton.Importance = widget.WarningImportance

	v.resetButton = widget.NewButtonWithIcon("RESET", theme.MediaReplayIcon(), v.reset)
	v.resetButton.Importance = widget.DangerImportance

	footer := canvas.NewText("⏱ STOPWATCH", footerColor)
	footer.TextSize = 10
	footer.Alignment = fyne.TextAlignCenter

	// 显示屏：背景在下，时间文字在上
	screen := container.NewStack(
		displayBg,
		container.NewPadded(v.timeLabel),
	)

	// 三个按钮等宽排列
	controls := container.NewGridWithColumns(3,
		v.startButton,
		v.pauseButton,
		v.resetButton,
	)

	v.container = container.NewPadded(container.NewVBox(
		screen,
		layout.NewSpacer(),
		controls,
		footer,
	))

	v.updateControls()
	return v
}

// Container 返回界面的根容器
func (v *StopwatchView) Container() *fyne.Container {
	return v.container
}

// 开始计时：切换状态后启动刷新循环
func (v *StopwatchView) start() {
	from := v.stopwatch.State()
	v.stopwatch.Start()
	v.transition(from)
	v.refresher.Start()
}

func (v *StopwatchView) pause() {
	from := v.stopwatch.State()
	v.refresher.Stop()
	v.stopwatch.Pause()
	v.transition(from)
}

func (v *StopwatchView) reset() {
	from := v.stopwatch.State()
	v.refresher.Stop()
	v.stopwatch.Reset()
	v.transition(from)
}

func (v *StopwatchView) transition(from models.TimerState) {
	to := v.stopwatch.State()
	if from != to {
		log.WithFields(log.Fields{
			"from":    from.String(),
			"to":      to.String(),
			"elapsed": v.stopwatch.Elapsed(),
		}).Debug("Stopwatch state changed")
		v.player.Play(to)
	}
	v.refreshDisplay()
	v.updateControls()
}

// refreshDisplay 按当前累计时间重绘显示屏
func (v *StopwatchView) refreshDisplay() {
	text := models.FormatDuration(v.stopwatch.Elapsed())
	if v.timeLabel.Text == text {
		return
	}
	v.timeLabel.Text = text
	v.timeLabel.Refresh()
}

// updateControls 开始按钮在非运行时可用，暂停按钮只在运行时可用
func (v *StopwatchView) updateControls() {
	if v.stopwatch.CanStart() {
		v.startButton.Enable()
	} else {
		v.startButton.Disable()
	}
	if v.stopwatch.CanPause() {
		v.pauseButton.Enable()
	} else {
		v.pauseButton.Disable()
	}
}

// ApplyDisplay 应用显示相关配置
func (v *StopwatchView) ApplyDisplay(display config.DisplayConfig) {
	v.refresher.SetInterval(display.RefreshInterval)
	if size := float32(display.FontSize); size > 0 && size != v.timeLabel.TextSize {
		v.timeLabel.TextSize = size
		v.timeLabel.Refresh()
	}
}

// SetPlayer 替换提示音播放器
func (v *StopwatchView) SetPlayer(player sound.Player) {
	if player == nil {
		player = sound.Nop{}
	}
	v.player = player
}

// Close 停止刷新循环
func (v *StopwatchView) Close() {
	v.refresher.Stop()
}
