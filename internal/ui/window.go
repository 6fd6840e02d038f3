package ui

import (
	"strconv"
	"time"

	"Stopwatch/internal/config"
	"Stopwatch/internal/models"
	"Stopwatch/internal/sound"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type MainWindow struct {
	app            fyne.App
	window         fyne.Window
	view           *StopwatchView
	configManager  *config.Manager
	settingsButton *widget.Button
	sound          config.SoundConfig
	newPlayer      func(config.SoundConfig) (sound.Player, error)
}

func NewMainWindow(app fyne.App, configManager *config.Manager, sw *models.Stopwatch, player sound.Player) *MainWindow {
	cfg := configManager.GetConfig()
	w := &MainWindow{
		app:           app,
		window:        app.NewWindow(cfg.App.Name),
		view:          NewStopwatchView(sw, player, cfg.Display),
		configManager: configManager,
		sound:         cfg.Sound,
		newPlayer:     sound.NewPlayer,
	}
	w.setup(cfg)
	return w
}

func (w *MainWindow) SetSize(width, height float32) {
	w.window.Resize(fyne.NewSize(width, height))
}

func (w *MainWindow) setup(cfg config.Config) {
	w.app.Settings().SetTheme(newStopwatchTheme(cfg.Display.DarkMode))

	w.settingsButton = widget.NewButtonWithIcon("", theme.SettingsIcon(), w.showSettings)
	w.settingsButton.Importance = widget.LowImportance

	// 设置按钮放在右下角
	bottomBar := container.NewHBox(layout.NewSpacer(), w.settingsButton)
	w.window.SetContent(container.NewBorder(nil, bottomBar, nil, nil, w.view.Container()))
	w.window.SetFixedSize(true)
	w.SetSize(float32(cfg.App.WindowWidth), float32(cfg.App.WindowHeight))

	// 关闭窗口时停止刷新循环
	w.window.SetOnClosed(w.view.Close)
}

// ApplyConfig 应用运行时修改的配置，必须在界面线程调用
func (w *MainWindow) ApplyConfig(cfg config.Config) {
	w.app.Settings().SetTheme(newStopwatchTheme(cfg.Display.DarkMode))
	w.view.ApplyDisplay(cfg.Display)

	if cfg.Sound == w.sound {
		return
	}
	previous := w.sound
	w.sound = cfg.Sound

	// 只改了音量时直接调整当前播放器，不重新生成音频
	if previous.Enabled == cfg.Sound.Enabled && previous.File == cfg.Sound.File {
		if player, ok := w.view.player.(*sound.BeepPlayer); ok {
			player.SetVolume(cfg.Sound.Volume)
			return
		}
	}

	player, err := w.newPlayer(cfg.Sound)
	if err != nil {
		log.WithField("error", err).Warn("Sound disabled")
		player = sound.Nop{}
	}
	w.view.SetPlayer(player)
}

// settingsForm 设置窗口中用户输入的原始值
type settingsForm struct {
	refreshMillis string
	fontSize      string
	darkMode      bool
	soundEnabled  bool
	volume        string
}

// saveSettings 校验输入，保存到配置文件并立即生效
func (w *MainWindow) saveSettings(form settingsForm) error {
	refresh, err := strconv.Atoi(form.refreshMillis)
	if err != nil {
		return errors.Wrap(err, "refresh interval")
	}
	fontSize, err := strconv.Atoi(form.fontSize)
	if err != nil {
		return errors.Wrap(err, "font size")
	}
	volume, err := strconv.ParseFloat(form.volume, 64)
	if err != nil {
		return errors.Wrap(err, "volume")
	}

	cfg := w.configManager.GetConfig()

	display := cfg.Display
	display.RefreshInterval = time.Duration(refresh) * time.Millisecond
	display.FontSize = fontSize
	display.DarkMode = form.darkMode
	if err := w.configManager.UpdateDisplayConfig(display); err != nil {
		return err
	}

	soundCfg := cfg.Sound
	soundCfg.Enabled = form.soundEnabled
	soundCfg.Volume = volume
	if err := w.configManager.UpdateSoundConfig(soundCfg); err != nil {
		return err
	}

	w.ApplyConfig(w.configManager.GetConfig())
	return nil
}

// showSettings 显示设置窗口
func (w *MainWindow) showSettings() {
	cfg := w.configManager.GetConfig()
	sw := w.app.NewWindow("Settings")

	refreshEntry := widget.NewEntry()
	refreshEntry.SetText(strconv.Itoa(int(cfg.Display.RefreshInterval / time.Millisecond)))

	fontEntry := widget.NewEntry()
	fontEntry.SetText(strconv.Itoa(cfg.Display.FontSize))

	darkCheck := widget.NewCheck("", nil)
	darkCheck.SetChecked(cfg.Display.DarkMode)

	soundCheck := widget.NewCheck("", nil)
	soundCheck.SetChecked(cfg.Sound.Enabled)

	volumeEntry := widget.NewEntry()
	volumeEntry.SetText(strconv.FormatFloat(cfg.Sound.Volume, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Refresh (ms)", Widget: refreshEntry},
			{Text: "Font size", Widget: fontEntry},
			{Text: "Dark mode", Widget: darkCheck},
			{Text: "Sound", Widget: soundCheck},
			{Text: "Volume", Widget: volumeEntry},
		},
		OnSubmit: func() {
			err := w.saveSettings(settingsForm{
				refreshMillis: refreshEntry.Text,
				fontSize:      fontEntry.Text,
				darkMode:      darkCheck.Checked,
				soundEnabled:  soundCheck.Checked,
				volume:        volumeEntry.Text,
			})
			if err != nil {
				log.WithField("error", err).Warn("Settings not saved")
				dialog.ShowError(err, sw)
				return
			}
			sw.Close()
		},
		OnCancel: sw.Close,
	}

	sw.SetContent(form)
	sw.Resize(fyne.NewSize(300, 240))
	sw.Show()
}

// Show 显示窗口并阻塞直到窗口关闭
func (w *MainWindow) Show() {
	w.window.ShowAndRun()
}
