package main

import (
	"Stopwatch/internal/clock"
	"Stopwatch/internal/config"
	"Stopwatch/internal/logging"
	"Stopwatch/internal/models"
	"Stopwatch/internal/sound"
	"Stopwatch/internal/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置管理器
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatal(err)
	}
	defer configManager.Close()

	cfg := configManager.GetConfig()
	if err := logging.Setup(cfg.Log); err != nil {
		log.WithField("error", err).Warn("Falling back to info logging")
	}

	log.WithFields(log.Fields{
		"version": cfg.App.Version,
		"config":  configManager.Path(),
	}).Info("Starting stopwatch")

	player, err := sound.NewPlayer(cfg.Sound)
	if err != nil {
		log.WithField("error", err).Warn("Sound disabled")
		player = sound.Nop{}
	}

	// 创建应用
	myApp := app.NewWithID("io.github.stopwatch")

	// 创建主窗口
	mainWindow := ui.NewMainWindow(myApp, configManager, models.NewStopwatch(clock.System), player)

	// 配置文件修改后在界面线程中生效
	err = configManager.WatchConfig(func(changed config.Config) {
		if err := logging.Setup(changed.Log); err != nil {
			log.WithField("error", err).Warn("Invalid log level")
		}
		fyne.Do(func() {
			mainWindow.ApplyConfig(changed)
		})
	})
	if err != nil {
		log.WithField("error", err).Warn("Config changes will not be applied live")
	}

	mainWindow.Show()
	log.Info("Stopwatch closed")
}
