package logging

import (
	"os"

	"Stopwatch/internal/config"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Setup 按配置设置全局 logrus 的级别和输出格式，级别无效时退回 info
func Setup(cfg config.LogConfig) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return errors.Wrapf(err, "log level %q", cfg.Level)
	}
	log.SetLevel(level)
	return nil
}
