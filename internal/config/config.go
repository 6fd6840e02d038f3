package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Display DisplayConfig `yaml:"display"`
	Sound   SoundConfig   `yaml:"sound"`
	Log     LogConfig     `yaml:"log"`
}

type AppConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
}

type DisplayConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	FontSize        int           `yaml:"font_size"`
	DarkMode        bool          `yaml:"dark_mode"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // beep effects.Volume 的指数，0 为原始音量
	File    string  `yaml:"file"`   // 可选的 WAV 文件，留空则使用合成提示音
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	MinRefreshInterval = time.Millisecond
	MaxRefreshInterval = 10 * time.Millisecond

	// effects.Volume 以 2 为底：-8 几乎静音，1 为两倍音量
	MinVolume = -8.0
	MaxVolume = 1.0

	minWindowWidth  = 200
	minWindowHeight = 120
)

// 默认配置
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:         "Stopwatch",
			Version:      "1.0.0",
			WindowWidth:  650,
			WindowHeight: 300,
		},
		Display: DisplayConfig{
			RefreshInterval: MaxRefreshInterval,
			FontSize:        64,
			DarkMode:        true,
		},
		Sound: SoundConfig{
			Enabled: false,
			Volume:  0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate 把越界的配置项修正为可用值
func (c *Config) Validate() {
	def := DefaultConfig()

	// 刷新间隔不能粗于 10ms
	switch {
	case c.Display.RefreshInterval <= 0:
		c.Display.RefreshInterval = def.Display.RefreshInterval
	case c.Display.RefreshInterval < MinRefreshInterval:
		c.Display.RefreshInterval = MinRefreshInterval
	case c.Display.RefreshInterval > MaxRefreshInterval:
		c.Display.RefreshInterval = MaxRefreshInterval
	}

	if c.Display.FontSize <= 0 {
		c.Display.FontSize = def.Display.FontSize
	}
	if c.App.WindowWidth < minWindowWidth || c.App.WindowHeight < minWindowHeight {
		c.App.WindowWidth = def.App.WindowWidth
		c.App.WindowHeight = def.App.WindowHeight
	}
	if c.App.Name == "" {
		c.App.Name = def.App.Name
	}
	if c.Sound.Volume < MinVolume {
		c.Sound.Volume = MinVolume
	}
	if c.Sound.Volume > MaxVolume {
		c.Sound.Volume = MaxVolume
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		c.Log.Level = def.Log.Level
	}
}

type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
	watcher    *fsnotify.Watcher
}

// NewManager 使用 ~/.stopwatch/config.yaml
func NewManager() (*Manager, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}
	return NewManagerWithPath(filepath.Join(configDir, "config.yaml"))
}

// NewManagerWithPath 加载指定路径的配置，文件不存在或无法解析时写入默认配置
func NewManagerWithPath(configPath string) (*Manager, error) {
	manager := &Manager{
		configPath: configPath,
	}

	// 加载或创建配置
	if err := manager.loadConfig(); err != nil {
		log.WithFields(log.Fields{
			"path":  configPath,
			"error": err,
		}).Info("Using default configuration")

		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return errors.Wrap(err, "read config")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return errors.Wrapf(err, "parse config %s", m.configPath)
	}
	config.Validate()

	m.mu.Lock()
	m.config = config
	m.mu.Unlock()
	return nil
}

func (m *Manager) SaveConfig() error {
	m.mu.RLock()
	data, err := yaml.Marshal(m.config)
	m.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	// 确保配置目录存在
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrapf(err, "create config dir %s", configDir)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return errors.Wrapf(err, "write config %s", m.configPath)
	}
	return nil
}

// GetConfig 返回当前配置的副本
func (m *Manager) GetConfig() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// 获取配置文件目录
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "locate home directory")
	}
	return filepath.Join(homeDir, ".stopwatch"), nil
}

// 更新配置的便捷方法
func (m *Manager) UpdateDisplayConfig(config DisplayConfig) error {
	m.mu.Lock()
	m.config.Display = config
	m.config.Validate()
	m.mu.Unlock()
	return m.SaveConfig()
}

func (m *Manager) UpdateSoundConfig(config SoundConfig) error {
	m.mu.Lock()
	m.config.Sound = config
	m.config.Validate()
	m.mu.Unlock()
	return m.SaveConfig()
}

// 监听配置变化
type ConfigChangeCallback func(Config)

// WatchConfig 监听配置文件，文件被写入或替换后重新加载并回调。
// 回调在监听 goroutine 中执行。
func (m *Manager) WatchConfig(callback ConfigChangeCallback) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create config watcher")
	}
	// 监听目录而不是文件：编辑器保存时常常是先删除再重建
	if err := watcher.Add(filepath.Dir(m.configPath)); err != nil {
		watcher.Close()
		return errors.Wrapf(err, "watch %s", filepath.Dir(m.configPath))
	}

	m.mu.Lock()
	m.watcher = watcher
	m.mu.Unlock()

	go m.watch(watcher, callback)
	return nil
}

func (m *Manager) watch(watcher *fsnotify.Watcher, callback ConfigChangeCallback) {
	target := filepath.Clean(m.configPath)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := m.loadConfig(); err != nil {
				log.WithFields(log.Fields{
					"path":  target,
					"error": err,
				}).Warn("Ignoring config change")
				continue
			}
			if callback != nil {
				callback(m.GetConfig())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithField("error", err).Warn("Config watcher error")
		}
	}
}

// Close 停止配置监听
func (m *Manager) Close() error {
	m.mu.Lock()
	watcher := m.watcher
	m.watcher = nil
	m.mu.Unlock()

	if watcher == nil {
		return nil
	}
	return watcher.Close()
}
