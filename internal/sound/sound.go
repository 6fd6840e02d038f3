package sound

import (
	"math"
	"os"
	"sync"
	"time"

	"Stopwatch/internal/config"
	"Stopwatch/internal/models"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// Player 在状态切换时给出提示音
type Player interface {
	Play(state models.TimerState)
}

// Nop 静音播放器
type Nop struct{}

func (Nop) Play(models.TimerState) {}

const (
	sampleRate beep.SampleRate = 44100
	clipLength                 = 60 * time.Millisecond
	amplitude                  = 0.4
)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// 每种状态对应的合成音高
var pitches = map[models.TimerState]float64{
	models.StateRunning: 880,
	models.StatePaused:  660,
	models.StateIdle:    440,
}

// 扬声器全局只能初始化一次
var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	return speakerErr
}

type BeepPlayer struct {
	mu     sync.Mutex
	volume float64
	clips  map[models.TimerState]*beep.Buffer
}

// NewPlayer 根据配置创建播放器；未启用时返回 Nop
func NewPlayer(cfg config.SoundConfig) (Player, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}

	clips, err := buildClips(cfg)
	if err != nil {
		return Nop{}, err
	}
	if err := initSpeaker(); err != nil {
		return Nop{}, errors.Wrap(err, "init speaker")
	}

	return &BeepPlayer{
		volume: cfg.Volume,
		clips:  clips,
	}, nil
}

// Play 播放指定状态的提示音，不阻塞
func (p *BeepPlayer) Play(state models.TimerState) {
	buffer, ok := p.clips[state]
	if !ok {
		return
	}

	p.mu.Lock()
	volume := p.volume
	p.mu.Unlock()

	speaker.Play(&effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   volume,
		Silent:   false,
	})
}

// SetVolume 调整音量，下一次播放生效
func (p *BeepPlayer) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = v
	p.mu.Unlock()
}

func (p *BeepPlayer) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func buildClips(cfg config.SoundConfig) (map[models.TimerState]*beep.Buffer, error) {
	clips := make(map[models.TimerState]*beep.Buffer, len(pitches))

	if cfg.File != "" {
		buffer, err := loadWAV(cfg.File)
		if err != nil {
			return nil, err
		}
		for state := range pitches {
			clips[state] = buffer
		}
		return clips, nil
	}

	for state, freq := range pitches {
		buffer := beep.NewBuffer(format)
		buffer.Append(tone(freq, clipLength))
		clips[state] = buffer
	}
	return clips, nil
}

// loadWAV 读取 WAV 文件到内存，采样率不同时重采样
func loadWAV(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sound file")
	}
	defer f.Close()

	streamer, fileFormat, err := wav.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if fileFormat.SampleRate != sampleRate {
		source = beep.Resample(4, fileFormat.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	return buffer, nil
}

// tone 生成一段带线性衰减的正弦波
func tone(freq float64, d time.Duration) beep.Streamer {
	total := sampleRate.N(d)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			envelope := 1 - float64(pos)/float64(total)
			v := amplitude * envelope * math.Sin(2*math.Pi*freq*float64(pos)/float64(sampleRate))
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
