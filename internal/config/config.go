package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tickflip/internal/audio"
	"tickflip/internal/core/timer"
	"tickflip/internal/logger"
)

const (
	fileName  = "config"
	envPrefix = "TICKFLIP"
)

// AudioConfig configures the output device.
type AudioConfig struct {
	SampleRate int           `mapstructure:"sample_rate"`
	BufferSize time.Duration `mapstructure:"buffer_size"`
}

// Config holds runtime options that are not user preferences.
type Config struct {
	LogLevel       string        `mapstructure:"log_level"`
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	DefaultMinutes int           `mapstructure:"default_minutes"`
	Audio          AudioConfig   `mapstructure:"audio"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:       logger.InfoLevel,
		TickInterval:   time.Second,
		DefaultMinutes: timer.DefaultMinutes,
		Audio: AudioConfig{
			SampleRate: audio.DefaultSampleRate,
			BufferSize: audio.DefaultBufferSize,
		},
	}
}

// Load reads config.yaml from dir when present and applies TICKFLIP_*
// environment overrides, e.g. TICKFLIP_AUDIO_SAMPLE_RATE.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Default(), fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("tick_interval", defaults.TickInterval)
	v.SetDefault("default_minutes", defaults.DefaultMinutes)
	v.SetDefault("audio.sample_rate", defaults.Audio.SampleRate)
	v.SetDefault("audio.buffer_size", defaults.Audio.BufferSize)
}

func (cfg *Config) normalize() {
	defaults := Default()
	if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaults.TickInterval
	}
	if cfg.TickInterval < timer.MinTickInterval {
		cfg.TickInterval = timer.MinTickInterval
	}
	cfg.DefaultMinutes = timer.ClampMinutes(cfg.DefaultMinutes)
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = defaults.Audio.SampleRate
	}
	if cfg.Audio.BufferSize <= 0 {
		cfg.Audio.BufferSize = defaults.Audio.BufferSize
	}
}
