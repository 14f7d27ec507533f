// Package config loads equalizer presets and render settings for the
// command-line tools from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/eq"
)

// EnvPrefix prefixes environment overrides, e.g. ALGOEQ_EQ_PEAK_GAIN_DB.
const EnvPrefix = "ALGOEQ"

// ErrInvalid wraps every validation failure of a loaded configuration.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is everything eqrender reads from a preset file and the
// environment.
type Config struct {
	EQ     EQConfig     `mapstructure:"eq"`
	Render RenderConfig `mapstructure:"render"`
	Log    LogConfig    `mapstructure:"log"`
}

// EQConfig is a preset. Slopes accept "24", "24dB" or "24 dB/Oct".
type EQConfig struct {
	PeakFreq     float64 `mapstructure:"peak_freq"`
	PeakGainDB   float64 `mapstructure:"peak_gain_db"`
	PeakQ        float64 `mapstructure:"peak_q"`
	LowCutFreq   float64 `mapstructure:"low_cut_freq"`
	LowCutSlope  string  `mapstructure:"low_cut_slope"`
	HighCutFreq  float64 `mapstructure:"high_cut_freq"`
	HighCutSlope string  `mapstructure:"high_cut_slope"`
}

// RenderConfig controls offline rendering. BlockSize is the largest block
// handed to the processor.
type RenderConfig struct {
	BlockSize int `mapstructure:"block_size"`
}

// LogConfig selects the log level and format. A non-empty File also writes
// a rotated log file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"`
}

// Load reads path (YAML, TOML or JSON by extension) over the defaults and
// applies environment overrides. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper) {
	p := eq.DefaultParams()

	v.SetDefault("eq.peak_freq", p.PeakFreq)
	v.SetDefault("eq.peak_gain_db", p.PeakGainDB)
	v.SetDefault("eq.peak_q", p.PeakQ)
	v.SetDefault("eq.low_cut_freq", p.LowCutFreq)
	v.SetDefault("eq.low_cut_slope", p.LowCutSlope.String())
	v.SetDefault("eq.high_cut_freq", p.HighCutFreq)
	v.SetDefault("eq.high_cut_slope", p.HighCutSlope.String())

	v.SetDefault("render.block_size", core.DefaultProcessorConfig().BlockSize)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
}

// Validate checks the preset and render settings.
func (c *Config) Validate() error {
	if _, err := c.EQ.Params(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.Render.BlockSize <= 0 {
		return fmt.Errorf("%w: render.block_size %d", ErrInvalid, c.Render.BlockSize)
	}

	return nil
}

// Params converts the preset into validated equalizer parameters.
func (e EQConfig) Params() (eq.Params, error) {
	low, err := eq.ParseSlope(e.LowCutSlope)
	if err != nil {
		return eq.Params{}, fmt.Errorf("eq.low_cut_slope: %w", err)
	}

	high, err := eq.ParseSlope(e.HighCutSlope)
	if err != nil {
		return eq.Params{}, fmt.Errorf("eq.high_cut_slope: %w", err)
	}

	p := eq.Params{
		PeakFreq:     e.PeakFreq,
		PeakGainDB:   e.PeakGainDB,
		PeakQ:        e.PeakQ,
		LowCutFreq:   e.LowCutFreq,
		HighCutFreq:  e.HighCutFreq,
		LowCutSlope:  low,
		HighCutSlope: high,
	}

	return p, p.Validate()
}

// FromParams builds a preset from p.
func FromParams(p eq.Params) EQConfig {
	return EQConfig{
		PeakFreq:     p.PeakFreq,
		PeakGainDB:   p.PeakGainDB,
		PeakQ:        p.PeakQ,
		LowCutFreq:   p.LowCutFreq,
		LowCutSlope:  p.LowCutSlope.String(),
		HighCutFreq:  p.HighCutFreq,
		HighCutSlope: p.HighCutSlope.String(),
	}
}

// SavePreset writes p to path; the format follows the file extension.
func SavePreset(path string, p eq.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e := FromParams(p)
	v := viper.New()
	v.Set("eq.peak_freq", e.PeakFreq)
	v.Set("eq.peak_gain_db", e.PeakGainDB)
	v.Set("eq.peak_q", e.PeakQ)
	v.Set("eq.low_cut_freq", e.LowCutFreq)
	v.Set("eq.low_cut_slope", e.LowCutSlope)
	v.Set("eq.high_cut_freq", e.HighCutFreq)
	v.Set("eq.high_cut_slope", e.HighCutSlope)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}
