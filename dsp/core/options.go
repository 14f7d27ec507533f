package core

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by [ProcessorConfig.Validate].
var ErrInvalidConfig = errors.New("core: invalid processor config")

// ProcessorConfig defines the stream format a processor is prepared for.
// BlockSize is the largest block the host will deliver.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the format used before the host prepares
// a processor.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate. Non-positive values are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum block size. Non-positive values are ignored.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate reports whether the config describes a usable stream.
func (cfg ProcessorConfig) Validate() error {
	if !IsFinite(cfg.SampleRate) || cfg.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	}

	if cfg.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, cfg.BlockSize)
	}

	return nil
}
