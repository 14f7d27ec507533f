// Package logging builds the zerolog loggers used by the command-line tools
// and the parameter controller.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidLevel is returned for unknown level names.
var ErrInvalidLevel = errors.New("logging: invalid level")

// Config selects level, format and destinations.
type Config struct {
	Level  string
	JSON   bool      // JSON lines instead of the console format
	Out    io.Writer // console destination, os.Stderr when nil
	Caller bool

	// File enables a size-rotated log file in addition to the console.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs info and above to stderr in console format.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// Logger is a zerolog.Logger that owns its rotated file, if any.
type Logger struct {
	zerolog.Logger

	file *lumberjack.Logger
}

// ParseLevel maps a case-insensitive level name to a zerolog level. The
// empty string means info.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
	}

	return level, nil
}

// New builds a logger from cfg.
func New(cfg Config) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	if !cfg.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    true,
			TimeFormat: "15:04:05",
			FormatLevel: func(i any) string {
				return strings.ToUpper(fmt.Sprintf("%-5s", i))
			},
		}
	}

	l := &Logger{}
	writers := []io.Writer{out}

	if cfg.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, l.file)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp()

	if cfg.Caller {
		ctx = ctx.Caller()
	}

	l.Logger = ctx.Logger()

	return l, nil
}

// Close closes the log file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}
