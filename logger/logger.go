// Package logger configures zap for the engine's surrounding tooling: the
// realtime loop, the config watcher and the demo programs. The engine core
// itself never logs; observability hangs off the pushfsm.Observer seam.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format selects the console encoder style.
type Format string

const (
	// FormatConsole is a human-readable single-line format.
	FormatConsole Format = "console"
	// FormatJSON is structured JSON, one object per line.
	FormatJSON Format = "json"
)

// FileConfig enables an additional JSON sink with size-based rotation.
type FileConfig struct {
	// Path of the log file; parent directories must exist.
	Path string
	// MaxSizeMB rotates the file when it exceeds this size. 0 means the
	// rotation backend's default (100 MB).
	MaxSizeMB int
	// MaxBackups bounds the number of rotated files kept; 0 keeps all.
	MaxBackups int
	// MaxAgeDays removes rotated files older than this; 0 keeps all.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// Config selects level, format and an optional rotated file sink.
type Config struct {
	// Level is debug, info, warn, error or fatal, case-insensitive.
	// Anything else falls back to info.
	Level string
	// Format is the stdout encoder style; default console.
	Format Format
	// File, when set, adds a rotated JSON file sink on top of stdout.
	File *FileConfig
}

var (
	initOnce    sync.Once
	initialized bool
	globalLevel zap.AtomicLevel
)

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}

func encoderConfig(format Format) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == FormatConsole {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = timeEncoder
		cfg.ConsoleSeparator = " | "
	} else {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	return cfg
}

// New creates a logger from cfg. Invalid level or format values fall back
// to defaults rather than failing; logging setup should never stop a
// program from starting.
func New(cfg Config) *zap.Logger {
	return newWithLevel(cfg, zap.NewAtomicLevelAt(parseLevel(cfg.Level)))
}

func newWithLevel(cfg Config, level zap.AtomicLevel) *zap.Logger {
	var encoder zapcore.Encoder
	switch cfg.Format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig(FormatJSON))
	default:
		encoder = zapcore.NewConsoleEncoder(encoderConfig(FormatConsole))
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level),
	}
	if cfg.File != nil {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		// The file sink is always JSON; rotated logs are for machines.
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig(FormatJSON)),
			zapcore.AddSync(rotated),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// Initialize builds the global logger from cfg and installs it with
// zap.ReplaceGlobals. Only the first call takes effect.
func Initialize(cfg Config) {
	initOnce.Do(func() {
		globalLevel = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
		logger := newWithLevel(cfg, globalLevel)
		zap.ReplaceGlobals(logger)
		initialized = true
	})
}

// SetLevel adjusts the global logger's level at runtime.
func SetLevel(level string) {
	ensureInitialized()
	globalLevel.SetLevel(parseLevel(level))
}

// For returns a named sugared logger for one component, backed by the
// global logger.
func For(component string) *zap.SugaredLogger {
	ensureInitialized()
	return zap.S().Named(component)
}

// Sync flushes buffered entries on the global logger.
func Sync() error {
	ensureInitialized()
	return zap.L().Sync()
}

func ensureInitialized() {
	if !initialized {
		Initialize(Config{})
	}
}
