package config

import (
	"log/slog"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// SlogLevel converts the level to its slog equivalent.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// ImageFormat is the encoding of the optimized page rendition.
type ImageFormat string

const (
	ImageFormatWebP ImageFormat = "webp"
	ImageFormatJPEG ImageFormat = "jpeg"
)

// Extension returns the file extension (without dot) written for the format.
func (f ImageFormat) Extension() string {
	if f == ImageFormatJPEG {
		return "jpg"
	}
	return "webp"
}

var imageFormatNormalizer = normalization.NewNormalizer(map[string]ImageFormat{
	"webp": ImageFormatWebP,
	"jpeg": ImageFormatJPEG,
	"jpg":  ImageFormatJPEG,
}, ImageFormatWebP)

// normalize canonicalizes enumerations in place. Unknown log settings fall
// back to defaults; an unknown image format is rejected because it changes
// the files a deployment links to.
func normalize(cfg *Config) error {
	cfg.Logging.Level = logLevelNormalizer.Normalize(string(cfg.Logging.Level))
	cfg.Logging.Format = logFormatNormalizer.Normalize(string(cfg.Logging.Format))

	format, err := imageFormatNormalizer.NormalizeStrict(string(cfg.Images.OptimizedFormat))
	if err != nil {
		return ferrors.ConfigError("images.optimized_format").WithCause(err).Build()
	}
	cfg.Images.OptimizedFormat = format
	return nil
}
