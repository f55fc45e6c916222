package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/MatusOllah/slogcolor"
)

// LogConfig is the kong-embeddable logging configuration shared by the
// castkit executables.
type LogConfig struct {
	Level  string `short:"v" help:"Log level" default:"info" enum:"debug,info,warn,error"`
	Format string `help:"Log format (color, text, json)" default:"color"`
	Quiet  bool   `help:"Disable logging output"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// CreateLoggerFromConfig builds a slog logger for the given configuration.
func CreateLoggerFromConfig(config LogConfig) (*slog.Logger, error) {
	levelName := strings.ToLower(strings.TrimSpace(config.Level))
	if levelName == "" {
		return nil, errors.New("log level is required")
	}

	level, ok := logLevels[levelName]
	if !ok {
		return nil, fmt.Errorf("unknown log level: %s", config.Level)
	}

	output := io.Writer(os.Stderr)
	if config.Quiet {
		output = io.Discard
	}

	switch strings.ToLower(strings.TrimSpace(config.Format)) {
	case "":
		return nil, errors.New("log format is required")
	case "text":
		return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})), nil
	case "json":
		return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})), nil
	case "color":
		options := slogcolor.DefaultOptions
		options.Level = level
		return slog.New(slogcolor.NewHandler(output, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", config.Format)
	}
}

// SetupLogging installs the configured logger as the process default.
func SetupLogging(config LogConfig) error {
	logger, err := CreateLoggerFromConfig(config)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	slog.SetDefault(logger)

	return nil
}
