package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/github/selective-mcp-server/pkg/toolfilter"
)

// Config holds every setting read from flags, environment and config file.
type Config struct {
	ErrorBehavior            toolfilter.ErrorBehavior `mapstructure:"error-behavior"`
	LogLevel                 string                   `mapstructure:"log-level"`
	LogFile                  string                   `mapstructure:"log-file"`
	Tools                    string                   `mapstructure:"tools"`
	Toolsets                 []string                 `mapstructure:"toolsets"`
	Address                  string                   `mapstructure:"address"`
	BasePath                 string                   `mapstructure:"base-path"`
	EnableMetrics            bool                     `mapstructure:"enable-metrics"`
	SelectionCacheTTL        time.Duration            `mapstructure:"selection-cache-ttl"`
	SelectionCacheMaxEntries int                      `mapstructure:"selection-cache-max-entries"`
}

// errorBehaviorHook decodes error-behavior strings into toolfilter.ErrorBehavior.
func errorBehaviorHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(toolfilter.Ignore)
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target || from.Kind() != reflect.String {
			return data, nil
		}
		return toolfilter.ParseErrorBehavior(data.(string))
	}
}

// loadConfig decodes the current viper state into a Config.
func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		errorBehaviorHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	for i, ts := range cfg.Toolsets {
		cfg.Toolsets[i] = strings.TrimSpace(ts)
	}
	return cfg, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", level)
	}
	return l, nil
}

// newLogger writes text logs to the configured file, or to stderr. The
// returned closer releases the file.
func newLogger(cfg Config) (*slog.Logger, io.Closer, error) {
	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}
