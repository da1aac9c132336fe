package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBackupExt   = ".chzback"
	DefaultSettleDelay = 2 * time.Second
	SaveExt            = ".hoi4"
)

// Compression values.
const (
	CompressionNone = "none"
	CompressionLZ4  = "lz4"
	CompressionZstd = "zstd"
)

var (
	ErrNotSaveFile        = errors.New("save path must end in " + SaveExt)
	ErrUnknownCompression = errors.New("unknown compression")
)

// Config holds the settings for the watcher and backup store.
type Config struct {
	SavePath    string        `yaml:"save_path"`
	BackupExt   string        `yaml:"backup_ext"`
	Compression string        `yaml:"compression"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BackupExt:   DefaultBackupExt,
		Compression: CompressionNone,
		SettleDelay: DefaultSettleDelay,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load layers defaults, the file at path (if any) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".ini":
		f, err := ini.Load(path)
		if err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		sec := f.Section("")
		c.SavePath = sec.Key("save_path").MustString(c.SavePath)
		c.BackupExt = sec.Key("backup_ext").MustString(c.BackupExt)
		c.Compression = sec.Key("compression").MustString(c.Compression)
		c.SettleDelay = sec.Key("settle_delay").MustDuration(c.SettleDelay)
		c.LogLevel = sec.Key("log_level").MustString(c.LogLevel)
		c.LogFormat = sec.Key("log_format").MustString(c.LogFormat)
	default:
		return fmt.Errorf("config %s: unsupported format", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.SavePath = getEnv("HOI4SAVE_SAVE_PATH", c.SavePath)
	c.Compression = getEnv("HOI4SAVE_COMPRESSION", c.Compression)
	c.LogLevel = getEnv("HOI4SAVE_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("HOI4SAVE_LOG_FORMAT", c.LogFormat)
}

// Validate checks the settings needed to watch and back up a save.
func (c Config) Validate() error {
	if !strings.HasSuffix(c.SavePath, SaveExt) {
		return fmt.Errorf("%w: %q", ErrNotSaveFile, c.SavePath)
	}
	switch c.Compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCompression, c.Compression)
	}
	if c.BackupExt == "" || !strings.HasPrefix(c.BackupExt, ".") {
		return fmt.Errorf("backup extension %q must start with a dot", c.BackupExt)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle delay %v is negative", c.SettleDelay)
	}
	return nil
}

// Logger builds the process logger from LogLevel and LogFormat.
func (c Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLogLevel(c.LogLevel)}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
