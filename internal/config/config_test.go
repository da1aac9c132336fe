package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BackupExt != DefaultBackupExt || cfg.Compression != CompressionNone || cfg.SettleDelay != DefaultSettleDelay {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "hoi4save.yaml", `
save_path: /games/save games/autosave.hoi4
compression: zstd
settle_delay: 500ms
log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SavePath != "/games/save games/autosave.hoi4" {
		t.Errorf("SavePath = %q", cfg.SavePath)
	}
	if cfg.Compression != CompressionZstd {
		t.Errorf("Compression = %q", cfg.Compression)
	}
	if cfg.SettleDelay != 500*time.Millisecond {
		t.Errorf("SettleDelay = %v", cfg.SettleDelay)
	}
	if cfg.BackupExt != DefaultBackupExt {
		t.Errorf("BackupExt = %q, want default", cfg.BackupExt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_INI(t *testing.T) {
	path := writeFile(t, "hoi4save.ini", `
save_path = C:\Users\me\Documents\saves\germany.hoi4
compression = lz4
backup_ext = .bak
settle_delay = 3s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SavePath != `C:\Users\me\Documents\saves\germany.hoi4` {
		t.Errorf("SavePath = %q", cfg.SavePath)
	}
	if cfg.Compression != CompressionLZ4 || cfg.BackupExt != ".bak" || cfg.SettleDelay != 3*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "hoi4save.yaml", "save_path: a.hoi4\nlog_level: warn\n")
	t.Setenv("HOI4SAVE_SAVE_PATH", "b.hoi4")
	t.Setenv("HOI4SAVE_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SavePath != "b.hoi4" || cfg.LogLevel != "error" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(writeFile(t, "cfg.toml", "x = 1")); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := Load(writeFile(t, "cfg.yaml", "save_path: [")); err == nil {
		t.Error("expected error for bad yaml")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	base := Default()
	base.SavePath = "autosave.hoi4"

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"ok", func(*Config) {}, nil},
		{"wrong extension", func(c *Config) { c.SavePath = "autosave.sav" }, ErrNotSaveFile},
		{"empty path", func(c *Config) { c.SavePath = "" }, ErrNotSaveFile},
		{"compression", func(c *Config) { c.Compression = "gzip" }, ErrUnknownCompression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	cfg := base
	cfg.SettleDelay = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative settle delay")
	}
	cfg = base
	cfg.BackupExt = "chzback"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for extension without dot")
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel("debug") != slog.LevelDebug || ParseLogLevel("bogus") != slog.LevelInfo {
		t.Error("unexpected log level mapping")
	}
}
