// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Host != "localhost" || cfg.Server.Port != "1234" {
		t.Errorf("default server = %s:%s", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("default theme = %q", cfg.UI.Theme)
	}
	if !cfg.UI.Markdown {
		t.Error("markdown not enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
host = "192.168.1.10"
port = "8080"
default_model = "llama-3.2-3b"

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Host != "192.168.1.10" || cfg.Server.Port != "8080" {
		t.Errorf("server = %s:%s", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.DefaultModel != "llama-3.2-3b" {
		t.Errorf("default_model = %q", cfg.Server.DefaultModel)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nhost = \"myhost\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Host != "myhost" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != "1234" {
		t.Errorf("port = %q, want default", cfg.Server.Port)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("theme = %q, want default", cfg.UI.Theme)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_HOST", "envhost")
	t.Setenv("PARLEY_PORT", "9999")
	t.Setenv("PARLEY_MODEL", "envmodel")
	t.Setenv("PARLEY_THEME", "dark")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Host != "envhost" || cfg.Server.Port != "9999" {
		t.Errorf("server = %s:%s", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.DefaultModel != "envmodel" {
		t.Errorf("model = %q", cfg.Server.DefaultModel)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, true},
		{"non-numeric port", func(c *Config) { c.Server.Port = "http" }, true},
		{"port too large", func(c *Config) { c.Server.Port = "70000" }, true},
		{"port zero", func(c *Config) { c.Server.Port = "0" }, true},
		{"empty host", func(c *Config) { c.Server.Host = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.Host = "box"
	cfg.Server.DefaultModel = "qwen2.5"
	cfg.UI.Theme = "dark"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Server.Host != "box" || loaded.Server.DefaultModel != "qwen2.5" || loaded.UI.Theme != "dark" {
		t.Errorf("loaded = %+v", loaded)
	}
}
