package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "info" || cfg.Log.Format != "auto" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Diagnostics.HistoryCapacity != 50 {
		t.Errorf("expected default capacity 50, got %d", cfg.Diagnostics.HistoryCapacity)
	}
	if cfg.Diagnostics.LongDisconnectThreshold != "30s" {
		t.Errorf("expected default threshold 30s, got %q", cfg.Diagnostics.LongDisconnectThreshold)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log:\n  level: debug\ndiagnostics:\n  history_capacity: 10\n  long_disconnect_threshold: 5s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
	if cfg.Diagnostics.HistoryCapacity != 10 {
		t.Errorf("expected capacity 10, got %d", cfg.Diagnostics.HistoryCapacity)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("NEXBASE_DIAGNOSTICS_HISTORY_CAPACITY", "7")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Diagnostics.HistoryCapacity != 7 {
		t.Errorf("env override ignored, got %d", cfg.Diagnostics.HistoryCapacity)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "diagnostics:\n  history_capacity: -1\n  long_disconnect_threshold: -5s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader().WithConfigFile(path).Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 errors (capacity, threshold), got %d: %v", len(verrs), verrs)
	}
}

func TestValidatorThresholdSyntax(t *testing.T) {
	cfg := &Config{
		Log:         LogConfig{Level: "info", Format: "auto"},
		Diagnostics: DiagnosticsConfig{HistoryCapacity: 50, LongDisconnectThreshold: "soon"},
	}
	if err := NewValidator().Validate(cfg); err == nil {
		t.Error("expected error for unparseable threshold")
	}
}

func TestDiagConfigConversion(t *testing.T) {
	dc := DiagnosticsConfig{HistoryCapacity: 20, LongDisconnectThreshold: "45s"}
	got := dc.DiagConfig()
	if got.HistoryCapacity != 20 {
		t.Errorf("expected capacity 20, got %d", got.HistoryCapacity)
	}
	if got.LongDisconnectThreshold != 45*time.Second {
		t.Errorf("expected 45s threshold, got %s", got.LongDisconnectThreshold)
	}
}

func TestDefaultConfigYAMLIsValid(t *testing.T) {
	var doc struct {
		Log struct {
			Level  string `yaml:"level"`
			Format string `yaml:"format"`
		} `yaml:"log"`
		Diagnostics struct {
			HistoryCapacity         int    `yaml:"history_capacity"`
			LongDisconnectThreshold string `yaml:"long_disconnect_threshold"`
		} `yaml:"diagnostics"`
	}
	if err := yaml.Unmarshal([]byte(DefaultConfigYAML), &doc); err != nil {
		t.Fatalf("default config is not valid YAML: %v", err)
	}
	if doc.Diagnostics.HistoryCapacity != 50 || doc.Diagnostics.LongDisconnectThreshold != "30s" {
		t.Errorf("default config drifted from code defaults: %+v", doc.Diagnostics)
	}
	if doc.Log.Level != "info" {
		t.Errorf("default log level drifted: %q", doc.Log.Level)
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", ".nexbase.yaml")

	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != DefaultConfigYAML {
		t.Error("written file does not match DefaultConfigYAML")
	}

	if err := WriteDefault(path, false); err == nil {
		t.Error("expected refusal to overwrite without force")
	}
	if err := WriteDefault(path, true); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
