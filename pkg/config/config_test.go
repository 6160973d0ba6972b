package config

import (
	"log/slog"
	"testing"
)

func TestLoadAppliesEnvironmentOverrides(t *testing.T) {
	t.Setenv("SEEDGEN_OUTPUT_DIR", "/tmp/seedgen-out")
	t.Setenv("SEEDGEN_SETTINGS", "custom.yaml")
	t.Setenv("SEEDGEN_VERBOSE", "true")
	t.Setenv("SEEDGEN_LOG_LEVEL", "WARN")

	d := Load("testdata-does-not-exist.env")

	if d.OutputDir != "/tmp/seedgen-out" {
		t.Errorf("OutputDir = %q, want /tmp/seedgen-out", d.OutputDir)
	}
	if d.SettingsPath != "custom.yaml" {
		t.Errorf("SettingsPath = %q, want custom.yaml", d.SettingsPath)
	}
	if !d.Verbose {
		t.Error("Verbose = false, want true")
	}
	if d.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want Warn", d.LogLevel)
	}
}

func TestLoadFallsBackWithoutEnvironment(t *testing.T) {
	d := Load("testdata-does-not-exist.env")
	if d.OutputDir != "./out" {
		t.Errorf("OutputDir = %q, want ./out", d.OutputDir)
	}
	if d.SettingsPath != "universe.yaml" {
		t.Errorf("SettingsPath = %q, want universe.yaml", d.SettingsPath)
	}
	if d.Verbose {
		t.Error("Verbose = true, want false")
	}
	if d.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want Info", d.LogLevel)
	}
}

func TestLoggerRaisesLevelWhenVerbose(t *testing.T) {
	d := Defaults{LogLevel: slog.LevelWarn, Verbose: true}
	logger := Logger(d)
	if !logger.Enabled(nil, slog.LevelDebug) {
		t.Error("expected verbose Defaults to enable debug-level logging regardless of LogLevel")
	}
}
