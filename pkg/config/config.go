// Package config loads cmd/seedgen's CLI defaults, overridable through a
// .env file the way github.com/rgonzalez12/dbd-analytics's cmd/app/main.go
// loads environment overrides before its own flag parsing runs.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults holds the environment-overridable defaults cmd/seedgen falls
// back to when a flag isn't set explicitly on the command line. Flags
// always win over the environment; the environment always wins over the
// hardcoded fallback below.
type Defaults struct {
	OutputDir    string
	SettingsPath string
	LogLevel     slog.Level
	Verbose      bool
}

// Load reads the first of the given .env candidate files that exists (the
// usual ".env", ".env.local" search order) and returns the resulting
// Defaults. A missing .env file is not an error — SEEDGEN_* environment
// variables set some other way (CI, shell profile) still apply.
func Load(envFiles ...string) Defaults {
	if len(envFiles) == 0 {
		envFiles = []string{".env", ".env.local"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err == nil {
			slog.Debug("config: loaded environment file", slog.String("file", f))
			break
		}
	}

	d := Defaults{
		OutputDir:    "./out",
		SettingsPath: "universe.yaml",
		LogLevel:     slog.LevelInfo,
		Verbose:      false,
	}

	if v := os.Getenv("SEEDGEN_OUTPUT_DIR"); v != "" {
		d.OutputDir = v
	}
	if v := os.Getenv("SEEDGEN_SETTINGS"); v != "" {
		d.SettingsPath = v
	}
	if v := os.Getenv("SEEDGEN_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			d.Verbose = b
		}
	}
	if v := os.Getenv("SEEDGEN_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			d.LogLevel = lvl
		}
	}
	return d
}

// Logger builds the process-wide structured logger cmd/seedgen installs as
// the slog default: a text handler writing to stdout.
func Logger(d Defaults) *slog.Logger {
	level := d.LogLevel
	if d.Verbose && level > slog.LevelDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
