package sift

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds all settings for one scan run. It is built once
// before scanning begins and never mutated afterwards.
type Config struct {
	// ScanPath is the root directory to scan.
	ScanPath string `yaml:"scan_path"`

	// Output is the report path. It may contain {algorithm},
	// {date}, {time} and {hostname} placeholders.
	Output string `yaml:"output"`

	// Format selects the report encoding: "csv" (default)
	// or "json".
	Format string `yaml:"format"`

	// Extension keeps only files with this suffix
	// (case-insensitive).
	Extension string `yaml:"extension"`

	// Filelist is the path of a CSV whose first column lists
	// the only file names (or relative paths) to process.
	Filelist string `yaml:"filelist"`

	// Excludes are root-relative path prefixes or glob
	// patterns to skip entirely.
	Excludes []string `yaml:"excludes"`

	// Algorithm is the digest algorithm: md5 (default),
	// sha1, sha256 or blake3.
	Algorithm string `yaml:"algorithm"`

	// Workers is the hashing concurrency
	// (default: number of CPUs).
	Workers int `yaml:"workers"`

	// TestLimit stops enumeration after this many files
	// (0 = no cap).
	TestLimit int `yaml:"test_limit"`

	// Verbose logs every processed file as it completes.
	Verbose bool `yaml:"verbose"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	const errCtx = "loading config"

	by, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	var cfg Config

	if err := yaml.Unmarshal(by, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cfg, nil
}
