// Package main provides the hashsift CLI: it scans a directory
// tree (or mounted share), computes a digest per file with a
// bounded worker pool, and writes a CSV or JSON report of path,
// digest and last-modified time.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/hashsift/sift"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "hashsift"

	var (
		configPath string
		excludes   arrayFlags
		cfg        sift.Config
	)

	flag.StringVar(
		&configPath, "config", "",
		"path to YAML config file (flags override it)",
	)

	flag.StringVar(
		&cfg.ScanPath, "scan-path", "",
		"directory to scan (default: current directory)",
	)

	flag.StringVar(
		&cfg.Output, "output", "",
		"report path, may contain {algorithm}, {date}, "+
			"{time} and {hostname} "+
			"(default: digest_report.csv)",
	)

	flag.StringVar(
		&cfg.Format, "format", "",
		"report format: csv or json (default: csv)",
	)

	flag.StringVar(
		&cfg.Extension, "extension", "",
		"only process files with this extension",
	)

	flag.StringVar(
		&cfg.Filelist, "filelist", "",
		"CSV file whose first column lists file names to process",
	)

	flag.StringVar(
		&cfg.Algorithm, "algorithm", "",
		"digest algorithm: md5, sha1, sha256 or blake3 "+
			"(default: md5)",
	)

	flag.IntVar(
		&cfg.Workers, "workers", 0,
		"hashing concurrency (default: CPU count)",
	)

	flag.IntVar(
		&cfg.TestLimit, "test", 0,
		"test mode: process only the first N files",
	)

	flag.BoolVar(
		&cfg.Verbose, "verbose", false,
		"log every file as it is processed",
	)

	flag.Var(
		&excludes, "exclude",
		"path prefix or glob to skip (repeatable)",
	)

	flag.Parse()

	cfg.Excludes = excludes

	if configPath != "" {
		fileCfg, err := sift.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		set := make(map[string]bool)

		flag.Visit(func(fl *flag.Flag) {
			set[fl.Name] = true
		})

		cfg = mergeConfig(fileCfg, cfg, set)
	}

	if cfg.ScanPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		cfg.ScanPath = wd
	}

	if cfg.Output == "" {
		cfg.Output = "digest_report.csv"
	}

	summary, err := sift.Run(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if summary.Failed > 0 {
		slog.Warn(
			"report generated with failures",
			"output", summary.Output,
			"processed", summary.Processed,
			"failed", summary.Failed,
		)

		return nil
	}

	slog.Info(
		"report generated",
		"output", summary.Output,
		"processed", summary.Processed,
	)

	return nil
}

// mergeConfig overlays flag values that were explicitly set on
// top of the config file values.
func mergeConfig(
	base sift.Config,
	flags sift.Config,
	set map[string]bool,
) sift.Config {
	out := base

	if set["scan-path"] {
		out.ScanPath = flags.ScanPath
	}

	if set["output"] {
		out.Output = flags.Output
	}

	if set["format"] {
		out.Format = flags.Format
	}

	if set["extension"] {
		out.Extension = flags.Extension
	}

	if set["filelist"] {
		out.Filelist = flags.Filelist
	}

	if set["algorithm"] {
		out.Algorithm = flags.Algorithm
	}

	if set["workers"] {
		out.Workers = flags.Workers
	}

	if set["test"] {
		out.TestLimit = flags.TestLimit
	}

	if set["verbose"] {
		out.Verbose = flags.Verbose
	}

	if set["exclude"] {
		out.Excludes = flags.Excludes
	}

	return out
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
