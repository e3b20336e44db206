package sift

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/byte4ever/hashsift/collector"
	"github.com/byte4ever/hashsift/digester"
	"github.com/byte4ever/hashsift/dispatcher"
	"github.com/byte4ever/hashsift/progress"
	"github.com/byte4ever/hashsift/report"
	"github.com/byte4ever/hashsift/walker"
)

// Summary describes a completed run.
type Summary struct {
	// Processed is the number of discovered files, each of
	// which has a row in the report.
	Processed int

	// Failed counts files whose row carries an error marker.
	Failed int

	// Output is the expanded report path that was written.
	Output string
}

// Run executes one scan. Startup problems (bad scan path,
// unreadable filelist, unknown algorithm or format) and report
// write failures are errors; per-file hashing failures are not —
// they are recorded in the report and counted in the Summary.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	const errCtx = "running scan"

	algo, err := digester.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	switch cfg.Format {
	case "", "csv", "json":
	default:
		return Summary{}, fmt.Errorf(
			"%s: unknown report format %q",
			errCtx, cfg.Format,
		)
	}

	st, err := os.Stat(cfg.ScanPath)
	if err != nil {
		return Summary{}, fmt.Errorf(
			"%s: scan path: %w", errCtx, err,
		)
	}

	if !st.IsDir() {
		return Summary{}, fmt.Errorf(
			"%s: scan path %s is not a directory",
			errCtx, cfg.ScanPath,
		)
	}

	var filelist map[string]struct{}

	if cfg.Filelist != "" {
		filelist, err = walker.LoadFilelist(cfg.Filelist)
		if err != nil {
			return Summary{}, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		if len(filelist) == 0 {
			slog.Warn(
				"filelist is empty, no files will match",
				"filelist", cfg.Filelist,
			)
		}
	}

	workers := dispatcher.WorkerCount(cfg.Workers)

	var (
		observer progress.Observer = progress.Noop{}
		verbose  *progress.Logger
	)

	if cfg.Verbose {
		verbose = progress.NewLogger()
		observer = verbose
	}

	// Backpressure: the walker stalls once the queue holds a
	// couple of tasks per worker.
	tasks := make(chan walker.Task, 2*workers)
	sink := collector.New()

	var walkErr error

	go func() {
		defer close(tasks)

		var total int

		total, walkErr = walker.Walk(
			ctx,
			walker.Options{
				Root:      cfg.ScanPath,
				Extension: cfg.Extension,
				Filelist:  filelist,
				Excludes:  cfg.Excludes,
				Limit:     cfg.TestLimit,
			},
			func(task walker.Task) error {
				tasks <- task

				return nil
			},
		)

		if verbose != nil {
			verbose.SetTotal(total)
		}
	}()

	dispatcher.Run(
		ctx, workers, algo, tasks, sink,
		func(res dispatcher.Result) {
			observer.Done(res.Task.Path, res.Err)
		},
	)

	// Run only returns after the task channel is closed, so
	// walkErr is settled by now.
	if walkErr != nil {
		return Summary{}, fmt.Errorf(
			"%s: %w", errCtx, walkErr,
		)
	}

	results := sink.Sorted()

	failed := 0

	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	outPath := report.ExpandPath(
		cfg.Output, string(algo), time.Now(),
	)

	if err := writeReport(outPath, cfg.Format, results); err != nil {
		return Summary{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return Summary{
		Processed: len(results),
		Failed:    failed,
		Output:    outPath,
	}, nil
}

func writeReport(
	outPath string,
	format string,
	results []dispatcher.Result,
) (retErr error) {
	const errCtx = "writing report"

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	fo, err := os.Create(outPath) //nolint:gosec // path from config
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fo.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	rows := report.FromResults(results)

	if format == "json" {
		if err := report.WriteJSON(fo, rows); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	if err := report.WriteCSV(fo, rows); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
