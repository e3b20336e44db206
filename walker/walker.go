package walker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Task is one file accepted by the walk. Index is the file's
// discovery rank; the final report is ordered by it regardless
// of hashing completion order.
type Task struct {
	Index int
	Path  string
}

// Options configures a walk.
type Options struct {
	// Root is the directory to scan.
	Root string

	// Extension keeps only files whose name ends with this
	// suffix. Matching is case-insensitive.
	Extension string

	// Filelist, when non-nil, keeps only files whose basename
	// or root-relative path is in the set.
	Filelist map[string]struct{}

	// Excludes are path prefixes to prune, given relative to
	// Root or absolute (absolute entries outside Root are
	// ignored). An entry containing glob metacharacters is
	// compiled with path-separator-aware glob matching
	// instead.
	Excludes []string

	// Limit stops the walk after this many tasks (0 = no cap).
	Limit int
}

type excludeSet struct {
	prefixes []string
	globs    []glob.Glob
}

func compileExcludes(
	root string,
	entries []string,
) (excludeSet, error) {
	const errCtx = "compiling excludes"

	var es excludeSet

	for _, entry := range entries {
		// Absolute entries are matched by their position
		// under the root; anything outside it can never
		// match an enumerated path.
		if filepath.IsAbs(entry) {
			rel, err := filepath.Rel(root, entry)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}

			entry = rel
		}

		entry = filepath.ToSlash(filepath.Clean(entry))

		if !strings.ContainsAny(entry, "*?[{") {
			es.prefixes = append(es.prefixes, entry)

			continue
		}

		ma, err := glob.Compile(entry, '/')
		if err != nil {
			return excludeSet{}, fmt.Errorf(
				"%s: %q: %w", errCtx, entry, err,
			)
		}

		es.globs = append(es.globs, ma)
	}

	return es, nil
}

func (es excludeSet) match(rel string) bool {
	for _, prefix := range es.prefixes {
		if rel == prefix ||
			strings.HasPrefix(rel, prefix+"/") {
			return true
		}
	}

	for _, ma := range es.globs {
		if ma.Match(rel) {
			return true
		}
	}

	return false
}

// Walk enumerates regular files under opts.Root in lexical
// order and calls emit once per accepted file. Filters apply in
// order: excludes, filelist, extension. Unreadable directories
// are logged and skipped, never fatal. Symbolic links are not
// followed, so link cycles cannot recurse. Walk returns the
// number of tasks emitted.
func Walk(
	ctx context.Context,
	opts Options,
	emit func(Task) error,
) (int, error) {
	const errCtx = "walking scan root"

	excludes, err := compileExcludes(opts.Root, opts.Excludes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", errCtx, err)
	}

	ext := strings.ToLower(opts.Extension)

	emitted := 0

	err = filepath.WalkDir(opts.Root, func(
		path string,
		de fs.DirEntry,
		walkErr error,
	) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			slog.Warn(
				"skipping unreadable path",
				"path", path,
				"error", walkErr,
			)

			if de != nil && de.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			return relErr
		}

		rel = filepath.ToSlash(rel)

		if rel != "." && excludes.match(rel) {
			if de.IsDir() {
				return fs.SkipDir
			}

			return nil
		}

		if de.IsDir() {
			return nil
		}

		// Symlinks, sockets and devices are never hashed.
		if !de.Type().IsRegular() {
			return nil
		}

		if opts.Filelist != nil {
			_, byName := opts.Filelist[de.Name()]
			_, byPath := opts.Filelist[rel]

			if !byName && !byPath {
				return nil
			}
		}

		if ext != "" && !strings.HasSuffix(
			strings.ToLower(de.Name()), ext,
		) {
			return nil
		}

		task := Task{Index: emitted, Path: path}

		if emitErr := emit(task); emitErr != nil {
			return emitErr
		}

		emitted++

		if opts.Limit > 0 && emitted >= opts.Limit {
			return fs.SkipAll
		}

		return nil
	})
	if err != nil {
		return emitted, fmt.Errorf("%s: %w", errCtx, err)
	}

	return emitted, nil
}
