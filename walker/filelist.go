package walker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadFilelist reads target file names from the first column of
// a CSV file into a lookup set. Entries may be bare basenames or
// root-relative paths. A missing or unreadable filelist is an
// error; filters against it must be resolved before any hashing
// work starts.
func LoadFilelist(path string) (map[string]struct{}, error) {
	const errCtx = "loading filelist"

	fi, err := os.Open(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer fi.Close() //nolint:errcheck // read-only descriptor

	rd := csv.NewReader(fi)
	rd.FieldsPerRecord = -1

	names := make(map[string]struct{})

	for {
		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if len(rec) == 0 {
			continue
		}

		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}

		names[name] = struct{}{}
	}

	return names, nil
}
