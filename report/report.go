package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/hashsift/digester"
	"github.com/byte4ever/hashsift/dispatcher"
)

// Row is one line of the final report.
type Row struct {
	Path         string `json:"path"`
	Digest       string `json:"digest"`
	LastModified string `json:"last_modified,omitempty"`
}

const timeLayout = "2006-01-02 15:04:05"

// Markers written to the digest column of failed files.
const (
	MarkerNotFound = "error:not-found"
	MarkerRead     = "error:read"
)

// FromResults converts discovery-ordered results into report
// rows. Failed files keep their row with an error marker in the
// digest column and an empty timestamp.
func FromResults(results []dispatcher.Result) []Row {
	rows := make([]Row, 0, len(results))

	for _, res := range results {
		row := Row{Path: res.Task.Path}

		switch {
		case res.Err == nil:
			row.Digest = res.Hex
			row.LastModified = res.Modified.Format(timeLayout)
		case errors.Is(res.Err, digester.ErrNotFound):
			row.Digest = MarkerNotFound
		default:
			row.Digest = MarkerRead
		}

		rows = append(rows, row)
	}

	return rows
}

// WriteCSV writes rows with a "path,digest,last_modified" header.
func WriteCSV(out io.Writer, rows []Row) error {
	const errCtx = "writing csv report"

	wr := csv.NewWriter(out)

	if err := wr.Write(
		[]string{"path", "digest", "last_modified"},
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for _, row := range rows {
		if err := wr.Write(
			[]string{row.Path, row.Digest, row.LastModified},
		); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	wr.Flush()

	if err := wr.Error(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(out io.Writer, rows []Row) error {
	const errCtx = "writing json report"

	by, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	by = append(by, '\n')

	if _, err := out.Write(by); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
