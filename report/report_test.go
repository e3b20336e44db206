package report_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/hashsift/digester"
	"github.com/byte4ever/hashsift/dispatcher"
	"github.com/byte4ever/hashsift/report"
	"github.com/byte4ever/hashsift/walker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []dispatcher.Result {
	mod := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	return []dispatcher.Result{
		{
			Task:     walker.Task{Index: 0, Path: "a.txt"},
			Hex:      "5d41402abc4b2a76b9719d911017c592",
			Modified: mod,
		},
		{
			Task: walker.Task{Index: 1, Path: "gone.txt"},
			Err: fmt.Errorf(
				"digesting file: %w", digester.ErrNotFound,
			),
		},
		{
			Task: walker.Task{Index: 2, Path: "locked.txt"},
			Err:  errors.New("permission denied"),
		},
	}
}

func TestFromResults_failed_files_keep_their_rows(t *testing.T) {
	t.Parallel()

	rows := report.FromResults(sampleResults())

	require.Len(t, rows, 3)

	assert.Equal(
		t,
		"5d41402abc4b2a76b9719d911017c592",
		rows[0].Digest,
	)
	assert.Equal(t, "2026-08-30 12:00:00", rows[0].LastModified)

	assert.Equal(t, report.MarkerNotFound, rows[1].Digest)
	assert.Empty(t, rows[1].LastModified)

	assert.Equal(t, report.MarkerRead, rows[2].Digest)
	assert.Empty(t, rows[2].LastModified)
}

func TestWriteCSV_layout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rows := report.FromResults(sampleResults())
	require.NoError(t, report.WriteCSV(&buf, rows))

	lines := strings.Split(
		strings.TrimRight(buf.String(), "\n"), "\n",
	)

	require.Len(t, lines, 4)
	assert.Equal(t, "path,digest,last_modified", lines[0])
	assert.Equal(
		t,
		"a.txt,5d41402abc4b2a76b9719d911017c592,"+
			"2026-08-30 12:00:00",
		lines[1],
	)
	assert.Equal(t, "gone.txt,error:not-found,", lines[2])
}

func TestWriteJSON_round_trips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	rows := report.FromResults(sampleResults())
	require.NoError(t, report.WriteJSON(&buf, rows))

	var decoded []report.Row

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
}

func TestExpandPath_substitutes_placeholders(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 9, 30, 15, 0, time.UTC)

	got := report.ExpandPath(
		"out/report-{algorithm}-{date}.csv", "md5", now,
	)

	assert.Equal(t, "out/report-md5-2026-08-30.csv", got)
}

func TestExpandPath_preserves_unknown_placeholders(t *testing.T) {
	t.Parallel()

	got := report.ExpandPath(
		"report-{whatever}.csv", "md5", time.Now(),
	)

	assert.Equal(t, "report-{whatever}.csv", got)
}

func TestExpandPath_plain_path_untouched(t *testing.T) {
	t.Parallel()

	got := report.ExpandPath("plain.csv", "md5", time.Now())

	assert.Equal(t, "plain.csv", got)
}
