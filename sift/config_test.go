package sift_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/byte4ever/hashsift/sift"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_reads_yaml(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(pa, []byte(`
scan_path: /mnt/share
output: report-{date}.csv
format: json
extension: .pdf
algorithm: sha256
workers: 8
test_limit: 100
verbose: true
excludes:
  - tmp
  - "**.bak"
`), 0o600))

	cfg, err := sift.LoadConfig(pa)

	require.NoError(t, err)
	assert.Equal(t, sift.Config{
		ScanPath:  "/mnt/share",
		Output:    "report-{date}.csv",
		Format:    "json",
		Extension: ".pdf",
		Algorithm: "sha256",
		Workers:   8,
		TestLimit: 100,
		Verbose:   true,
		Excludes:  []string{"tmp", "**.bak"},
	}, cfg)
}

func TestLoadConfig_missing_file_fails(t *testing.T) {
	t.Parallel()

	_, err := sift.LoadConfig(
		filepath.Join(t.TempDir(), "absent.yaml"),
	)

	assert.Error(t, err)
}

func TestLoadConfig_rejects_malformed_yaml(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(
		t, os.WriteFile(pa, []byte("workers: [oops"), 0o600),
	)

	_, err := sift.LoadConfig(pa)

	assert.Error(t, err)
}
