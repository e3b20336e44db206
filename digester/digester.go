package digester

import (
	"crypto/md5"  //nolint:gosec // checksum reporting, not a security boundary
	"crypto/sha1" //nolint:gosec // selectable for legacy report compatibility
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	sha256 "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
)

// Algorithm selects the digest function applied to file contents.
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// ErrNotFound reports a file that vanished between enumeration
// and hashing.
var ErrNotFound = errors.New("file not found")

// ErrRead reports an open or read failure on the file.
var ErrRead = errors.New("read failed")

// ParseAlgorithm validates an algorithm name. The empty string
// selects MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	const errCtx = "parsing algorithm"

	switch a := Algorithm(strings.ToLower(name)); a {
	case "":
		return MD5, nil
	case MD5, SHA1, SHA256, BLAKE3:
		return a, nil
	default:
		return "", fmt.Errorf(
			"%s: unknown algorithm %q", errCtx, name,
		)
	}
}

func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case MD5:
		return md5.New(), nil //nolint:gosec // see package imports
	case SHA1:
		return sha1.New(), nil //nolint:gosec // see package imports
	case SHA256:
		return sha256.New(), nil
	case BLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf(
			"unknown algorithm %q", string(a),
		)
	}
}

// Result holds the digest of one file.
type Result struct {
	// Hex is the lowercase hexadecimal digest of the file's bytes.
	Hex string

	// Modified is the file's last-modified time.
	Modified time.Time
}

const chunkSize = 64 * 1024

// Digest streams the file at path through the selected hash and
// returns the lowercase hex digest together with the file's
// last-modified time. A missing file wraps ErrNotFound; any other
// open or read failure wraps ErrRead. Digest never retries.
func Digest(path string, algo Algorithm) (Result, error) {
	const errCtx = "digesting file"

	ha, err := algo.newHash()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	fi, err := os.Open(path) //nolint:gosec // path comes from the enumerator
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf(
				"%s: %s: %w", errCtx, path, ErrNotFound,
			)
		}

		return Result{}, fmt.Errorf(
			"%s: %s: %v: %w", errCtx, path, err, ErrRead,
		)
	}

	defer fi.Close() //nolint:errcheck // read-only descriptor

	buf := make([]byte, chunkSize)

	if _, err := io.CopyBuffer(ha, fi, buf); err != nil {
		return Result{}, fmt.Errorf(
			"%s: %s: %v: %w", errCtx, path, err, ErrRead,
		)
	}

	// Stat through the open descriptor so the mtime matches the
	// bytes that were hashed even if the path was unlinked.
	st, err := fi.Stat()
	if err != nil {
		return Result{}, fmt.Errorf(
			"%s: %s: %v: %w", errCtx, path, err, ErrRead,
		)
	}

	return Result{
		Hex:      hex.EncodeToString(ha.Sum(nil)),
		Modified: st.ModTime(),
	}, nil
}
