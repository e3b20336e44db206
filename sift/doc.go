// Package sift orchestrates one scan-and-hash run: it walks the
// scan root, fans files out to a bounded pool of hashing workers,
// aggregates results in discovery order and writes the report.
package sift
