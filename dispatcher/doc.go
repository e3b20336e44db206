// Package dispatcher runs a bounded pool of hashing workers over
// an enumerated task stream. Every task yields exactly one result,
// success or failure; a failed file never aborts the run.
package dispatcher
