// Package report turns sorted hashing results into the final
// report. Every discovered file keeps its row: failed files carry
// an error marker in the digest column so row count always equals
// task count. Output paths may contain stamp placeholders.
package report
