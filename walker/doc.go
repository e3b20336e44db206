// Package walker enumerates candidate files under a scan root.
// It applies exclusion, filelist and extension filters, assigns
// each accepted file a monotonic discovery index, and hands tasks
// to the caller one at a time. The walk is single-threaded; the
// discovery index has exactly one writer.
package walker
