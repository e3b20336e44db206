// Package progress notifies an observer once per completed file.
// Observers are side channels: disabling them must not change
// what the pipeline produces.
package progress
