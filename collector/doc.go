// Package collector aggregates hashing results arriving from
// concurrent workers in arbitrary completion order and replays
// them sorted by discovery index.
package collector
