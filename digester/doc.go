// Package digester computes streaming cryptographic digests of files.
// Files are read in fixed-size chunks so arbitrarily large files on
// network shares never have to fit in memory. Each call is independent
// and holds no shared state.
package digester
