// Package domain defines the core business entities for wordstats.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - File: An uploaded document and where its raw bytes live
//   - Word: A normalised token shared by every file
//   - Occurrence: The per-file count of one word
//   - WordStats: The derived statistics for one word
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
