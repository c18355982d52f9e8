// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Extractor: Turns raw bytes of one format into text
//   - ExtractorRegistry: Dispatches extraction by format
//   - BlobStore: Raw upload bytes
//   - FileStore: File rows, created together with their occurrences
//   - WordStore: Word occurrences and their aggregates
//   - ConfigStore: Flat, dot-keyed configuration values
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
