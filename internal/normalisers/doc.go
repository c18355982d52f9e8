// Package normalisers provides implementations of the Extractor interface
// for the supported document formats. Each extractor knows how to turn the
// raw bytes of one domain.Format into text.
//
// Extractors are registered with the ExtractorRegistry at startup.
package normalisers
