// Package mmfile provides platform-specific helpers for memory-mapping
// BYAML files while they are parsed.
package mmfile
