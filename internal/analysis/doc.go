// Package analysis runs a complete clustering pass: it reads sentences,
// builds the similarity matrix, partitions it with the configured strategy,
// and assembles a Report. When a history recorder is attached, every
// successful run is stored under a fresh run ID.
package analysis
