// Package simmatrix builds and owns the symmetric sentence similarity matrix.
//
// A Matrix maps node indices to sentence signatures and stores one score in
// [0,1] for every pair of nodes. Scores are computed once at construction:
// Build normalizes and deduplicates the input lines, stems every node's tokens
// once, and scores each pair (i, j) with i > j using node i as the reference
// side of the overlap formula before mirroring the value into (j, i). The
// diagonal is always 1.
//
// NewIdentity creates a matrix of a given size with zero off-diagonal
// similarity for callers that want to fill scores in by hand through
// SetSimilarity, which keeps both halves of the matrix in sync.
package simmatrix
