// Package clustering partitions the nodes of a similarity matrix.
//
// Strategies are pluggable. Greedy is the single-pass assignment used by the
// CLI by default: nodes are taken in index order and each joins the existing
// cluster with the highest mean similarity above the threshold, or starts a
// new cluster. It never merges or revisits clusters, so its result depends on
// node order. Components links every pair whose similarity exceeds the
// threshold and returns the connected components of that graph.
//
// Every strategy returns a true partition: each node appears in exactly one
// non-empty cluster.
package clustering
