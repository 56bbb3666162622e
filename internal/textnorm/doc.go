// Package textnorm turns raw sentences into canonical keyword signatures and
// collapses repeated signatures into an ordered list of distinct nodes.
//
// A signature is the lowercased, punctuation-free, duplicate-free token list
// of a sentence joined with single spaces. Two sentences with the same
// signature are the same node for scoring and clustering purposes. Token order
// inside a signature is either first-seen (the default) or lexicographic; it
// never affects similarity scores because scoring re-splits the signature.
package textnorm
