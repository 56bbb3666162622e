package textnorm

// Dedupe normalizes every line with first-seen token order and returns the
// distinct signatures in the order they first appear.
func Dedupe(lines []string) []string {
	return Normalizer{}.Dedupe(lines)
}

// Dedupe normalizes every line and returns the distinct signatures in the
// order they first appear. Node i of a matrix built from lines is the i-th
// returned signature.
func (n Normalizer) Dedupe(lines []string) []string {
	signatures, _ := n.DedupeWithOrigins(lines)
	return signatures
}

// DedupeWithOrigins behaves like Dedupe and also reports, for every returned
// signature, the indices of the input lines that collapsed into it.
func (n Normalizer) DedupeWithOrigins(lines []string) ([]string, [][]int) {
	signatures := make([]string, 0, len(lines))
	origins := make([][]int, 0, len(lines))
	index := make(map[string]int, len(lines))
	for i, line := range lines {
		signature := n.Normalize(line)
		if node, ok := index[signature]; ok {
			origins[node] = append(origins[node], i)
			continue
		}
		index[signature] = len(signatures)
		signatures = append(signatures, signature)
		origins = append(origins, []int{i})
	}
	return signatures, origins
}
