package clustering

// Greedy assigns nodes one at a time in ascending index order. A node joins
// the cluster whose mean similarity to it is strictly the highest and strictly
// above the threshold; the earliest cluster wins ties. Otherwise the node
// starts a new cluster at the end of the list.
type Greedy struct{}

// Name implements Strategy.
func (Greedy) Name() string { return NameGreedy }

// Cluster implements Strategy.
func (Greedy) Cluster(scores Scores, threshold float64) ([]Cluster, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	n := scores.Size()
	queue := make([]int, n)
	for i := range queue {
		queue[i] = i
	}

	var clusters []Cluster
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		best := -1
		bestValue := 0.0
		for ci, cluster := range clusters {
			value := affinity(scores, cluster, node)
			if value > threshold && value > bestValue {
				best = ci
				bestValue = value
			}
		}
		if best < 0 {
			clusters = append(clusters, Cluster{node})
			continue
		}
		clusters[best] = append(clusters[best], node)
	}
	return clusters, nil
}

// affinity is the mean similarity between node and the members of cluster,
// or 1 when node is already a member.
func affinity(scores Scores, cluster Cluster, node int) float64 {
	var sum float64
	for _, member := range cluster {
		if member == node {
			return 1
		}
		sum += scores.At(member, node)
	}
	return sum / float64(len(cluster))
}
