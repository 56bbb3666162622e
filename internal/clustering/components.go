package clustering

// Components links every pair of nodes whose similarity is strictly above the
// threshold and returns the connected components. Clusters are ordered by
// their smallest member and list members in ascending order. Raising the
// threshold can only remove links, so the cluster count never decreases.
type Components struct{}

// Name implements Strategy.
func (Components) Name() string { return NameComponents }

// Cluster implements Strategy.
func (Components) Cluster(scores Scores, threshold float64) ([]Cluster, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	n := scores.Size()
	sets := newDisjointSet(n)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if scores.At(i, j) > threshold {
				sets.union(i, j)
			}
		}
	}

	var clusters []Cluster
	byRoot := make(map[int]int, n)
	for node := 0; node < n; node++ {
		root := sets.find(node)
		ci, ok := byRoot[root]
		if !ok {
			ci = len(clusters)
			byRoot[root] = ci
			clusters = append(clusters, nil)
		}
		clusters[ci] = append(clusters[ci], node)
	}
	return clusters, nil
}

type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &disjointSet{parent: parent, rank: make([]int, n)}
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
}
