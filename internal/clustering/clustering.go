package clustering

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidThreshold reports a threshold outside [0,1].
	ErrInvalidThreshold = errors.New("threshold must be within [0,1]")
	// ErrInvalidPartition reports a cluster list that is not a partition.
	ErrInvalidPartition = errors.New("invalid partition")
)

// Scores is the read-only view of a similarity matrix that strategies need.
type Scores interface {
	Size() int
	At(i, j int) float64
}

// Cluster is an ordered list of node indices.
type Cluster []int

// Strategy assigns every node of a matrix to exactly one cluster.
type Strategy interface {
	Name() string
	Cluster(scores Scores, threshold float64) ([]Cluster, error)
}

// Strategy names accepted by ByName.
const (
	NameGreedy     = "greedy"
	NameComponents = "components"
)

// ByName returns the strategy selected in configuration.
func ByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameGreedy:
		return Greedy{}, nil
	case NameComponents:
		return Components{}, nil
	default:
		return nil, fmt.Errorf("cluster strategy: unsupported value %q", name)
	}
}

// GetClusters partitions scores with the greedy strategy.
func GetClusters(scores Scores, threshold float64) ([]Cluster, error) {
	return Greedy{}.Cluster(scores, threshold)
}

// ValidateThreshold rejects NaN and values outside [0,1].
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return nil
}

// Validate checks that clusters partition the nodes 0..n-1.
func Validate(clusters []Cluster, n int) error {
	seen := make([]bool, n)
	count := 0
	for ci, cluster := range clusters {
		if len(cluster) == 0 {
			return fmt.Errorf("%w: cluster %d is empty", ErrInvalidPartition, ci)
		}
		for _, node := range cluster {
			if node < 0 || node >= n {
				return fmt.Errorf("%w: cluster %d has node %d outside [0,%d)", ErrInvalidPartition, ci, node, n)
			}
			if seen[node] {
				return fmt.Errorf("%w: node %d assigned twice", ErrInvalidPartition, node)
			}
			seen[node] = true
			count++
		}
	}
	if count != n {
		return fmt.Errorf("%w: %d of %d nodes assigned", ErrInvalidPartition, count, n)
	}
	return nil
}

// Cohesion returns the mean pairwise similarity between the members of
// cluster. Singletons and empty clusters have cohesion 1.
func Cohesion(scores Scores, cluster Cluster) float64 {
	if len(cluster) < 2 {
		return 1
	}
	pairs := make([]float64, 0, len(cluster)*(len(cluster)-1)/2)
	for i := 1; i < len(cluster); i++ {
		for j := 0; j < i; j++ {
			pairs = append(pairs, scores.At(cluster[i], cluster[j]))
		}
	}
	return stat.Mean(pairs, nil)
}
