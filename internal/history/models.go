package history

import "time"

// Run is one recorded clustering pass.
type Run struct {
	ID           string
	Source       string
	Threshold    float64
	Strategy     string
	Stemmer      string
	LineCount    int
	NodeCount    int
	ClusterCount int
	DurationMS   int64
	CreatedAt    time.Time
	// Clusters is empty for runs returned by List.
	Clusters []Cluster
}

// Cluster is a stored cluster with its members in assignment order.
type Cluster struct {
	Index    int
	Cohesion float64
	Members  []Member
}

// Member is one node of a stored cluster.
type Member struct {
	Node     int
	Sentence string
}
