package analysis

import (
	"time"

	"sentcluster/internal/history"
	"sentcluster/internal/simmatrix"
)

// Report is the outcome of a clustering pass.
type Report struct {
	RunID           string          `json:"run_id" yaml:"run_id"`
	Source          string          `json:"source" yaml:"source"`
	Threshold       float64         `json:"threshold" yaml:"threshold"`
	Strategy        string          `json:"strategy" yaml:"strategy"`
	Stemmer         string          `json:"stemmer" yaml:"stemmer"`
	IgnoreStopWords bool            `json:"ignore_stop_words" yaml:"ignore_stop_words"`
	LineCount       int             `json:"line_count" yaml:"line_count"`
	NodeCount       int             `json:"node_count" yaml:"node_count"`
	Clusters        []ClusterReport `json:"clusters" yaml:"clusters"`
	DurationMS      int64           `json:"duration_ms" yaml:"duration_ms"`
	Recorded        bool            `json:"recorded" yaml:"recorded"`
	CreatedAt       time.Time       `json:"created_at" yaml:"created_at"`

	Matrix *simmatrix.Matrix `json:"-" yaml:"-"`
}

// ClusterReport describes one cluster. Nodes, Signatures, and Examples are
// parallel slices in assignment order.
type ClusterReport struct {
	Index      int      `json:"index" yaml:"index"`
	Nodes      []int    `json:"nodes" yaml:"nodes"`
	Signatures []string `json:"signatures" yaml:"signatures"`
	// Examples holds the first raw line that produced each node.
	Examples []string `json:"examples" yaml:"examples"`
	Cohesion float64  `json:"cohesion" yaml:"cohesion"`
	// LineCount is the number of raw lines the cluster represents.
	LineCount int `json:"line_count" yaml:"line_count"`
}

// SingletonCount returns how many clusters hold exactly one node.
func (r *Report) SingletonCount() int {
	count := 0
	for _, cluster := range r.Clusters {
		if len(cluster.Nodes) == 1 {
			count++
		}
	}
	return count
}

func (r *Report) historyRun() *history.Run {
	run := &history.Run{
		ID:         r.RunID,
		Source:     r.Source,
		Threshold:  r.Threshold,
		Strategy:   r.Strategy,
		Stemmer:    r.Stemmer,
		LineCount:  r.LineCount,
		NodeCount:  r.NodeCount,
		DurationMS: r.DurationMS,
		CreatedAt:  r.CreatedAt,
		Clusters:   make([]history.Cluster, 0, len(r.Clusters)),
	}
	for _, cluster := range r.Clusters {
		stored := history.Cluster{Index: cluster.Index, Cohesion: cluster.Cohesion}
		for i, node := range cluster.Nodes {
			stored.Members = append(stored.Members, history.Member{Node: node, Sentence: cluster.Examples[i]})
		}
		run.Clusters = append(run.Clusters, stored)
	}
	return run
}

// ReportFromRun rebuilds a report from a stored run. Signatures are not
// stored, so Examples and Signatures both carry the stored sentences.
func ReportFromRun(run *history.Run) *Report {
	report := &Report{
		RunID:      run.ID,
		Source:     run.Source,
		Threshold:  run.Threshold,
		Strategy:   run.Strategy,
		Stemmer:    run.Stemmer,
		LineCount:  run.LineCount,
		NodeCount:  run.NodeCount,
		DurationMS: run.DurationMS,
		Recorded:   true,
		CreatedAt:  run.CreatedAt,
		Clusters:   make([]ClusterReport, 0, len(run.Clusters)),
	}
	for _, cluster := range run.Clusters {
		entry := ClusterReport{Index: cluster.Index, Cohesion: cluster.Cohesion}
		for _, member := range cluster.Members {
			entry.Nodes = append(entry.Nodes, member.Node)
			entry.Signatures = append(entry.Signatures, member.Sentence)
			entry.Examples = append(entry.Examples, member.Sentence)
		}
		entry.LineCount = len(cluster.Members)
		report.Clusters = append(report.Clusters, entry)
	}
	return report
}
