package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sentcluster/internal/clustering"
	"sentcluster/internal/history"
	"sentcluster/internal/logging"
	"sentcluster/internal/simmatrix"
	"sentcluster/internal/source"
	"sentcluster/internal/stemming"
	"sentcluster/internal/textnorm"
)

// Recorder persists completed runs.
type Recorder interface {
	Record(ctx context.Context, run *history.Run) error
	Trim(ctx context.Context, keep int) (int64, error)
}

// Analyzer executes clustering requests.
type Analyzer struct {
	logger   *slog.Logger
	recorder Recorder
	keep     int
	now      func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithHistory records runs in rec and trims it to the newest keep runs after
// each record. keep <= 0 disables trimming.
func WithHistory(rec Recorder, keep int) Option {
	return func(a *Analyzer) {
		a.recorder = rec
		a.keep = keep
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New constructs an analyzer. A nil logger discards output.
func New(logger *slog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger: logging.NewComponentLogger(logger, "analysis"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Matrix is a scored matrix together with the raw lines behind each node.
type Matrix struct {
	*simmatrix.Matrix
	// Origins[i] lists the indices of the raw lines that collapsed into node i.
	Origins [][]int
	Lines   []string
	Stemmer string
	Order   textnorm.Order
}

// BuildMatrix reads the request source and scores every pair of distinct
// signatures.
func (a *Analyzer) BuildMatrix(ctx context.Context, req Request) (*Matrix, error) {
	stemmerName := strings.ToLower(strings.TrimSpace(req.Stemmer))
	if stemmerName == "" {
		stemmerName = stemming.NameSnowball
	}
	stemmer, err := stemming.ByName(stemmerName, req.Language)
	if err != nil {
		return nil, err
	}
	order, err := textnorm.ParseOrder(req.TokenOrder)
	if err != nil {
		return nil, err
	}

	lines := req.Lines
	if lines == nil {
		reader := source.Reader{StopAtBlank: req.StopAtBlank}
		if lines, err = reader.ReadFile(req.Source); err != nil {
			return nil, err
		}
	}

	normalizer := textnorm.Normalizer{Order: order}
	signatures, origins := normalizer.DedupeWithOrigins(lines)

	builder := simmatrix.Builder{
		Normalizer: normalizer,
		Scorer: simmatrix.Scorer{
			Stemmer:         stemming.Cached(stemmer),
			IgnoreStopWords: req.IgnoreStopWords,
		},
		Workers: req.Workers,
	}
	matrix, err := builder.FromSignatures(ctx, signatures)
	if err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}
	return &Matrix{Matrix: matrix, Origins: origins, Lines: lines, Stemmer: stemmerName, Order: order}, nil
}

// Run executes a full clustering pass.
func (a *Analyzer) Run(ctx context.Context, req Request) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := clustering.ValidateThreshold(req.Threshold); err != nil {
		return nil, err
	}
	strategy, err := clustering.ByName(req.Strategy)
	if err != nil {
		return nil, err
	}

	started := a.now()
	runID := uuid.NewString()
	ctx = logging.WithSource(logging.WithRunID(ctx, runID), source.Label(req.Source))
	logger := logging.WithContext(ctx, a.logger)

	built, err := a.BuildMatrix(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Debug("similarity matrix built",
		logging.Int("line_count", len(built.Lines)),
		logging.Int("node_count", built.Size()),
		logging.Int("workers", req.Workers),
	)

	clusters, err := strategy.Cluster(built, req.Threshold)
	if err != nil {
		return nil, err
	}
	if err := clustering.Validate(clusters, built.Size()); err != nil {
		return nil, fmt.Errorf("%s strategy: %w", strategy.Name(), err)
	}

	report := &Report{
		RunID:           runID,
		Source:          source.Label(req.Source),
		Threshold:       req.Threshold,
		Strategy:        strategy.Name(),
		Stemmer:         built.Stemmer,
		IgnoreStopWords: req.IgnoreStopWords,
		LineCount:       len(built.Lines),
		NodeCount:       built.Size(),
		Clusters:        make([]ClusterReport, 0, len(clusters)),
		CreatedAt:       started.UTC(),
		Matrix:          built.Matrix,
	}
	sentences := built.Sentences()
	for ci, cluster := range clusters {
		entry := ClusterReport{
			Index:    ci,
			Nodes:    append([]int(nil), cluster...),
			Cohesion: clustering.Cohesion(built, cluster),
		}
		for _, node := range cluster {
			entry.Signatures = append(entry.Signatures, sentences[node])
			entry.Examples = append(entry.Examples, built.Lines[built.Origins[node][0]])
			entry.LineCount += len(built.Origins[node])
		}
		report.Clusters = append(report.Clusters, entry)
	}
	report.DurationMS = a.now().Sub(started).Milliseconds()

	logger.Info("clustering complete",
		logging.String("strategy", report.Strategy),
		logging.Float64("threshold", report.Threshold),
		logging.Int("node_count", report.NodeCount),
		logging.Int("cluster_count", len(report.Clusters)),
		logging.Int("singleton_count", report.SingletonCount()),
	)

	if req.Record && a.recorder != nil {
		a.record(ctx, logger, report)
	}
	return report, nil
}

// record stores report. Failures are logged and leave Recorded false so a
// broken history database never hides clustering output.
func (a *Analyzer) record(ctx context.Context, logger *slog.Logger, report *Report) {
	if err := a.recorder.Record(ctx, report.historyRun()); err != nil {
		logging.WarnWithContext(logger, "run not recorded", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path or pass --no-history"),
		)
		return
	}
	report.Recorded = true
	if a.keep <= 0 {
		return
	}
	removed, err := a.recorder.Trim(ctx, a.keep)
	if err != nil {
		logging.WarnWithContext(logger, "history trim failed", "history_trim_failed", logging.Error(err))
		return
	}
	if removed > 0 {
		logger.Debug("history trimmed", logging.Int("removed", int(removed)), logging.Int("keep", a.keep))
	}
}
