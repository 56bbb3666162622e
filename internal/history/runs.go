package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = "id, source, threshold, strategy, stemmer, line_count, node_count, cluster_count, duration_ms, created_at"

// Record stores run and its clusters. A missing ID is assigned a new UUID and
// a zero CreatedAt is set to the current time; both are written back to run.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run is nil")
	}
	if strings.TrimSpace(run.ID) == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	run.ClusterCount = len(run.Clusters)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.Source,
			run.Threshold,
			run.Strategy,
			run.Stemmer,
			run.LineCount,
			run.NodeCount,
			run.ClusterCount,
			run.DurationMS,
			run.CreatedAt.Format(timeLayout),
		); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		clusterStmt, err := tx.PrepareContext(ctx, `INSERT INTO clusters (run_id, cluster_index, cohesion) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare cluster insert: %w", err)
		}
		defer clusterStmt.Close()
		memberStmt, err := tx.PrepareContext(ctx,
			`INSERT INTO cluster_members (run_id, cluster_index, position, node, sentence) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare member insert: %w", err)
		}
		defer memberStmt.Close()

		for ci, cluster := range run.Clusters {
			if _, err := clusterStmt.ExecContext(ctx, run.ID, ci, cluster.Cohesion); err != nil {
				return fmt.Errorf("insert cluster %d: %w", ci, err)
			}
			for position, member := range cluster.Members {
				if _, err := memberStmt.ExecContext(ctx, run.ID, ci, position, member.Node, member.Sentence); err != nil {
					return fmt.Errorf("insert cluster %d member %d: %w", ci, position, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	for ci := range run.Clusters {
		run.Clusters[ci].Index = ci
	}
	return nil
}

// List returns run summaries, newest first. A limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Get returns the run whose ID equals id or, failing that, uniquely starts
// with id. Clusters and members are loaded in stored order.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		run, err = s.getByPrefix(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadClusters(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) getByPrefix(ctx context.Context, prefix string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

func (s *Store) loadClusters(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cluster_index, cohesion FROM clusters WHERE run_id = ? ORDER BY cluster_index`, run.ID)
	if err != nil {
		return fmt.Errorf("load clusters: %w", err)
	}
	var clusters []Cluster
	for rows.Next() {
		var c Cluster
		if err := rows.Scan(&c.Index, &c.Cohesion); err != nil {
			rows.Close()
			return fmt.Errorf("scan cluster: %w", err)
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("load clusters: %w", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT cluster_index, node, sentence FROM cluster_members WHERE run_id = ? ORDER BY cluster_index, position`, run.ID)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			index  int
			member Member
		)
		if err := rows.Scan(&index, &member.Node, &member.Sentence); err != nil {
			return fmt.Errorf("scan member: %w", err)
		}
		if index < 0 || index >= len(clusters) {
			return fmt.Errorf("member references missing cluster %d", index)
		}
		clusters[index].Members = append(clusters[index].Members, member)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	run.Clusters = clusters
	return nil
}

// Prune deletes runs created before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

// Trim keeps the newest keep runs and deletes the rest. keep <= 0 is a no-op.
func (s *Store) Trim(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("trim runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run        Run
		createdRaw string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Source,
		&run.Threshold,
		&run.Strategy,
		&run.Stemmer,
		&run.LineCount,
		&run.NodeCount,
		&run.ClusterCount,
		&run.DurationMS,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	if created, err := time.Parse(timeLayout, createdRaw); err == nil {
		run.CreatedAt = created
	}
	return &run, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
