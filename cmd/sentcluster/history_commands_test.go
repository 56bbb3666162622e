package main

import (
	"encoding/json"
	"testing"
	"time"

	"sentcluster/internal/analysis"
	"sentcluster/internal/testsupport"
)

type recordedRun struct {
	ID string `json:"id"`
}

func listRuns(t *testing.T, env *cliTestEnv) []recordedRun {
	t.Helper()
	out, _, err := runCLI(t, []string{"history", "list", "--format", "json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	var runs []recordedRun
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	return runs
}

func TestHistoryListAndShow(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithThreshold(0.4))

	out, _, err := runCLI(t, []string{"cluster", "-f", "json", env.inputPath}, env.configPath, "")
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}
	var report analysis.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if !report.Recorded {
		t.Fatal("expected run to be recorded")
	}

	runs := listRuns(t, env)
	if len(runs) != 1 || runs[0].ID != report.RunID {
		t.Fatalf("history = %+v, want run %s", runs, report.RunID)
	}

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath, "")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, shortID(report.RunID))
	requireContains(t, out, "greedy")

	out, _, err = runCLI(t, []string{"history", "show", report.RunID[:8]}, env.configPath, "")
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, "Run "+report.RunID)
	requireContains(t, out, "The cat sat.\nA cat sat!\n")
	requireContains(t, out, "2 clusters")

	out, _, err = runCLI(t, []string{"history", "show", "-f", "json", report.RunID}, env.configPath, "")
	if err != nil {
		t.Fatalf("history show json: %v", err)
	}
	var stored analysis.Report
	if err := json.Unmarshal([]byte(out), &stored); err != nil {
		t.Fatalf("decode stored report: %v", err)
	}
	if len(stored.Clusters) != len(report.Clusters) {
		t.Fatalf("stored clusters = %d, want %d", len(stored.Clusters), len(report.Clusters))
	}
	for i := range stored.Clusters {
		if len(stored.Clusters[i].Nodes) != len(report.Clusters[i].Nodes) {
			t.Fatalf("cluster %d nodes = %v, want %v", i, stored.Clusters[i].Nodes, report.Clusters[i].Nodes)
		}
	}
}

func TestHistoryShowUnknownRun(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"history", "show", "does-not-exist"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
	requireContains(t, err.Error(), "not found")
}

func TestHistoryPrune(t *testing.T) {
	env := setupCLITestEnv(t)

	for i := 0; i < 3; i++ {
		if _, _, err := runCLI(t, []string{"cluster", env.inputPath}, env.configPath, ""); err != nil {
			t.Fatalf("cluster run %d: %v", i, err)
		}
	}
	if got := len(listRuns(t, env)); got != 3 {
		t.Fatalf("expected 3 runs, got %d", got)
	}

	if _, _, err := runCLI(t, []string{"history", "prune"}, env.configPath, ""); err == nil {
		t.Fatal("expected prune without criteria to fail")
	}

	out, _, err := runCLI(t, []string{"history", "prune", "--keep", "1"}, env.configPath, "")
	if err != nil {
		t.Fatalf("prune --keep: %v", err)
	}
	requireContains(t, out, "Removed 2 runs")

	out, _, err = runCLI(t, []string{"history", "prune", "--older-than", "0s"}, env.configPath, "")
	if err != nil {
		t.Fatalf("prune --older-than: %v", err)
	}
	requireContains(t, out, "Removed 1 run")
	if got := len(listRuns(t, env)); got != 0 {
		t.Fatalf("expected empty history, got %d runs", got)
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())

	_, _, err := runCLI(t, []string{"history", "list"}, env.configPath, "")
	if err == nil {
		t.Fatal("expected error when history is disabled")
	}
	requireContains(t, err.Error(), "disabled")
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "30d", want: 30 * 24 * time.Hour},
		{in: "72h", want: 72 * time.Hour},
		{in: " 90m ", want: 90 * time.Minute},
		{in: "0s", want: 0},
		{in: "xd", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "soon", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseAge(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAge(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAge(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAge(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
