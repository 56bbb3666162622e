package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerSingleHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsLevels(t *testing.T) {
	var warnBuf, debugBuf bytes.Buffer
	warnLevel := new(slog.LevelVar)
	warnLevel.Set(slog.LevelWarn)
	debugLevel := new(slog.LevelVar)
	debugLevel.Set(slog.LevelDebug)

	h := newFanoutHandler(
		newPrettyHandler(&warnBuf, warnLevel, false),
		newJSONHandler(&debugBuf, debugLevel, false),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled when any handler accepts the level")
	}

	logger := slog.New(h).With(slog.String(FieldComponent, "matrix"))
	logger.Info("row scored")
	logger.Warn("slow build")

	if strings.Contains(warnBuf.String(), "row scored") {
		t.Fatalf("warn handler received info record: %q", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), "WARN matrix: slow build") {
		t.Fatalf("warn handler missing record: %q", warnBuf.String())
	}
	if got := strings.Count(debugBuf.String(), "\n"); got != 2 {
		t.Fatalf("expected 2 json records, got %d: %q", got, debugBuf.String())
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	h := newPrettyHandler(&buf, level, false)
	slog.New(h).WithGroup("cluster").Info("summary", slog.Int("size", 2), slog.Group("score", slog.Float64("cohesion", 0.5)))
	line := buf.String()
	for _, want := range []string{"cluster.size=2", "cluster.score.cohesion=0.5"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}
