package indexdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"plotworld/internal/testworld"
)

func sampleReport(runID string, at time.Time) *testworld.Report {
	return &testworld.Report{
		RunID:         runID,
		CreatedAt:     at,
		Origin:        [3]int{0, 4, 0},
		PackedW:       24,
		PackedH:       18,
		OverallBounds: [2][3]int{{3, 4, 3}, {20, 8, 14}},
		StartPos:      [3]int{12, 4, -2},
		Plots: []testworld.PlotReport{
			{ID: "furnace-line", Origin: [3]int{3, 4, 3}, Bounds: [2][3]int{{3, 4, 3}, {7, 5, 4}}, Entities: 2},
			{ID: "ore-cluster", Origin: [3]int{13, 4, 3}, Bounds: [2][3]int{{13, 4, 3}, {15, 5, 5}}, Entities: 1},
		},
		ClearedChunks:   9,
		RemovedEntities: 1,
	}
}

func TestRunIndex_RecordAndRead(t *testing.T) {
	ix, err := Open(filepath.Join(t.TempDir(), "index", "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ix.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	if err := ix.RecordRun(ctx, sampleReport("r-old", base)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := ix.RecordRun(ctx, sampleReport("r-new", base.Add(time.Hour))); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := ix.Runs(ctx)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "r-new" || runs[1].RunID != "r-old" {
		t.Fatalf("unexpected run order: %+v", runs)
	}
	if runs[0].PlotCount != 2 || runs[0].PackedW != 24 {
		t.Fatalf("bad summary: %+v", runs[0])
	}

	plots, err := ix.RunPlots(ctx, "r-old")
	if err != nil {
		t.Fatalf("RunPlots: %v", err)
	}
	if len(plots) != 2 || plots[0].ID != "furnace-line" || plots[1].ID != "ore-cluster" {
		t.Fatalf("unexpected plot order: %+v", plots)
	}
	if plots[0].Bounds != ([2][3]int{{3, 4, 3}, {7, 5, 4}}) || plots[0].Entities != 2 {
		t.Fatalf("plot row mangled: %+v", plots[0])
	}
}

func TestRunIndex_DuplicateRunFails(t *testing.T) {
	ix, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ix.Close()

	ctx := context.Background()
	rep := sampleReport("dup", time.Now().UTC())
	if err := ix.RecordRun(ctx, rep); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := ix.RecordRun(ctx, rep); err == nil {
		t.Fatal("expected duplicate run_id to be rejected")
	}
}
