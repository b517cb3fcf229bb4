package monitor

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/banshee-data/proximity/internal/prox"
)

func TestPlotBoundaryWritesPNG(t *testing.T) {
	bp := NewBoundaryPlotter("prox-01", t.TempDir())
	if err := bp.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	points := make([]prox.Vector2, 8)
	for i := range points {
		angle := float64(i) * 45 * math.Pi / 180
		points[i] = prox.Vector2{
			X: float32(10 * math.Cos(angle)),
			Y: float32(10 * math.Sin(angle)),
		}
	}

	path, err := bp.PlotBoundary(points)
	if err != nil {
		t.Fatalf("PlotBoundary: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestPlotBoundaryNoPoints(t *testing.T) {
	bp := NewBoundaryPlotter("prox-01", t.TempDir())
	if _, err := bp.PlotBoundary(nil); err == nil {
		t.Error("expected error for empty boundary")
	}
}

func TestPlotRangeHistoryWritesPNG(t *testing.T) {
	bp := NewBoundaryPlotter("prox-01", t.TempDir())
	if err := bp.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	start := time.Now()
	history := []RangePoint{
		{Timestamp: start, DistM: 12.5},
		{Timestamp: start.Add(time.Second), DistM: 11.0},
		{Timestamp: start.Add(2 * time.Second), DistM: 13.2},
	}

	path, err := bp.PlotRangeHistory(history)
	if err != nil {
		t.Fatalf("PlotRangeHistory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("plot file missing: %v", err)
	}
}

func TestSummarize(t *testing.T) {
	summary, err := Summarize([]float64{2, 4, 6})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.Min != 2 || summary.Max != 6 {
		t.Errorf("Min/Max = %v/%v, want 2/6", summary.Min, summary.Max)
	}
	if summary.Mean != 4 {
		t.Errorf("Mean = %v, want 4", summary.Mean)
	}
	if math.Abs(summary.StdDev-2) > 1e-12 {
		t.Errorf("StdDev = %v, want 2", summary.StdDev)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(nil); err == nil {
		t.Error("expected error for empty series")
	}
}
