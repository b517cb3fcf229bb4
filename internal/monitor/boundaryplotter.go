// Package monitor renders diagnostic plots of the proximity distance
// model: the avoidance polygon as an overhead view and range traces
// over a recorded session.
package monitor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/proximity/internal/prox"
)

// BoundaryPlotter writes PNG plots for one sensor into an output
// directory.
type BoundaryPlotter struct {
	sensorID  string
	outputDir string
}

// NewBoundaryPlotter creates a plotter for the given sensor.
func NewBoundaryPlotter(sensorID, outputDir string) *BoundaryPlotter {
	return &BoundaryPlotter{sensorID: sensorID, outputDir: outputDir}
}

// Start creates the output directory.
func (bp *BoundaryPlotter) Start() error {
	if err := os.MkdirAll(bp.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return nil
}

// PlotBoundary renders the avoidance polygon as an overhead view with
// the vehicle at the origin and returns the written file path. Plot X
// is the vehicle's right axis and plot Y its forward axis, so the
// picture reads like a map with the vehicle pointing up.
func (bp *BoundaryPlotter) PlotBoundary(points []prox.Vector2) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no boundary points to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Avoidance boundary (%s)", bp.sensorID)
	p.X.Label.Text = "right (m)"
	p.Y.Label.Text = "forward (m)"

	polygon := make(plotter.XYs, 0, len(points)+1)
	for _, pt := range points {
		polygon = append(polygon, plotter.XY{X: float64(pt.Y), Y: float64(pt.X)})
	}
	// Close the polygon back to the first vertex.
	polygon = append(polygon, polygon[0])

	boundaryLine, err := plotter.NewLine(polygon)
	if err != nil {
		return "", fmt.Errorf("failed to build boundary line: %w", err)
	}
	boundaryLine.Width = vg.Points(1.5)
	boundaryLine.Color = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	p.Add(boundaryLine)

	vertices, err := plotter.NewScatter(polygon[:len(polygon)-1])
	if err != nil {
		return "", fmt.Errorf("failed to build vertex scatter: %w", err)
	}
	p.Add(vertices)

	vehicle, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return "", fmt.Errorf("failed to build vehicle marker: %w", err)
	}
	vehicle.GlyphStyle.Radius = vg.Points(4)
	p.Add(vehicle)
	p.Legend.Add("boundary", boundaryLine)

	outFile := filepath.Join(bp.outputDir, fmt.Sprintf("%s_boundary.png", bp.sensorID))
	if err := p.Save(8*vg.Inch, 8*vg.Inch, outFile); err != nil {
		return "", fmt.Errorf("failed to save boundary plot: %w", err)
	}
	return outFile, nil
}

// RangePoint is one closest-object distance observation in a recorded
// session.
type RangePoint struct {
	Timestamp time.Time
	DistM     float64
}

// PlotRangeHistory renders the closest-object distance over a session
// and returns the written file path.
func (bp *BoundaryPlotter) PlotRangeHistory(history []RangePoint) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("no range history to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Closest object (%s)", bp.sensorID)
	p.X.Label.Text = "elapsed (s)"
	p.Y.Label.Text = "distance (m)"

	start := history[0].Timestamp
	pts := make(plotter.XYs, 0, len(history))
	for _, h := range history {
		pts = append(pts, plotter.XY{
			X: h.Timestamp.Sub(start).Seconds(),
			Y: h.DistM,
		})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build range line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	outFile := filepath.Join(bp.outputDir, fmt.Sprintf("%s_range.png", bp.sensorID))
	if err := p.Save(14*vg.Inch, 6*vg.Inch, outFile); err != nil {
		return "", fmt.Errorf("failed to save range plot: %w", err)
	}
	return outFile, nil
}

// RangeSummary aggregates a set of distance observations.
type RangeSummary struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes aggregate statistics over a distance series.
func Summarize(distances []float64) (RangeSummary, error) {
	if len(distances) == 0 {
		return RangeSummary{}, fmt.Errorf("no distances to summarize")
	}
	return RangeSummary{
		Min:    floats.Min(distances),
		Max:    floats.Max(distances),
		Mean:   stat.Mean(distances, nil),
		StdDev: stat.StdDev(distances, nil),
	}, nil
}
