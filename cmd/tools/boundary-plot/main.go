// Command boundary-plot renders the latest recorded session from a
// snapshot database: a range-over-time chart of the closest object
// plus a text summary, and when the final snapshot carries a full
// 8-orientation distance array, the avoidance polygon it implies.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/banshee-data/proximity/internal/monitor"
	"github.com/banshee-data/proximity/internal/prox"
	"github.com/banshee-data/proximity/internal/proxdb"
)

var (
	dbPath   = flag.String("db", "proximity.db", "Snapshot database path")
	outDir   = flag.String("out", "plots", "Output directory for PNGs")
	sensorID = flag.String("sensor", "proximity", "Sensor ID used in output filenames")
)

// boundaryFromDistances rebuilds an approximate avoidance polygon from
// a recorded 8-orientation distance array. Each orientation spans 45°,
// so the polygon vertex for orientation i sits on the edge bearing
// i*45 + 22.5 at the smaller of the two adjacent distances.
func boundaryFromDistances(distances []float64) []prox.Vector2 {
	n := len(distances)
	points := make([]prox.Vector2, n)
	for i := 0; i < n; i++ {
		dist := distances[i]
		if next := distances[(i+1)%n]; next < dist {
			dist = next
		}
		edgeRad := (float64(i)*45 + 22.5) * math.Pi / 180
		points[i] = prox.Vector2{
			X: float32(dist * math.Cos(edgeRad)),
			Y: float32(dist * math.Sin(edgeRad)),
		}
	}
	return points
}

func main() {
	flag.Parse()

	db, err := proxdb.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("failed to open snapshot database: %v", err)
	}
	defer db.Close()

	session, err := db.LatestSession()
	if err != nil {
		log.Fatalf("no recorded sessions in %s: %v", *dbPath, err)
	}
	log.Printf("session %s (port %s, started %s)", session.ID, session.SerialPort, session.StartedAt)

	snaps, err := db.SnapshotsForSession(session.ID)
	if err != nil {
		log.Fatalf("failed to load snapshots: %v", err)
	}
	if len(snaps) == 0 {
		log.Fatal("session has no snapshots")
	}

	plotter := monitor.NewBoundaryPlotter(*sensorID, *outDir)
	if err := plotter.Start(); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	var history []monitor.RangePoint
	var closest []float64
	for _, snap := range snaps {
		if snap.ClosestDistM == nil {
			continue
		}
		history = append(history, monitor.RangePoint{
			Timestamp: snap.Timestamp,
			DistM:     *snap.ClosestDistM,
		})
		closest = append(closest, *snap.ClosestDistM)
	}
	if len(history) == 0 {
		log.Fatal("no snapshot in the session holds a closest-object reading")
	}

	path, err := plotter.PlotRangeHistory(history)
	if err != nil {
		log.Fatalf("failed to plot range history: %v", err)
	}
	log.Printf("wrote %s (%d points)", path, len(history))

	summary, err := monitor.Summarize(closest)
	if err != nil {
		log.Fatalf("failed to summarize distances: %v", err)
	}
	fmt.Printf("closest object over %d snapshots: min=%.2fm max=%.2fm mean=%.2fm stddev=%.2fm\n",
		len(closest), summary.Min, summary.Max, summary.Mean, summary.StdDev)

	last := snaps[len(snaps)-1]
	if len(last.Distances) == 0 {
		log.Print("final snapshot has no distance array, skipping boundary plot")
		return
	}
	path, err = plotter.PlotBoundary(boundaryFromDistances(last.Distances))
	if err != nil {
		log.Fatalf("failed to plot boundary: %v", err)
	}
	log.Printf("wrote %s", path)
}
