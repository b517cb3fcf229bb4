package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/proximity/internal/api"
	"github.com/banshee-data/proximity/internal/config"
	"github.com/banshee-data/proximity/internal/prox"
	"github.com/banshee-data/proximity/internal/proxdb"
	"github.com/banshee-data/proximity/internal/scanner"
	"github.com/banshee-data/proximity/internal/serialmux"
)

var (
	configPath = flag.String("config", config.DefaultConfigPath, "Path to tuning config JSON")
	listen     = flag.String("listen", ":8080", "Listen address")
	dbPath     = flag.String("db", "proximity.db", "Snapshot database path (empty to disable recording)")
	devMode    = flag.Bool("dev", false, "Replay fixture lines instead of opening the serial port")
	fixtures   = flag.String("fixtures", "fixtures.txt", "Fixture file for dev mode")
)

// buildBackend constructs the shared frontend/backend pair from the
// tuning config.
func buildBackend(cfg *config.TuningConfig) (*prox.Backend, error) {
	frontend := &prox.Frontend{}
	for i, zone := range cfg.IgnoreZones {
		if err := frontend.SetIgnoreZone(i, zone.AngleDeg, zone.WidthDeg); err != nil {
			return nil, fmt.Errorf("ignore zone %d: %w", i, err)
		}
	}

	var sectors []prox.SectorLayout
	for _, s := range cfg.Sectors {
		sectors = append(sectors, prox.SectorLayout{
			MiddleDeg: float32(s.MiddleDeg),
			WidthDeg:  float32(s.WidthDeg),
		})
	}

	return prox.NewBackend(frontend, prox.Config{
		Sectors:               sectors,
		MaxRangeMeters:        float32(cfg.GetMaxRangeMeters()),
		BoundaryDistMinMeters: float32(cfg.GetBoundaryDistMinMeters()),
	})
}

// captureSnapshot reads the consumer views under the backend lock and
// packages them as a snapshot row.
func captureSnapshot(backend *prox.Backend, mu *sync.Mutex, sessionID string) proxdb.Snapshot {
	mu.Lock()
	defer mu.Unlock()

	snap := proxdb.Snapshot{
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Status:    backend.Status().String(),
	}
	for i := 0; i < backend.ObjectCount(); i++ {
		if _, _, ok := backend.ObjectAngleAndDistance(i); ok {
			snap.ValidSectors++
		}
	}
	if angle, dist, ok := backend.ClosestObject(); ok {
		a, d := float64(angle), float64(dist)
		snap.ClosestAngleDeg = &a
		snap.ClosestDistM = &d
	}
	if distances, ok := backend.Distances(); ok {
		snap.Distances = make([]float64, len(distances.Distance))
		for i, d := range distances.Distance {
			snap.Distances[i] = float64(d)
		}
	}
	return snap
}

func readFixtureLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func main() {
	flag.Parse()

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg, err := config.LoadTuningConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load tuning config: %v", err)
	}

	backend, err := buildBackend(cfg)
	if err != nil {
		log.Fatalf("failed to build distance model: %v", err)
	}

	var m serialmux.SerialMuxInterface
	if *devMode {
		lines, err := readFixtureLines(*fixtures)
		if err != nil {
			log.Fatalf("failed to read fixtures file: %v", err)
		}
		m = serialmux.NewMockSerialMux(lines, 10*time.Millisecond)
	} else {
		m, err = serialmux.NewRealSerialMux(cfg.GetSerialPort(), serialmux.PortOptions{
			BaudRate: cfg.GetSerialBaud(),
		})
		if err != nil {
			log.Fatalf("failed to open serial port %s: %v", cfg.GetSerialPort(), err)
		}
		if err := m.Initialize(); err != nil {
			log.Fatalf("failed to initialize sensor: %v", err)
		}
	}
	defer m.Close()

	var db *proxdb.DB
	var sessionID string
	if *dbPath != "" {
		db, err = proxdb.NewDB(*dbPath)
		if err != nil {
			log.Fatalf("failed to open snapshot database: %v", err)
		}
		defer db.Close()

		sessionID, err = db.StartSession(cfg.GetSerialPort())
		if err != nil {
			log.Fatalf("failed to start session: %v", err)
		}
		log.Printf("recording snapshots to %s (session %s)", *dbPath, sessionID)
	}

	// The scanner goroutine, the snapshot recorder, and the HTTP
	// handlers all touch the backend; they serialise on this mutex.
	var backendMu sync.Mutex

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run the monitor routine to manage IO on the serial port
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := m.Monitor(ctx); err != nil && err != context.Canceled {
			log.Printf("failed to monitor serial port: %v", err)
		}
		log.Print("monitor routine terminated")
	}()

	// feed serial lines into the distance model
	sc := scanner.New(m, backend, cfg.GetSampleTimeout(), &backendMu)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sc.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("scanner terminated: %v", err)
		}
		log.Print("scanner routine terminated")
	}()

	// periodic snapshot recorder
	if db != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(cfg.GetSnapshotInterval())
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					snap := captureSnapshot(backend, &backendMu, sessionID)
					if err := db.RecordSnapshot(snap); err != nil {
						log.Printf("failed to record snapshot: %v", err)
					}
				case <-ctx.Done():
					log.Print("recorder routine terminated")
					return
				}
			}
		}()
	}

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := api.NewServer(backend, db, &backendMu).ServeMux()
		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		go func() {
			log.Printf("listening on %s", *listen)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	stats := sc.Stats()
	log.Printf("lines=%d samples=%d ignored=%d out_of_range=%d parse_fails=%d",
		stats.Lines, stats.Samples, stats.Ignored, stats.OutOfRange, stats.ParseFails)
	log.Printf("Graceful shutdown complete")
}
