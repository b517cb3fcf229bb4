// Package api exposes the proximity distance model over HTTP/JSON for
// dashboards and integration checks. Handlers are read-only; they
// share the lock-free backend with the scanner goroutine through the
// daemon's backend mutex.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/banshee-data/proximity/internal/prox"
	"github.com/banshee-data/proximity/internal/proxdb"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	backend   *prox.Backend
	backendMu *sync.Mutex // nil when the caller is single-threaded
	db        *proxdb.DB  // nil when snapshot recording is disabled
}

func NewServer(backend *prox.Backend, db *proxdb.DB, backendMu *sync.Mutex) *Server {
	return &Server{
		backend:   backend,
		backendMu: backendMu,
		db:        db,
	}
}

func (s *Server) lockBackend() func() {
	if s.backendMu == nil {
		return func() {}
	}
	s.backendMu.Lock()
	return s.backendMu.Unlock
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/proximity/status", s.showStatus)
	mux.HandleFunc("/api/proximity/closest", s.showClosest)
	mux.HandleFunc("/api/proximity/distances", s.showDistances)
	mux.HandleFunc("/api/proximity/boundary", s.showBoundary)
	mux.HandleFunc("/api/proximity/objects", s.listObjects)
	mux.HandleFunc("/api/proximity/ignore", s.listIgnoreZones)
	mux.HandleFunc("/api/proximity/history", s.showHistory)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func (s *Server) showStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	unlock := s.lockBackend()
	status := s.backend.Status()
	sectors := s.backend.ObjectCount()
	maxRange := s.backend.MaxRange()
	unlock()

	json.NewEncoder(w).Encode(map[string]any{
		"status":           status.String(),
		"sectors":          sectors,
		"max_range_meters": maxRange,
	})
}

func (s *Server) showClosest(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	unlock := s.lockBackend()
	angle, dist, ok := s.backend.ClosestObject()
	unlock()

	if !ok {
		s.writeJSONError(w, http.StatusServiceUnavailable, "no valid readings")
		return
	}
	json.NewEncoder(w).Encode(map[string]float32{
		"angle_deg":  angle,
		"distance_m": dist,
	})
}

func (s *Server) showDistances(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	unlock := s.lockBackend()
	distances, ok := s.backend.Distances()
	unlock()

	if !ok {
		s.writeJSONError(w, http.StatusServiceUnavailable, "no valid readings")
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"orientation": distances.Orientation,
		"distance_m":  distances.Distance,
	})
}

type boundaryPointAPI struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (s *Server) showBoundary(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	unlock := s.lockBackend()
	points, ok := s.backend.BoundaryPoints()
	var out []boundaryPointAPI
	if ok {
		// Copy before unlocking: the slice views the backend's storage.
		out = make([]boundaryPointAPI, len(points))
		for i, pt := range points {
			out[i] = boundaryPointAPI{X: pt.X, Y: pt.Y}
		}
	}
	unlock()

	if !ok {
		s.writeJSONError(w, http.StatusServiceUnavailable, "boundary unavailable")
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"points": out})
}

type objectAPI struct {
	Index     int      `json:"index"`
	Valid     bool     `json:"valid"`
	AngleDeg  *float32 `json:"angle_deg,omitempty"`
	DistanceM *float32 `json:"distance_m,omitempty"`
}

func (s *Server) listObjects(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	unlock := s.lockBackend()
	objects := make([]objectAPI, s.backend.ObjectCount())
	for i := range objects {
		objects[i].Index = i
		if angle, dist, ok := s.backend.ObjectAngleAndDistance(i); ok {
			objects[i].Valid = true
			objects[i].AngleDeg = &angle
			objects[i].DistanceM = &dist
		}
	}
	unlock()

	json.NewEncoder(w).Encode(map[string]any{"objects": objects})
}

type ignoreZoneAPI struct {
	Index    int    `json:"index"`
	AngleDeg uint16 `json:"angle_deg"`
	WidthDeg uint8  `json:"width_deg"`
}

func (s *Server) listIgnoreZones(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}

	unlock := s.lockBackend()
	count := s.backend.IgnoreAreaCount()
	var zones []ignoreZoneAPI
	for i := 0; i < prox.IgnoreZonesMax; i++ {
		angle, width, ok := s.backend.IgnoreArea(i)
		if !ok || width == 0 {
			continue
		}
		zones = append(zones, ignoreZoneAPI{Index: i, AngleDeg: angle, WidthDeg: width})
	}
	unlock()

	json.NewEncoder(w).Encode(map[string]any{
		"count": count,
		"zones": zones,
	})
}

func (s *Server) showHistory(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	if s.db == nil {
		s.writeJSONError(w, http.StatusNotFound, "snapshot recording disabled")
		return
	}

	session, err := s.db.LatestSession()
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, "no recorded sessions")
		return
	}

	snaps, err := s.db.SnapshotsForSession(session.ID)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"session_id": session.ID,
		"started_at": session.StartedAt,
		"snapshots":  snaps,
	})
}
