// Package scanner pumps raw range readings from a 360° scanning
// rangefinder into the sector distance model. It owns the sensor
// health state: the shared status cell is Good while measurement lines
// keep arriving, NoData once they stop, and NotConnected until the
// first line is seen.
package scanner

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/banshee-data/proximity/internal/prox"
	"github.com/banshee-data/proximity/internal/serialmux"
)

// Stats counts what happened to the lines a scanner consumed.
type Stats struct {
	Lines      int64
	ParseFails int64
	Ignored    int64 // suppressed by an ignore zone
	OutOfRange int64 // beyond the sensor's max range
	Samples    int64 // stored into the distance model
}

// Scanner consumes measurement lines from a serial mux and feeds the
// backend. Run is single-threaded; all state below is owned by it. The
// backend itself is lock-free, so when other goroutines (the HTTP API,
// the snapshot recorder) read it, every party must hold the same
// backendMu around backend access.
type Scanner struct {
	mux           serialmux.SerialMuxInterface
	backend       *prox.Backend
	backendMu     *sync.Mutex // nil when the caller is single-threaded
	sampleTimeout time.Duration

	lastLine time.Time
	stats    Stats
}

// New builds a scanner over an opened mux. sampleTimeout bounds how
// long the status stays Good without a parsed line. backendMu may be
// nil when no other goroutine touches the backend.
func New(mux serialmux.SerialMuxInterface, backend *prox.Backend, sampleTimeout time.Duration, backendMu *sync.Mutex) *Scanner {
	return &Scanner{
		mux:           mux,
		backend:       backend,
		backendMu:     backendMu,
		sampleTimeout: sampleTimeout,
	}
}

func (s *Scanner) lockBackend() func() {
	if s.backendMu == nil {
		return func() {}
	}
	s.backendMu.Lock()
	return s.backendMu.Unlock
}

// Stats returns a copy of the line counters. Call only from the
// goroutine running Run, or after it has returned.
func (s *Scanner) Stats() Stats {
	return s.stats
}

// Run consumes lines until the context is cancelled or the mux closes
// its subscription.
func (s *Scanner) Run(ctx context.Context) error {
	id, lines := s.mux.Subscribe()
	defer s.mux.Unsubscribe(id)

	ticker := time.NewTicker(s.sampleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			s.handleLine(line)

		case <-ticker.C:
			unlock := s.lockBackend()
			if s.backend.Status() == prox.StatusGood && time.Since(s.lastLine) > s.sampleTimeout {
				log.Printf("[Scanner] no measurement for %v, marking no-data", s.sampleTimeout)
				s.backend.SetStatus(prox.StatusNoData)
			}
			unlock()
		}
	}
}

// handleLine routes one raw line into the distance model.
func (s *Scanner) handleLine(line string) {
	s.stats.Lines++

	sample, err := ParseLine(line)
	if err != nil {
		s.stats.ParseFails++
		return
	}

	s.lastLine = time.Now()

	unlock := s.lockBackend()
	defer unlock()

	s.backend.SetStatus(prox.StatusGood)

	switch {
	case sample.NoReturn, sample.DistanceM > s.backend.MaxRange():
		// No echo, or an echo past the usable range: the sector holds
		// no obstacle the model should report.
		if !sample.NoReturn {
			s.stats.OutOfRange++
		}
		if sector, ok := s.backend.ConvertAngleToSector(sample.AngleDeg); ok {
			s.backend.InvalidateSector(sector)
		}

	case s.backend.WithinIgnoreZone(sample.AngleDeg):
		s.stats.Ignored++

	default:
		if s.backend.RecordSample(sample.AngleDeg, sample.DistanceM) {
			s.stats.Samples++
		}
	}
}
