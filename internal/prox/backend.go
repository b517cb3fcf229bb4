// Package prox implements the sector-based angular distance model at
// the heart of the obstacle-sensing subsystem. Raw range readings
// arriving at arbitrary bearings are bucketed into a fixed set of
// angular sectors covering 360° around the vehicle; from the per-sector
// state the package derives the closest detected object, a conservative
// avoidance polygon, and the fixed 8-orientation distance array used
// for downstream reporting.
//
// All containers are fixed-size and indexed by sector number, so a
// backend performs no allocation after construction and every operation
// completes in time proportional to the sector count. The package is
// written for a single-threaded control-loop caller: writers and
// readers share state without locking, and a single sample touches at
// most one sector plus its two adjacent boundary points.
package prox

import "fmt"

const (
	// SectorsMax bounds the number of angular sectors a backend may be
	// configured with.
	SectorsMax = 12

	// DefaultBoundaryDistMin is the floor, in meters, applied to
	// boundary points so the avoidance polygon never collapses onto the
	// vehicle frame.
	DefaultBoundaryDistMin = 0.6
)

// SectorLayout describes one angular sector: the bearing of its centre
// and its angular span, in degrees. Bearing 0 is vehicle forward and
// angles increase clockwise.
type SectorLayout struct {
	MiddleDeg float32
	WidthDeg  float32
}

// DefaultSectors returns the standard 8-sector layout: 45° slices
// centred on the eight principal bearings.
func DefaultSectors() []SectorLayout {
	sectors := make([]SectorLayout, 8)
	for i := range sectors {
		sectors[i] = SectorLayout{MiddleDeg: float32(i * 45), WidthDeg: 45}
	}
	return sectors
}

// Config fixes a backend's sector geometry and range limits at
// construction time.
type Config struct {
	// Sectors lays out the angular partition. Nil selects
	// DefaultSectors(). Sectors never change after construction.
	Sectors []SectorLayout

	// MaxRangeMeters is the sensor's maximum usable range. It is the
	// value reported for 8-way orientations that hold no data.
	MaxRangeMeters float32

	// BoundaryDistMinMeters floors boundary-point distances. Zero
	// selects DefaultBoundaryDistMin.
	BoundaryDistMinMeters float32
}

// Backend owns the per-sector distance state for one physical sensor.
// The Frontend owns the shared status cell and the ignore-zone
// configuration; the backend holds a reference rather than caching
// either, so the two never diverge.
type Backend struct {
	frontend *Frontend
	state    *State

	numSectors int
	middleDeg  [SectorsMax]float32
	widthDeg   [SectorsMax]float32
	edgeVector [SectorsMax]Vector2

	distance [SectorsMax]float32
	angle    [SectorsMax]float32
	valid    [SectorsMax]bool

	boundary [SectorsMax]Vector2

	maxRange        float32
	boundaryDistMin float32
}

// NewBackend builds a backend over the given frontend's shared state.
func NewBackend(frontend *Frontend, cfg Config) (*Backend, error) {
	if frontend == nil {
		return nil, fmt.Errorf("prox: nil frontend")
	}
	if cfg.MaxRangeMeters <= 0 {
		return nil, fmt.Errorf("prox: max range must be positive, got %v", cfg.MaxRangeMeters)
	}

	sectors := cfg.Sectors
	if sectors == nil {
		sectors = DefaultSectors()
	}
	if len(sectors) > SectorsMax {
		return nil, fmt.Errorf("prox: %d sectors exceeds maximum %d", len(sectors), SectorsMax)
	}

	b := &Backend{
		frontend:        frontend,
		state:           &frontend.State,
		numSectors:      len(sectors),
		maxRange:        cfg.MaxRangeMeters,
		boundaryDistMin: cfg.BoundaryDistMinMeters,
	}
	if b.boundaryDistMin == 0 {
		b.boundaryDistMin = DefaultBoundaryDistMin
	}

	for i, s := range sectors {
		if s.WidthDeg <= 0 {
			return nil, fmt.Errorf("prox: sector %d has non-positive width %v", i, s.WidthDeg)
		}
		b.middleDeg[i] = wrap360(s.MiddleDeg)
		b.widthDeg[i] = s.WidthDeg
	}
	return b, nil
}

// SetStatus writes the sensor health through to the shared state cell.
func (b *Backend) SetStatus(s Status) {
	b.state.Status = s
}

// Status reads the shared state cell.
func (b *Backend) Status() Status {
	return b.state.Status
}

// MaxRange returns the sensor's maximum usable range in meters.
func (b *Backend) MaxRange() float32 {
	return b.maxRange
}

// SetSectorDistance records a raw reading for the given sector and
// refreshes the one or two boundary points adjacent to it. angleDeg is
// the bearing that produced the reading and may differ slightly from
// the sector's middle bearing. Out-of-range sectors are ignored.
func (b *Backend) SetSectorDistance(sector int, angleDeg, distanceM float32) {
	if sector < 0 || sector >= b.numSectors {
		return
	}
	b.angle[sector] = angleDeg
	b.distance[sector] = distanceM
	b.valid[sector] = true
	b.updateBoundaryForSector(sector)
}

// RecordSample resolves a raw (bearing, distance) reading onto its
// sector and stores it. ok is false when the bearing is outside the
// accepted [-180, 360] domain; nothing is mutated in that case.
func (b *Backend) RecordSample(angleDeg, distanceM float32) bool {
	sector, ok := b.ConvertAngleToSector(angleDeg)
	if !ok {
		return false
	}
	b.SetSectorDistance(sector, angleDeg, distanceM)
	return true
}

// InvalidateSector marks a sector as holding no usable sample, e.g.
// after a sweep produced no return for it, and refreshes the adjacent
// boundary points.
func (b *Backend) InvalidateSector(sector int) {
	if sector < 0 || sector >= b.numSectors {
		return
	}
	b.valid[sector] = false
	b.updateBoundaryForSector(sector)
}

// HorizontalDistance returns the distance in meters to the nearest
// object at the given bearing. ok is false when the bearing is out of
// domain or the covering sector holds no valid sample.
func (b *Backend) HorizontalDistance(angleDeg float32) (float32, bool) {
	sector, ok := b.ConvertAngleToSector(angleDeg)
	if !ok || !b.valid[sector] {
		return 0, false
	}
	return b.distance[sector], true
}

// ClosestObject returns the bearing and distance of the closest
// detected object, used by the pre-arm check. ok is false when no
// sector holds a valid sample. On exact distance ties the lowest
// sector index wins.
func (b *Backend) ClosestObject() (angleDeg, distanceM float32, ok bool) {
	best := -1
	for i := 0; i < b.numSectors; i++ {
		if b.valid[i] && (best < 0 || b.distance[i] < b.distance[best]) {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return b.angle[best], b.distance[best], true
}

// ObjectCount returns the number of addressable objects: one per
// configured sector, regardless of which sectors currently hold valid
// samples.
func (b *Backend) ObjectCount() int {
	return b.numSectors
}

// ObjectAngleAndDistance returns the stored bearing and distance for
// one sector, addressed by object index. ok is false when the index is
// out of range or the sector holds no valid sample.
func (b *Backend) ObjectAngleAndDistance(object int) (angleDeg, distanceM float32, ok bool) {
	if object < 0 || object >= b.numSectors || !b.valid[object] {
		return 0, 0, false
	}
	return b.angle[object], b.distance[object], true
}
