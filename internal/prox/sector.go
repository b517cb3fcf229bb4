package prox

import "math"

// ConvertAngleToSector maps a bearing in degrees onto the sector whose
// angular window contains it. A bearing that falls in a gap between
// sector windows resolves to the sector whose middle bearing is
// angularly closest. ok is false when the input is outside [-180, 360]
// or no sectors are configured.
func (b *Backend) ConvertAngleToSector(angleDeg float32) (int, bool) {
	if angleDeg > 360 || angleDeg < -180 {
		return 0, false
	}
	if angleDeg < 0 {
		angleDeg += 360
	}

	closest := -1
	var closestDiff float32

	for i := 0; i < b.numSectors; i++ {
		diff := float32(math.Abs(float64(wrap180(b.middleDeg[i] - angleDeg))))
		if closest < 0 || diff < closestDiff {
			closest = i
			closestDiff = diff
		}
		if diff <= b.widthDeg[i]/2 {
			return i, true
		}
	}

	if closest >= 0 {
		return closest, true
	}
	return 0, false
}

// SectorMiddle returns the middle bearing of a sector in degrees, or
// ok false for an out-of-range index.
func (b *Backend) SectorMiddle(sector int) (float32, bool) {
	if sector < 0 || sector >= b.numSectors {
		return 0, false
	}
	return b.middleDeg[sector], true
}

// SectorWidth returns the angular span of a sector in degrees, or ok
// false for an out-of-range index.
func (b *Backend) SectorWidth(sector int) (float32, bool) {
	if sector < 0 || sector >= b.numSectors {
		return 0, false
	}
	return b.widthDeg[sector], true
}

// edgeVectorFor returns the unit vector toward the clockwise edge of
// the sector, computing and caching it on first use. Sector geometry
// is fixed at construction, so the cached value never needs refreshing.
func (b *Backend) edgeVectorFor(sector int) Vector2 {
	if b.edgeVector[sector].IsZero() {
		angleRad := float64(b.middleDeg[sector]+b.widthDeg[sector]/2) * math.Pi / 180
		b.edgeVector[sector] = Vector2{
			X: float32(math.Cos(angleRad)),
			Y: float32(math.Sin(angleRad)),
		}
	}
	return b.edgeVector[sector]
}
