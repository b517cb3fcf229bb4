package prox

// ZoneEdge selects which boundary of an ignore zone NextIgnoreBoundary
// searches for.
type ZoneEdge uint8

const (
	ZoneStart ZoneEdge = iota // centre - width/2
	ZoneEnd                   // centre + width/2
)

// IgnoreAreaCount returns the number of configured ignore zones, i.e.
// slots with nonzero width.
func (b *Backend) IgnoreAreaCount() int {
	count := 0
	for i := 0; i < IgnoreZonesMax; i++ {
		if b.frontend.IgnoreWidthDeg[i] != 0 {
			count++
		}
	}
	return count
}

// IgnoreArea returns the raw slot contents at index. Unused slots are
// not skipped; callers must check for zero width. ok is false only for
// an out-of-range index.
func (b *Backend) IgnoreArea(index int) (angleDeg uint16, widthDeg uint8, ok bool) {
	if index < 0 || index >= IgnoreZonesMax {
		return 0, 0, false
	}
	return b.frontend.IgnoreAngleDeg[index], b.frontend.IgnoreWidthDeg[index], true
}

// NextIgnoreBoundary returns the start or end bearing of the ignore
// zone reached first when rotating clockwise from fromAngleDeg. The
// result is wrapped into [0, 360). Ties go to the first slot
// encountered. ok is false when no zone is configured.
func (b *Backend) NextIgnoreBoundary(edge ZoneEdge, fromAngleDeg int) (int, bool) {
	found := false
	var smallestDiff int
	var boundaryAngle int

	for i := 0; i < IgnoreZonesMax; i++ {
		width := int(b.frontend.IgnoreWidthDeg[i])
		if width == 0 {
			continue
		}
		offset := width
		if edge == ZoneStart {
			offset = -width
		}
		angle := wrapInt360(int(b.frontend.IgnoreAngleDeg[i]) + offset/2)
		diff := wrapInt360(angle - fromAngleDeg)
		if !found || diff < smallestDiff {
			smallestDiff = diff
			boundaryAngle = angle
			found = true
		}
	}
	return boundaryAngle, found
}

// WithinIgnoreZone reports whether a bearing falls inside any
// configured ignore zone. The data-acquisition driver uses this to
// suppress readings at excluded bearings before they reach the
// distance store.
func (b *Backend) WithinIgnoreZone(angleDeg float32) bool {
	for i := 0; i < IgnoreZonesMax; i++ {
		width := float32(b.frontend.IgnoreWidthDeg[i])
		if width == 0 {
			continue
		}
		diff := wrap180(float32(b.frontend.IgnoreAngleDeg[i]) - angleDeg)
		if diff < 0 {
			diff = -diff
		}
		if diff <= width/2 {
			return true
		}
	}
	return false
}
