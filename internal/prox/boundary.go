package prox

// updateBoundaryForSector refreshes the avoidance polygon after one
// sector's distance state changed. Boundary points sit on the seam
// between adjacent sectors, so a single sample moves at most two
// points: the seam with the clockwise neighbour and the seam with the
// counter-clockwise neighbour. Each point takes the shorter of the two
// adjacent distances, keeping the polygon conservative.
func (b *Backend) updateBoundaryForSector(sector int) {
	if sector < 0 || sector >= b.numSectors {
		return
	}

	edge := b.edgeVectorFor(sector)

	next := sector + 1
	if next >= b.numSectors {
		next = 0
	}

	if b.valid[sector] && b.valid[next] {
		shortest := b.distance[sector]
		if b.distance[next] < shortest {
			shortest = b.distance[next]
		}
		if shortest < b.boundaryDistMin {
			shortest = b.boundaryDistMin
		}
		b.boundary[sector] = edge.Scale(shortest)
	}

	prev := sector - 1
	if prev < 0 {
		prev = b.numSectors - 1
	}

	// The counter-clockwise seam takes the raw minimum with no floor.
	// The two branches are intentionally not unified.
	if b.valid[prev] && b.valid[sector] {
		shortest := b.distance[prev]
		if b.distance[sector] < shortest {
			shortest = b.distance[sector]
		}
		b.boundary[prev] = b.edgeVectorFor(prev).Scale(shortest)
	}
}

// BoundaryPoints returns the avoidance polygon: one vertex per sector
// seam, ordered by sector index, each a 2D point in the vehicle body
// frame. It returns nil unless the sensor status is Good and every
// sector holds a valid sample; a polygon with a missing edge cannot be
// reasoned about safely, so a single gap degrades the whole polygon.
//
// The returned slice is a read-only view into the backend's fixed
// storage and stays valid only until the next sample lands.
func (b *Backend) BoundaryPoints() ([]Vector2, bool) {
	if b.state.Status != StatusGood {
		return nil, false
	}
	for i := 0; i < b.numSectors; i++ {
		if !b.valid[i] {
			return nil, false
		}
	}
	return b.boundary[:b.numSectors], true
}
