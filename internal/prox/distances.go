package prox

// NumOrientations is the number of fixed 45°-wide reporting buckets.
// Orientation k is centred on k*45° clockwise from vehicle forward,
// independent of the sector table's own geometry.
const NumOrientations = 8

// DistanceArray holds one distance per fixed orientation, in the
// layout consumed by the ground-station encoder.
type DistanceArray struct {
	Orientation [NumOrientations]uint8
	Distance    [NumOrientations]float32
}

// Distances projects the sector samples onto the eight fixed
// orientations. Each orientation reports the shortest valid sample
// whose bearing falls in its 45° bucket; orientations with no covering
// sample default to the sensor's maximum range. A single empty
// orientation between two populated neighbours is filled with their
// arithmetic mean; gap filling never looks more than one step to each
// side, so runs of two or more empty orientations keep the max-range
// default. ok is false when no sector holds a valid sample.
func (b *Backend) Distances() (DistanceArray, bool) {
	var out DistanceArray

	anyValid := false
	for i := 0; i < b.numSectors; i++ {
		if b.valid[i] {
			anyValid = true
		}
	}
	if !anyValid {
		return out, false
	}

	var set [NumOrientations]bool
	for i := range out.Distance {
		out.Orientation[i] = uint8(i)
		out.Distance[i] = b.maxRange
	}

	for i := 0; i < b.numSectors; i++ {
		if !b.valid[i] {
			continue
		}
		orient := int(b.angle[i] / 45)
		if orient >= 0 && orient < NumOrientations && b.distance[i] < out.Distance[orient] {
			out.Distance[orient] = b.distance[i]
			set[orient] = true
		}
	}

	for i := 0; i < NumOrientations; i++ {
		if set[i] {
			continue
		}
		before := (i + NumOrientations - 1) % NumOrientations
		after := (i + 1) % NumOrientations
		if set[before] && set[after] {
			out.Distance[i] = (out.Distance[before] + out.Distance[after]) / 2
		}
	}

	return out, true
}
