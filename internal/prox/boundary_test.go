package prox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeVectorLazyInit(t *testing.T) {
	b := newTestBackend(t, Config{})

	require.True(t, b.edgeVector[0].IsZero(), "edge vector computed before first use")

	b.SetSectorDistance(0, 0, 10)

	edge := b.edgeVector[0]
	require.False(t, edge.IsZero(), "edge vector not computed on first boundary update")

	// Sector 0: middle 0°, width 45° puts the clockwise edge at 22.5°.
	wantX := float32(math.Cos(22.5 * math.Pi / 180))
	wantY := float32(math.Sin(22.5 * math.Pi / 180))
	assert.InDelta(t, wantX, edge.X, 1e-6)
	assert.InDelta(t, wantY, edge.Y, 1e-6)
	assert.InDelta(t, 1.0, edge.Length(), 1e-6, "edge vector is unit length")

	// Cached value is reused on later updates.
	b.SetSectorDistance(0, 1, 20)
	assert.Equal(t, edge, b.edgeVector[0])
}

// The clockwise seam floors the boundary distance; the
// counter-clockwise seam does not.
func TestBoundaryFloorAsymmetry(t *testing.T) {
	b := newTestBackend(t, Config{
		MaxRangeMeters:        400,
		BoundaryDistMinMeters: 60,
	})

	// Clockwise branch: sample lands in sector 0 with sector 1 already
	// valid, so the seam between them takes max(min(50,300), 60).
	b.SetSectorDistance(1, 45, 300)
	b.SetSectorDistance(0, 0, 50)
	assert.InDelta(t, 60, float64(b.boundary[0].Length()), 1e-3, "clockwise seam floored")

	// Counter-clockwise branch: the same seam written from sector 1's
	// update takes the raw minimum with no floor.
	b.SetSectorDistance(1, 45, 300)
	assert.InDelta(t, 50, float64(b.boundary[0].Length()), 1e-3, "counter-clockwise seam unfloored")
}

func TestBoundaryPointDirection(t *testing.T) {
	b := newTestBackend(t, Config{MaxRangeMeters: 200})

	b.SetSectorDistance(0, 0, 100)
	b.SetSectorDistance(1, 45, 100)

	// Seam between sectors 0 and 1 lies at 22.5° with magnitude 100.
	pt := b.boundary[0]
	angle := math.Atan2(float64(pt.Y), float64(pt.X)) * 180 / math.Pi
	assert.InDelta(t, 22.5, angle, 1e-4)
	assert.InDelta(t, 100, float64(pt.Length()), 1e-3)
}

func TestBoundaryPointsAllOrNothing(t *testing.T) {
	b := newTestBackend(t, Config{MaxRangeMeters: 200})
	b.SetStatus(StatusGood)

	for i := 0; i < b.ObjectCount(); i++ {
		b.SetSectorDistance(i, float32(i*45), 50)
	}

	points, ok := b.BoundaryPoints()
	require.True(t, ok)
	require.Len(t, points, 8)
	for i, pt := range points {
		assert.Falsef(t, pt.IsZero(), "boundary point %d not set", i)
	}

	t.Run("single invalid sector degrades whole polygon", func(t *testing.T) {
		b.InvalidateSector(3)
		points, ok := b.BoundaryPoints()
		assert.False(t, ok)
		assert.Nil(t, points)
	})

	t.Run("requires good status", func(t *testing.T) {
		b.SetSectorDistance(3, 135, 50)
		if _, ok := b.BoundaryPoints(); !ok {
			t.Fatal("expected polygon with all sectors restored")
		}
		b.SetStatus(StatusNoData)
		points, ok := b.BoundaryPoints()
		assert.False(t, ok)
		assert.Nil(t, points)
	})
}
