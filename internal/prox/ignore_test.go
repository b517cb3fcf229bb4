package prox

import "testing"

func ignoreTestBackend(t *testing.T, zones ...[2]int) *Backend {
	t.Helper()
	f := &Frontend{}
	for i, z := range zones {
		if err := f.SetIgnoreZone(i, uint16(z[0]), uint8(z[1])); err != nil {
			t.Fatalf("SetIgnoreZone(%d): %v", i, err)
		}
	}
	b, err := NewBackend(f, Config{MaxRangeMeters: 50})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	return b
}

func TestIgnoreAreaCount(t *testing.T) {
	b := ignoreTestBackend(t)
	if got := b.IgnoreAreaCount(); got != 0 {
		t.Errorf("IgnoreAreaCount() = %d, want 0", got)
	}

	b = ignoreTestBackend(t, [2]int{90, 20}, [2]int{270, 0}, [2]int{180, 45})
	if got := b.IgnoreAreaCount(); got != 2 {
		t.Errorf("IgnoreAreaCount() = %d, want 2 (zero-width slot unused)", got)
	}
}

func TestIgnoreArea(t *testing.T) {
	b := ignoreTestBackend(t, [2]int{90, 20})

	angle, width, ok := b.IgnoreArea(0)
	if !ok || angle != 90 || width != 20 {
		t.Errorf("IgnoreArea(0) = %d, %d, %v, want 90, 20, true", angle, width, ok)
	}

	// Unused slots are returned as-is, not skipped.
	angle, width, ok = b.IgnoreArea(1)
	if !ok || angle != 0 || width != 0 {
		t.Errorf("IgnoreArea(1) = %d, %d, %v, want 0, 0, true", angle, width, ok)
	}

	if _, _, ok := b.IgnoreArea(IgnoreZonesMax); ok {
		t.Error("IgnoreArea accepted out-of-range index")
	}
}

func TestNextIgnoreBoundary(t *testing.T) {
	tests := []struct {
		name     string
		zones    [][2]int
		edge     ZoneEdge
		from     int
		want     int
		wantOK   bool
	}{
		{"start of single zone", [][2]int{{90, 20}}, ZoneStart, 0, 80, true},
		{"end of single zone", [][2]int{{90, 20}}, ZoneEnd, 0, 100, true},
		{"wraps clockwise past north", [][2]int{{90, 20}}, ZoneStart, 100, 80, true},
		{"nearest of two zones", [][2]int{{90, 20}, {180, 30}}, ZoneStart, 120, 165, true},
		{"start wraps into [0,360)", [][2]int{{5, 20}}, ZoneStart, 180, 355, true},
		{"no zones configured", nil, ZoneStart, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ignoreTestBackend(t, tt.zones...)
			got, ok := b.NextIgnoreBoundary(tt.edge, tt.from)
			if ok != tt.wantOK {
				t.Fatalf("NextIgnoreBoundary ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("NextIgnoreBoundary = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWithinIgnoreZone(t *testing.T) {
	b := ignoreTestBackend(t, [2]int{90, 20}, [2]int{350, 30})

	tests := []struct {
		angleDeg float32
		want     bool
	}{
		{90, true},
		{80, true},
		{100, true},
		{79.9, false},
		{100.1, false},
		{350, true},
		{340, true},
		{4, true},  // zone straddles north
		{6, false}, // just outside
		{180, false},
	}
	for _, tt := range tests {
		if got := b.WithinIgnoreZone(tt.angleDeg); got != tt.want {
			t.Errorf("WithinIgnoreZone(%v) = %v, want %v", tt.angleDeg, got, tt.want)
		}
	}
}
