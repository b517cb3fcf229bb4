package prox

import "fmt"

// IgnoreZonesMax is the number of ignore-zone slots in the frontend
// configuration. A slot with zero width is unused.
const IgnoreZonesMax = 6

// Frontend holds the state this core shares with its owner: the status
// cell and the ignore-zone slots. In the full system a frontend owns
// several backends and merges their output; here it is the single
// ownership point for shared mutable state so backends and consumers
// read the same values.
type Frontend struct {
	State State

	// Ignore-zone slots as parallel arrays indexed 0..IgnoreZonesMax-1.
	// A zone is an angular window, centred on IgnoreAngleDeg, that is
	// excluded from obstacle consideration (e.g. a strut occluding the
	// sensor). Zero width marks an unused slot.
	IgnoreAngleDeg [IgnoreZonesMax]uint16
	IgnoreWidthDeg [IgnoreZonesMax]uint8
}

// SetIgnoreZone configures one ignore-zone slot. Width zero disables
// the slot.
func (f *Frontend) SetIgnoreZone(slot int, angleDeg uint16, widthDeg uint8) error {
	if slot < 0 || slot >= IgnoreZonesMax {
		return fmt.Errorf("prox: ignore zone slot %d out of range [0,%d)", slot, IgnoreZonesMax)
	}
	if angleDeg >= 360 {
		return fmt.Errorf("prox: ignore zone angle %d out of range [0,360)", angleDeg)
	}
	f.IgnoreAngleDeg[slot] = angleDeg
	f.IgnoreWidthDeg[slot] = widthDeg
	return nil
}
