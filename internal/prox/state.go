package prox

// Status describes the health of a proximity sensor as seen by the
// frontend and its consumers.
type Status uint8

const (
	StatusNotConnected Status = iota
	StatusNoData
	StatusGood
)

func (s Status) String() string {
	switch s {
	case StatusNotConnected:
		return "not_connected"
	case StatusNoData:
		return "no_data"
	case StatusGood:
		return "good"
	default:
		return "unknown"
	}
}

// State is the shared status cell. The Frontend owns the storage; each
// Backend holds a reference and writes through SetStatus, so frontend
// and backend never hold divergent copies.
type State struct {
	Status Status
}
