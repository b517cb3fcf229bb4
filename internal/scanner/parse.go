package scanner

import (
	"fmt"
	"strconv"
	"strings"
)

// Sample is one raw range reading from the scanning rangefinder.
type Sample struct {
	AngleDeg  float32
	DistanceM float32
	NoReturn  bool // the sweep produced no echo at this bearing
}

// noReturnDistance is the sentinel the scanner emits for a bearing
// with no echo inside its range.
const noReturnDistance = -1

// ParseLine parses one measurement report of the form
// "MR,<angle_deg>,<distance_m>". A distance of -1 marks a bearing with
// no echo. Anything else on the wire (boot banners, command echoes,
// truncated lines) returns an error.
func ParseLine(line string) (Sample, error) {
	line = strings.TrimSpace(line)
	segments := strings.Split(line, ",")
	if len(segments) != 3 || segments[0] != "MR" {
		return Sample{}, fmt.Errorf("not a measurement report: %q", line)
	}

	angle, err := strconv.ParseFloat(segments[1], 32)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to parse angle: %w", err)
	}
	if angle < 0 || angle >= 360 {
		return Sample{}, fmt.Errorf("angle %v out of range [0,360)", angle)
	}

	distance, err := strconv.ParseFloat(segments[2], 32)
	if err != nil {
		return Sample{}, fmt.Errorf("failed to parse distance: %w", err)
	}

	if distance == noReturnDistance {
		return Sample{AngleDeg: float32(angle), NoReturn: true}, nil
	}
	if distance < 0 {
		return Sample{}, fmt.Errorf("negative distance %v", distance)
	}

	return Sample{AngleDeg: float32(angle), DistanceM: float32(distance)}, nil
}
