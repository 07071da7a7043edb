package fixtures

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int
	Max int
}

// R is shorthand for Range{Min: min, Max: max}.
func R(min, max int) Range {
	return Range{Min: min, Max: max}
}

func (r Range) normalize() Range {
	if r.Min < 0 {
		r.Min = 0
	}
	if r.Max < 0 {
		r.Max = 0
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

// String formats the range as "min-max".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// ParseRange parses "min-max" or a single "n" (meaning n-n).
func ParseRange(value string) (Range, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Range{}, fmt.Errorf("empty range")
	}
	lo, hi, found := strings.Cut(value, "-")
	if !found {
		hi = lo
	}
	min, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Range{}, fmt.Errorf("range %q: invalid min: %w", value, err)
	}
	max, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Range{}, fmt.Errorf("range %q: invalid max: %w", value, err)
	}
	if min < 0 || max < min {
		return Range{}, fmt.Errorf("range %q: need 0 <= min <= max", value)
	}
	return Range{Min: min, Max: max}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so ranges can be read
// straight from environment variables.
func (r *Range) UnmarshalText(text []byte) error {
	parsed, err := ParseRange(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Range) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Ranges bounds every variable-length collection the generator produces.
type Ranges struct {
	RunsPerBuild Range
	Runs         Range
	StatusEvents Range
	Artifacts    Range
	Tests        Range
	TestResults  Range
	Tags         Range
	TagDevices   Range
	Targets      Range
	DeviceGroups Range
	DeviceTags   Range
	DockerApps   Range
	Sentences    Range
}

// DefaultRanges mirrors the bounds the faker API has always served.
func DefaultRanges() Ranges {
	return Ranges{
		RunsPerBuild: R(2, 6),
		Runs:         R(0, 60),
		StatusEvents: R(0, 10),
		Artifacts:    R(0, 15),
		Tests:        R(0, 15),
		TestResults:  R(0, 10),
		Tags:         R(1, 7),
		TagDevices:   R(1, 10),
		Targets:      R(1, 10),
		DeviceGroups: R(1, 7),
		DeviceTags:   R(1, 6),
		DockerApps:   R(1, 6),
		Sentences:    R(1, 30),
	}
}

func (r Ranges) normalize() Ranges {
	return Ranges{
		RunsPerBuild: r.RunsPerBuild.normalize(),
		Runs:         r.Runs.normalize(),
		StatusEvents: r.StatusEvents.normalize(),
		Artifacts:    r.Artifacts.normalize(),
		Tests:        r.Tests.normalize(),
		TestResults:  r.TestResults.normalize(),
		Tags:         r.Tags.normalize(),
		TagDevices:   r.TagDevices.normalize(),
		Targets:      r.Targets.normalize(),
		DeviceGroups: r.DeviceGroups.normalize(),
		DeviceTags:   r.DeviceTags.normalize(),
		DockerApps:   r.DockerApps.normalize(),
		Sentences:    r.Sentences.normalize(),
	}
}
