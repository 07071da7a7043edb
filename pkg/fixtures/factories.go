package fixtures

import "time"

// Tag is a factory release channel.
type Tag struct {
	Name            string   `json:"name" yaml:"name"`
	DevicesTotal    int      `json:"devices-total" yaml:"devices-total"`
	DevicesOnline   int      `json:"devices-online" yaml:"devices-online"`
	DevicesOnLatest int      `json:"devices-on-latest" yaml:"devices-on-latest"`
	LatestTarget    int      `json:"latest-target" yaml:"latest-target"`
	Targets         []Target `json:"targets" yaml:"targets"`
}

// Target counts the devices of a tag running one target version.
type Target struct {
	Devices int `json:"devices" yaml:"devices"`
	Version int `json:"version" yaml:"version"`
}

// DeviceGroup is a named set of devices within a factory.
type DeviceGroup struct {
	ID          int       `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	CreatedAt   time.Time `json:"created-at" yaml:"created-at"`
}

// WaveStatus is the state of a rollout wave.
type WaveStatus string

const (
	WaveActive   WaveStatus = "active"
	WaveComplete WaveStatus = "complete"
	WaveCanceled WaveStatus = "canceled"
)

// Wave is a staged rollout of a target version.
type Wave struct {
	Name       string     `json:"name" yaml:"name"`
	Version    int        `json:"version" yaml:"version"`
	Tag        string     `json:"tag" yaml:"tag"`
	CreatedAt  time.Time  `json:"created-at" yaml:"created-at"`
	FinishedAt time.Time  `json:"finished-at" yaml:"finished-at"`
	Status     WaveStatus `json:"status" yaml:"status"`
}

// Tags builds the release channels of a factory.
func (g *Generator) Tags() []Tag {
	tags := make([]Tag, g.IntIn(g.ranges.Tags))
	for i := range tags {
		total := g.IntIn(g.ranges.TagDevices)
		// Target versions are drawn from [1, latest], so latest starts at 1.
		latest := g.Int(1, MaxNumber)
		tags[i] = Tag{
			Name:            g.tagName(),
			DevicesTotal:    total,
			DevicesOnline:   g.Int(0, total),
			DevicesOnLatest: g.Int(0, total),
			LatestTarget:    latest,
			Targets:         g.targets(latest, total),
		}
	}
	return tags
}

func (g *Generator) tagName() string {
	switch g.src.IntN(4) {
	case 0:
		return ""
	case 1:
		return "promoted"
	case 2:
		return "postmerge"
	default:
		return g.Word()
	}
}

func (g *Generator) targets(latest, devices int) []Target {
	targets := make([]Target, g.IntIn(g.ranges.Targets))
	for i := range targets {
		targets[i] = Target{
			Devices: g.Int(0, devices),
			Version: g.Int(1, latest),
		}
	}
	return targets
}

// DeviceGroups builds the device groups of a factory.
func (g *Generator) DeviceGroups() []DeviceGroup {
	groups := make([]DeviceGroup, g.IntIn(g.ranges.DeviceGroups))
	for i := range groups {
		groups[i] = DeviceGroup{
			ID:          g.Number(),
			Name:        g.Word(),
			Description: g.Phrase(g.Int(1, 3)),
			CreatedAt:   g.PastDate(),
		}
	}
	return groups
}

// NewDeviceGroup returns a freshly created group echoing name and description.
func (g *Generator) NewDeviceGroup(name, description string) DeviceGroup {
	return DeviceGroup{
		ID:          g.Number(),
		Name:        name,
		Description: description,
		CreatedAt:   g.now().UTC(),
	}
}

// ActiveWave returns the wave named name as just rolled out.
func (g *Generator) ActiveWave(name string) Wave { return g.wave(name, WaveActive) }

// CompleteWave returns the wave named name as completed.
func (g *Generator) CompleteWave(name string) Wave { return g.wave(name, WaveComplete) }

// CanceledWave returns the wave named name as canceled.
func (g *Generator) CanceledWave(name string) Wave { return g.wave(name, WaveCanceled) }

func (g *Generator) wave(name string, status WaveStatus) Wave {
	return Wave{
		Name:       name,
		Version:    g.Number(),
		Tag:        g.Word(),
		CreatedAt:  g.PastDate(),
		FinishedAt: g.FutureDate(),
		Status:     status,
	}
}
