package fixtures

import (
	"fmt"
	"strings"
	"time"
)

var baseTargets = []string{
	"cowboy-32-lmp-",
	"cowboy-64-lmp-",
	"og-32-lmp-",
	"og-64-lmp-",
	"raspberrypi3-64-lmp-",
	"raspberrypi4-64-lmp-",
}

var baseDeviceNames = []string{"cowbody-", "og-"}

// Device is a fleet managed unit.
type Device struct {
	UUID        string      `json:"uuid" yaml:"uuid"`
	Owner       string      `json:"owner" yaml:"owner"`
	Factory     string      `json:"factory" yaml:"factory"`
	Name        string      `json:"name" yaml:"name"`
	CreatedAt   time.Time   `json:"created-at" yaml:"created-at"`
	LastSeen    time.Time   `json:"last-seen" yaml:"last-seen"`
	OstreeHash  string      `json:"ostree-hash" yaml:"ostree-hash"`
	TargetName  string      `json:"target-name" yaml:"target-name"`
	DeviceTags  []string    `json:"device-tags" yaml:"device-tags"`
	DockerApps  []string    `json:"docker-apps" yaml:"docker-apps"`
	NetworkInfo NetworkInfo `json:"network-info" yaml:"network-info"`
	UpToDate    bool        `json:"up-to-date" yaml:"up-to-date"`
}

// NetworkInfo is the network identity a device reports.
type NetworkInfo struct {
	Hostname  string `json:"hostname" yaml:"hostname"`
	LocalIPv4 string `json:"local_ipv4" yaml:"local_ipv4"`
	MAC       string `json:"mac" yaml:"mac"`
}

// DeviceParams shapes one device. Owner falls back to a generated id. Name
// and Tag are caller filters the generated device is made to satisfy.
type DeviceParams struct {
	Factory string
	Owner   string
	Name    string
	Tag     string
}

// DeviceListParams shapes a device listing of exactly Limit devices.
type DeviceListParams struct {
	Limit   int
	Factory string
	Owner   string
	Name    string
	Tag     string
}

// Device builds one device matching p.
func (g *Generator) Device(p DeviceParams) Device {
	owner := p.Owner
	if owner == "" {
		owner = g.OwnerID()
	}
	return Device{
		UUID:       g.UUID(),
		Owner:      owner,
		Factory:    p.Factory,
		Name:       g.deviceName(p.Name),
		CreatedAt:  g.RecentDate(g.Int(30, 120)),
		LastSeen:   g.RecentDate(1),
		OstreeHash: g.OstreeHash(),
		TargetName: g.TargetName(),
		DeviceTags: g.deviceTags(p.Tag),
		DockerApps: g.wordList(g.IntIn(g.ranges.DockerApps)),
		NetworkInfo: NetworkInfo{
			Hostname:  fmt.Sprintf("%s-%d", g.Words(2), g.Int(0, 99)),
			LocalIPv4: g.IPv4(),
			MAC:       g.MAC(),
		},
		UpToDate: g.Bool(),
	}
}

// Devices builds exactly p.Limit devices sharing one factory and owner.
func (g *Generator) Devices(p DeviceListParams) []Device {
	devices := make([]Device, max(p.Limit, 0))
	for i := range devices {
		devices[i] = g.Device(DeviceParams{
			Factory: p.Factory,
			Owner:   p.Owner,
			Name:    p.Name,
			Tag:     p.Tag,
		})
	}
	return devices
}

// OwnerID returns a user-id-like string of eight hex digits of the current
// unix time followed by sixteen random hex digits.
func (g *Generator) OwnerID() string {
	return fmt.Sprintf("%08x%s", g.now().Unix(), g.Hash(1, 16, HexAlphabet))
}

// TargetName returns a versioned target name such as og-64-lmp-42.
func (g *Generator) TargetName() string {
	return fmt.Sprintf("%s%d", pick(g, baseTargets), g.Int(1, 99))
}

func (g *Generator) deviceName(filter string) string {
	prefix := pick(g, baseDeviceNames)
	filter = strings.TrimSpace(filter)
	if filter != "" {
		return fmt.Sprintf("%s%s-%s-%d", prefix, filter, g.Words(1), g.Int(0, 100))
	}
	return fmt.Sprintf("%s%s-%d", prefix, g.Words(1), g.Int(0, 100))
}

func (g *Generator) deviceTags(filter string) []string {
	tags := g.wordList(g.IntIn(g.ranges.DeviceTags))
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return tags
	}
	return append([]string{filter}, tags...)
}

func (g *Generator) wordList(n int) []string {
	words := make([]string, max(n, 0))
	for i := range words {
		words[i] = g.Word()
	}
	return words
}
