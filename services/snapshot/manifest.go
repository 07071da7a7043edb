package snapshot

import "time"

const manifestVersion = "1"

// Manifest describes the contents of a snapshot archive.
type Manifest struct {
	Version   string         `yaml:"version"`
	CreatedAt time.Time      `yaml:"created_at"`
	Project   string         `yaml:"project"`
	Seed      *uint64        `yaml:"seed,omitempty"`
	Files     []ManifestFile `yaml:"files"`
}

// ManifestFile describes a single document within the archive.
type ManifestFile struct {
	Path   string `yaml:"path"`
	Entity string `yaml:"entity"`
	Kind   string `yaml:"kind"`
	Size   int64  `yaml:"size"`
	SHA256 string `yaml:"sha256"`
}

// File returns the entry for path.
func (m Manifest) File(path string) (ManifestFile, bool) {
	for _, f := range m.Files {
		if f.Path == path {
			return f, true
		}
	}
	return ManifestFile{}, false
}
