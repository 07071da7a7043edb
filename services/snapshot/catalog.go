// Package snapshot generates fixture documents outside of HTTP and bundles
// them into checksummed tar.zst archives.
package snapshot

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fiofaker/pkg/fixtures"
)

// ErrUnknownEntity is returned for an entity name the catalog does not know.
var ErrUnknownEntity = errors.New("unknown entity")

const defaultRootURL = "https://example.net/projects"

// Params identifies the fixtures to generate. Zero values take defaults.
type Params struct {
	RootURL string
	Project string
	Build   int
	Run     string
	Test    string
	Limit   int
	Factory string
	Owner   string
	Name    string
	Tag     string
	Wave    string
}

func (p Params) withDefaults() Params {
	p.RootURL = strings.TrimRight(p.RootURL, "/")
	if p.RootURL == "" {
		p.RootURL = defaultRootURL
	}
	if p.Project == "" {
		p.Project = "demo"
	}
	if p.Build <= 0 {
		p.Build = 1
	}
	if p.Run == "" {
		p.Run = "unit-test"
	}
	if p.Test == "" {
		p.Test = "test_smoke"
	}
	if p.Limit <= 0 {
		p.Limit = 25
	}
	if p.Factory == "" {
		p.Factory = "demo-factory"
	}
	if p.Wave == "" {
		p.Wave = "wave-1"
	}
	return p
}

func (p Params) buildsURL() string {
	return fmt.Sprintf("%s/%s/builds", p.RootURL, p.Project)
}

func (p Params) runsURL() string {
	return fmt.Sprintf("%s/%d/runs", p.buildsURL(), p.Build)
}

func (p Params) testsURL() string {
	return fmt.Sprintf("%s/%s/tests", p.runsURL(), p.Run)
}

type generateFunc func(g *fixtures.Generator, p Params) any

var catalog = map[string]generateFunc{
	"builds": func(g *fixtures.Generator, p Params) any {
		return g.Builds(fixtures.BuildListParams{URL: p.buildsURL(), Limit: p.Limit, History: true})
	},
	"build": func(g *fixtures.Generator, p Params) any {
		return g.BuildDetail(fixtures.BuildParams{URL: p.buildsURL(), BuildID: p.Build, History: true})
	},
	"runs": func(g *fixtures.Generator, p Params) any {
		return g.RunList(p.runsURL(), true)
	},
	"run": func(g *fixtures.Generator, p Params) any {
		return g.RunDetail(fixtures.RunParams{URL: p.runsURL(), Name: p.Run, History: true})
	},
	"tests": func(g *fixtures.Generator, p Params) any {
		return g.Tests(p.testsURL())
	},
	"test": func(g *fixtures.Generator, p Params) any {
		return g.TestDetail(fixtures.TestParams{URL: p.testsURL(), Name: p.Test})
	},
	"status-events": func(g *fixtures.Generator, _ Params) any {
		return g.StatusEvents(g.Ranges().StatusEvents)
	},
	"devices": func(g *fixtures.Generator, p Params) any {
		return g.Devices(fixtures.DeviceListParams{
			Limit:   p.Limit,
			Factory: p.Factory,
			Owner:   p.Owner,
			Name:    p.Name,
			Tag:     p.Tag,
		})
	},
	"device": func(g *fixtures.Generator, p Params) any {
		return g.Device(fixtures.DeviceParams{Factory: p.Factory, Owner: p.Owner, Name: p.Name, Tag: p.Tag})
	},
	"tags": func(g *fixtures.Generator, _ Params) any {
		return g.Tags()
	},
	"device-groups": func(g *fixtures.Generator, _ Params) any {
		return g.DeviceGroups()
	},
	"wave": func(g *fixtures.Generator, p Params) any {
		return g.ActiveWave(p.Wave)
	},
}

// Entities lists the entity names Generate accepts, sorted.
func Entities() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generate builds the named entity.
func Generate(g *fixtures.Generator, entity string, p Params) (any, error) {
	if g == nil {
		return nil, errors.New("generator is required")
	}
	fn, ok := catalog[entity]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownEntity, entity, strings.Join(Entities(), ", "))
	}
	return fn(g, p.withDefaults()), nil
}
