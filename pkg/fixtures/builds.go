package fixtures

import (
	"encoding/json"
	"fmt"
	"time"
)

const triggerMergeRequest = "merge-request"

// Build is a CI build made of runs.
type Build struct {
	BuildID     int        `json:"build_id" yaml:"build_id"`
	URL         string     `json:"url" yaml:"url"`
	Status      Status     `json:"status" yaml:"status"`
	Runs        []Run      `json:"runs" yaml:"runs"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	TriggerName string     `json:"trigger_name,omitempty" yaml:"trigger_name,omitempty"`
	Created     *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Completed   *time.Time `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// BuildDetail is a build fetched on its own.
type BuildDetail struct {
	Build        `yaml:",inline"`
	StatusEvents []StatusEvent `json:"status_events" yaml:"status_events"`
	RunsURL      string        `json:"runs_url" yaml:"runs_url"`
	Reason       string        `json:"reason" yaml:"reason"`
	Annotation   *string       `json:"annotation" yaml:"annotation"`
}

// BuildParams identifies a build. URL is the builds collection; the build URL
// is URL/BuildID.
type BuildParams struct {
	URL     string
	BuildID int
	History bool
}

// BuildListParams sizes a builds listing.
type BuildListParams struct {
	URL     string
	Limit   int
	History bool
}

// Build builds a build summary with 2 to 6 embedded runs by default.
func (g *Generator) Build(p BuildParams) Build {
	url := fmt.Sprintf("%s/%d", p.URL, p.BuildID)
	build := Build{
		BuildID: p.BuildID,
		URL:     url,
		Status:  g.BuildStatus(),
		Runs:    g.Runs(url+"/runs", g.ranges.RunsPerBuild, p.History),
	}
	if p.History {
		created := g.PastDate()
		build.Created = &created
	}
	if g.Bool() {
		completed := g.RecentDate(g.Int(30, 120))
		build.TriggerName = triggerMergeRequest
		build.Completed = &completed
		build.Name = g.Word()
	}
	return build
}

// BuildDetail builds a build with its status history, runs link, trigger
// reason and annotation.
func (g *Generator) BuildDetail(p BuildParams) BuildDetail {
	build := g.Build(p)
	return BuildDetail{
		Build:        build,
		StatusEvents: g.StatusEvents(g.ranges.StatusEvents),
		RunsURL:      build.URL + "/runs",
		Reason:       fmt.Sprintf("GitHub PR(%d): pull_request", g.Number()),
		Annotation:   g.annotation(build.Status),
	}
}

// Builds builds p.Limit builds. Build ids are drawn independently and may
// repeat.
func (g *Generator) Builds(p BuildListParams) []Build {
	builds := make([]Build, max(p.Limit, 0))
	for i := range builds {
		builds[i] = g.Build(BuildParams{URL: p.URL, BuildID: g.Number(), History: p.History})
	}
	return builds
}

type annotationDoc struct {
	Name    string `json:"name"`
	SHA     string `json:"sha"`
	URL     string `json:"url"`
	Details string `json:"details"`
}

// annotation is nil unless status is PROMOTED. Promoted builds get one of a
// JSON document, a markdown snippet, an alphanumeric blob or nil.
func (g *Generator) annotation(status Status) *string {
	if status != StatusPromoted {
		return nil
	}
	var text string
	switch g.src.IntN(4) {
	case 0:
		doc, err := json.Marshal(annotationDoc{
			Name:    g.Word(),
			SHA:     g.Hash(1, 64, HexAlphabet),
			URL:     g.URL(),
			Details: "## Highlights\n " + g.Lines(g.Int(0, 5)) + "\n",
		})
		if err != nil {
			return nil
		}
		text = string(doc)
	case 1:
		text = fmt.Sprintf("###Random Markdown\n%s\n%s", g.Lines(g.Int(0, 5)), g.Lines(g.Int(0, 5)))
	case 2:
		text = g.AlphaNumeric(g.Int(50, 500))
	default:
		return nil
	}
	return &text
}
