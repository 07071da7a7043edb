package fixtures

import (
	"fmt"
	"time"
)

// Run is one host specific execution unit of a build.
type Run struct {
	Name      string     `json:"name" yaml:"name"`
	URL       string     `json:"url" yaml:"url"`
	Status    Status     `json:"status" yaml:"status"`
	LogURL    string     `json:"log_url" yaml:"log_url"`
	HostTag   string     `json:"host_tag,omitempty" yaml:"host_tag,omitempty"`
	Tests     string     `json:"tests,omitempty" yaml:"tests,omitempty"`
	Created   *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Completed *time.Time `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// RunDetail is a run fetched on its own.
type RunDetail struct {
	Run          `yaml:",inline"`
	Artifacts    []string      `json:"artifacts" yaml:"artifacts"`
	StatusEvents []StatusEvent `json:"status_events" yaml:"status_events"`
	WorkerName   string        `json:"worker_name" yaml:"worker_name"`
}

// StatusEvent is one entry of a status history. Events are not ordered and
// need not agree with the owning entity's status.
type StatusEvent struct {
	Time   time.Time `json:"time" yaml:"time"`
	Status Status    `json:"status" yaml:"status"`
}

// RunParams identifies a run. URL is the runs collection the run lives in; the
// run URL is URL/Name.
type RunParams struct {
	URL     string
	Name    string
	History bool
}

// Run builds a run summary.
func (g *Generator) Run(p RunParams) Run {
	url := fmt.Sprintf("%s/%s", p.URL, p.Name)
	run := Run{
		Name:   p.Name,
		URL:    url,
		Status: g.RunStatus(),
		LogURL: url + "/console.log",
	}
	if g.Bool() {
		run.HostTag = g.HostTag()
		run.Tests = url + "/tests/"
	}
	if p.History {
		created := g.PastDate()
		completed := g.RecentDate(g.Int(30, 120))
		run.Created = &created
		run.Completed = &completed
	}
	return run
}

// RunDetail builds a run with its artifacts, status history and worker.
func (g *Generator) RunDetail(p RunParams) RunDetail {
	run := g.Run(p)
	return RunDetail{
		Run:          run,
		Artifacts:    g.runArtifacts(run.URL),
		StatusEvents: g.StatusEvents(g.ranges.StatusEvents),
		WorkerName:   g.Word(),
	}
}

// Runs builds between count.Min and count.Max runs under url. Names are drawn
// independently and may repeat.
func (g *Generator) Runs(url string, count Range, history bool) []Run {
	runs := make([]Run, g.IntIn(count.normalize()))
	for i := range runs {
		runs[i] = g.Run(RunParams{URL: url, Name: g.Word(), History: history})
	}
	return runs
}

// RunList builds the standalone runs listing of a build.
func (g *Generator) RunList(url string, history bool) []Run {
	return g.Runs(url, g.ranges.Runs, history)
}

// StatusEvents builds an unsorted status history.
func (g *Generator) StatusEvents(count Range) []StatusEvent {
	events := make([]StatusEvent, g.IntIn(count.normalize()))
	for i := range events {
		events[i] = StatusEvent{
			Time:   g.RecentDate(g.Int(30, 120)),
			Status: g.RunStatus(),
		}
	}
	return events
}

func (g *Generator) runArtifacts(url string) []string {
	artifacts := make([]string, g.IntIn(g.ranges.Artifacts))
	for i := range artifacts {
		artifacts[i] = fmt.Sprintf("%s/%s", url, g.Word())
	}
	return artifacts
}

// ArtifactText returns the plain text body served for a run artifact.
func (g *Generator) ArtifactText() string {
	return g.Sentences(g.IntIn(g.ranges.Sentences))
}
