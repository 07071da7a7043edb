package fixtures

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRunInvariants(t *testing.T, run Run) {
	t.Helper()
	assert.Contains(t, RunStatuses(), run.Status)
	assert.Equal(t, run.URL+"/console.log", run.LogURL)
	if run.Completed != nil {
		assert.NotNil(t, run.Created, "completed without created")
	}
	assert.Equal(t, run.HostTag != "", run.Tests != "", "host_tag and tests travel together")
	if run.Tests != "" {
		assert.Equal(t, run.URL+"/tests/", run.Tests)
		assert.Contains(t, HostTags(), run.HostTag)
	}
}

func TestRunOptionalFields(t *testing.T) {
	g := newTestGenerator(21)
	withHostTag := 0
	for range 300 {
		run := g.Run(RunParams{URL: "https://x/runs", Name: "unit-test", History: true})
		assertRunInvariants(t, run)
		require.NotNil(t, run.Created)
		require.NotNil(t, run.Completed)
		if run.HostTag != "" {
			withHostTag++
		}

		bare := g.Run(RunParams{URL: "https://x/runs", Name: "flake8"})
		assertRunInvariants(t, bare)
		assert.Nil(t, bare.Created)
		assert.Nil(t, bare.Completed)
	}
	// Coin flip: both outcomes must show up.
	assert.Greater(t, withHostTag, 0)
	assert.Less(t, withHostTag, 300)
}

func TestRunDetail(t *testing.T) {
	g := newTestGenerator(22)
	for range 100 {
		run := g.RunDetail(RunParams{URL: "https://x/builds/1/runs", Name: "build-amd64", History: true})
		assertRunInvariants(t, run.Run)
		assert.Equal(t, "https://x/builds/1/runs/build-amd64", run.URL)
		assert.NotNil(t, run.Artifacts)
		assert.LessOrEqual(t, len(run.Artifacts), 15)
		for _, a := range run.Artifacts {
			assert.True(t, strings.HasPrefix(a, run.URL+"/"))
		}
		assert.NotNil(t, run.StatusEvents)
		assert.NotEmpty(t, run.WorkerName)
	}
}

func TestRunsCounts(t *testing.T) {
	g := newTestGenerator(23)
	for range 100 {
		embedded := g.Runs("https://x/runs", g.Ranges().RunsPerBuild, false)
		assert.GreaterOrEqual(t, len(embedded), 2)
		assert.LessOrEqual(t, len(embedded), 6)

		listing := g.RunList("https://x/runs", true)
		assert.LessOrEqual(t, len(listing), 60)
		for _, run := range listing {
			assertRunInvariants(t, run)
		}
	}
}

func TestStatusEventsRange(t *testing.T) {
	g := newTestGenerator(24)
	for range 100 {
		events := g.StatusEvents(R(3, 10))
		assert.GreaterOrEqual(t, len(events), 3)
		assert.LessOrEqual(t, len(events), 10)
		for _, e := range events {
			assert.Contains(t, RunStatuses(), e.Status)
			assert.False(t, e.Time.After(fixedNow))
		}
	}
}

func TestArtifactText(t *testing.T) {
	g := newTestGenerator(25)
	text := g.ArtifactText()
	assert.NotEmpty(t, text)
	assert.True(t, strings.HasSuffix(text, "."))
}
