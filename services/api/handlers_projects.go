package api

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fiofaker/pkg/fixtures"
)

type buildList struct {
	Builds []fixtures.Build `json:"builds" yaml:"builds"`
	Page   int              `json:"page" yaml:"page"`
	Limit  int              `json:"limit" yaml:"limit"`
	Pages  int              `json:"pages" yaml:"pages"`
	Total  int              `json:"total" yaml:"total"`
	Next   *string          `json:"next" yaml:"next"`
}

func (a *API) buildsURL(r *http.Request) string {
	return fmt.Sprintf("%s/%s/builds", a.config.RootURL, projectFrom(r.Context()))
}

func (a *API) runsURL(r *http.Request) string {
	return fmt.Sprintf("%s/%s/runs", a.buildsURL(r), chi.URLParam(r, "build"))
}

func (a *API) testsURL(r *http.Request) string {
	return fmt.Sprintf("%s/%s/tests", a.runsURL(r), chi.URLParam(r, "run"))
}

func (a *API) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	pg, err := a.paging(r, defaultBuildLimit, totalBuilds)
	if err != nil {
		respondError(w, r, err)
		return
	}

	url := a.buildsURL(r)
	builds := a.gen.Builds(fixtures.BuildListParams{URL: url, Limit: pg.Limit, History: true})
	a.fixtures.add("build", len(builds))

	var next *string
	if pg.Page < pg.Pages {
		link := fmt.Sprintf("%s/?page=%d&limit=%d", url, pg.Page+1, pg.Limit)
		next = &link
	}

	respond(w, r, http.StatusOK, success(buildList{
		Builds: builds,
		Page:   pg.Page,
		Limit:  pg.Limit,
		Pages:  pg.Pages,
		Total:  totalBuilds,
		Next:   next,
	}))
}

func (a *API) handleLatestBuild(w http.ResponseWriter, r *http.Request) {
	a.respondBuild(w, r, a.gen.Number())
}

func (a *API) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "build"))
	if err != nil || id < 0 {
		respondError(w, r, fmt.Errorf("%w: build %q", ErrNotFound, chi.URLParam(r, "build")))
		return
	}
	a.respondBuild(w, r, id)
}

func (a *API) respondBuild(w http.ResponseWriter, r *http.Request, id int) {
	build := a.gen.BuildDetail(fixtures.BuildParams{URL: a.buildsURL(r), BuildID: id, History: true})
	a.fixtures.add("build", 1)
	respond(w, r, http.StatusOK, success(map[string]any{"build": build}))
}

func (a *API) handleProjectDefinition(w http.ResponseWriter, r *http.Request) {
	body, err := a.renderer.Project(projectFrom(r.Context()), chi.URLParam(r, "build"))
	if err != nil {
		respondError(w, r, fmt.Errorf("render project definition: %w", err))
		return
	}
	respondText(w, contentTypeDef, body)
}

func (a *API) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs := a.gen.RunList(a.runsURL(r), true)
	a.fixtures.add("run", len(runs))
	respond(w, r, http.StatusOK, success(map[string]any{"runs": runs}))
}

func (a *API) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run := a.gen.RunDetail(fixtures.RunParams{URL: a.runsURL(r), Name: chi.URLParam(r, "run"), History: true})
	a.fixtures.add("run", 1)
	respond(w, r, http.StatusOK, success(map[string]any{"run": run}))
}

func (a *API) handleListTests(w http.ResponseWriter, r *http.Request) {
	tests := a.gen.Tests(a.testsURL(r))
	a.fixtures.add("test", len(tests))
	respond(w, r, http.StatusOK, success(map[string]any{"tests": tests}))
}

func (a *API) handleGetTest(w http.ResponseWriter, r *http.Request) {
	test := a.gen.TestDetail(fixtures.TestParams{URL: a.testsURL(r), Name: chi.URLParam(r, "test")})
	a.fixtures.add("test", 1)
	respond(w, r, http.StatusOK, success(map[string]any{"test": test}))
}

// handleRunArtifact serves a run definition for YAML artifact names and lorem
// text for everything else.
func (a *API) handleRunArtifact(w http.ResponseWriter, r *http.Request) {
	artifact := chi.URLParam(r, "artifact")
	switch strings.ToLower(path.Ext(artifact)) {
	case ".yml", ".yaml":
		body, err := a.renderer.Run(projectFrom(r.Context()), chi.URLParam(r, "build"), chi.URLParam(r, "run"))
		if err != nil {
			respondError(w, r, fmt.Errorf("render run definition: %w", err))
			return
		}
		respondText(w, contentTypeDef, body)
	default:
		a.fixtures.add("artifact", 1)
		respondText(w, contentTypeText, a.gen.ArtifactText())
	}
}
