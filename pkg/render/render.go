// Package render renders the YAML documents served as build definitions.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

const (
	// ProjectTemplate is the project definition of a build.
	ProjectTemplate = "project.yml.tmpl"
	// RunTemplate is the definition of a single run.
	RunTemplate = "run.yml.tmpl"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Engine renders templates embedded in the package.
type Engine struct {
	templates *template.Template
}

// Vars are the identifiers a definition is rendered with.
type Vars struct {
	Project string
	Build   string
	Run     string
}

// New initialises an Engine by parsing all embedded templates.
func New() (*Engine, error) {
	t, err := template.New("render").Option("missingkey=error").ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Engine{templates: t}, nil
}

// Render executes the named template with the provided data and returns the rendered string.
func (e *Engine) Render(name string, data any) (string, error) {
	if e == nil || e.templates == nil {
		return "", fmt.Errorf("nil engine")
	}

	buf := bytes.NewBuffer(nil)
	if err := e.templates.ExecuteTemplate(buf, name, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Project renders the project definition for a build.
func (e *Engine) Project(project, build string) (string, error) {
	return e.Render(ProjectTemplate, Vars{Project: project, Build: build})
}

// Run renders the definition of one run of a build.
func (e *Engine) Run(project, build, run string) (string, error) {
	return e.Render(RunTemplate, Vars{Project: project, Build: build, Run: run})
}
