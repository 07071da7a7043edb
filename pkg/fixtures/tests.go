package fixtures

import (
	"fmt"
	"time"
)

// Test is a single test result belonging to a run.
type Test struct {
	Name    string    `json:"name" yaml:"name"`
	URL     string    `json:"url" yaml:"url"`
	Status  Status    `json:"status" yaml:"status"`
	Context *string   `json:"context" yaml:"context"`
	Created time.Time `json:"created" yaml:"created"`
}

// TestDetail is a test with its individual results.
type TestDetail struct {
	Test    `yaml:",inline"`
	Results []TestResult `json:"results" yaml:"results"`
}

// TestResult is one case reported by a test.
type TestResult struct {
	Name    string  `json:"name" yaml:"name"`
	Context *string `json:"context" yaml:"context"`
	Status  Status  `json:"status" yaml:"status"`
	Output  *string `json:"output" yaml:"output"`
}

// TestParams identifies a test. URL is the tests collection of a run.
type TestParams struct {
	URL  string
	Name string
}

// Test builds a test summary named p.Name.
func (g *Generator) Test(p TestParams) Test {
	return Test{
		Name:    p.Name,
		URL:     fmt.Sprintf("%s/%s", p.URL, p.Name),
		Status:  g.RunStatus(),
		Context: g.NullableWord(),
		Created: g.RecentDate(g.Int(30, 120)),
	}
}

// TestDetail builds a test with its individual results.
func (g *Generator) TestDetail(p TestParams) TestDetail {
	test := g.Test(p)
	results := make([]TestResult, g.IntIn(g.ranges.TestResults))
	for i := range results {
		results[i] = TestResult{
			Name:    g.Word(),
			Context: g.NullableWord(),
			Status:  g.RunStatus(),
			Output:  g.NullableWord(),
		}
	}
	return TestDetail{Test: test, Results: results}
}

// Tests builds the tests listing of a run.
func (g *Generator) Tests(url string) []Test {
	tests := make([]Test, g.IntIn(g.ranges.Tests))
	for i := range tests {
		tests[i] = g.Test(TestParams{URL: url, Name: g.Word()})
	}
	return tests
}
