package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// DeploymentFixture builds per-year deployment files for tests. Rows
// carry the timestamp split across yyyy/mm/dd/hh columns plus one
// median column per requested field, matching the raw sensor exports.
type DeploymentFixture struct {
	fields []string
	rows   []string
}

// NewDeploymentFixture creates a fixture with median columns for the
// given fields, in the given order.
func NewDeploymentFixture(fields ...string) *DeploymentFixture {
	return &DeploymentFixture{fields: fields}
}

// AddRow appends an observation row. Values correspond positionally to
// the fixture's fields; use an empty string for a missing value.
func (f *DeploymentFixture) AddRow(ts time.Time, values ...string) *DeploymentFixture {
	cells := []string{
		fmt.Sprintf("%d", ts.Year()),
		fmt.Sprintf("%d", int(ts.Month())),
		fmt.Sprintf("%d", ts.Day()),
		fmt.Sprintf("%d", ts.Hour()),
	}
	cells = append(cells, values...)
	f.rows = append(f.rows, strings.Join(cells, ","))
	return f
}

// Content renders the fixture as CSV text.
func (f *DeploymentFixture) Content() string {
	headers := []string{"yyyy", "mm", "dd", "hh"}
	for _, field := range f.fields {
		headers = append(headers, field+"_median")
	}
	lines := append([]string{strings.Join(headers, ",")}, f.rows...)
	return strings.Join(lines, "\n") + "\n"
}

// WriteYearFile writes the fixture into dir under the standard
// per-year file name and returns the file path.
func (f *DeploymentFixture) WriteYearFile(t *testing.T, dir string, year int) string {
	t.Helper()

	path := filepath.Join(dir, fmt.Sprintf("casco_%d.csv", year))
	if err := os.WriteFile(path, []byte(f.Content()), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}
