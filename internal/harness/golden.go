package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatSnapshots renders snapshots as the golden file body: a header line
// per step followed by the container HTML.
func FormatSnapshots(snapshots []Snapshot) []byte {
	var b strings.Builder
	for _, s := range snapshots {
		fmt.Fprintf(&b, "== %d %s\n%s\n", s.Step, s.Label, s.HTML)
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshots against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The returned result lets callers check assertions as well; a snapshot
// mismatch fails t through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result's snapshots against the golden
// file for name.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, FormatSnapshots(result.Snapshots))
}
