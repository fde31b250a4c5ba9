package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/host"
	"github.com/roach88/hookrt/internal/ir"
	"github.com/roach88/hookrt/internal/store"
)

// AssertionError is returned when an assertion fails.
// It carries the document so a failure can be read without re-running.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	HTML     string // Container HTML when the assertion ran
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.HTML != "" {
		fmt.Fprintf(&buf, "\nDocument:\n  %s\n", e.HTML)
	}
	return buf.String()
}

// AssertionContext holds what assertions inspect.
type AssertionContext struct {
	Ctx     context.Context
	Doc     *host.Document
	Root    *engine.Root
	Store   *store.Store
	Session string

	// StoreSize is captured before teardown; Root.Store() is empty after.
	StoreSize int
	Trace     []ir.TraceEvent
}

// EvaluateAssertions checks each assertion and returns the failure
// messages.
func EvaluateAssertions(assertions []Assertion, actx *AssertionContext) []string {
	var errors []string
	for i, a := range assertions {
		if err := evaluate(a, actx); err != nil {
			errors = append(errors, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return errors
}

func evaluate(a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertTextEquals:
		return assertTextEquals(actx.Doc, a)
	case AssertHTMLContains:
		return assertHTMLContains(actx.Doc, a)
	case AssertCount:
		return assertCount(actx.Doc, a)
	case AssertStoreSize:
		return assertStoreSize(actx, a)
	case AssertTraceCount:
		return assertTraceCount(actx.Trace, a)
	case AssertNoLeaks:
		return assertNoLeaks(actx)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

// assertTextEquals compares the text content of the first match.
func assertTextEquals(doc *host.Document, a Assertion) error {
	n, err := doc.Query(a.Selector)
	if err != nil {
		return err
	}
	if n == nil {
		return &AssertionError{
			Type:     AssertTextEquals,
			Expected: fmt.Sprintf("%s with text %q", a.Selector, a.Value),
			Actual:   "no matching element",
			HTML:     doc.Body(),
		}
	}
	if got := doc.Text(n); got != a.Value {
		return &AssertionError{
			Type:     AssertTextEquals,
			Expected: fmt.Sprintf("%q", a.Value),
			Actual:   fmt.Sprintf("%q", got),
			HTML:     doc.Body(),
		}
	}
	return nil
}

func assertHTMLContains(doc *host.Document, a Assertion) error {
	body := doc.Body()
	if !strings.Contains(body, a.Value) {
		return &AssertionError{
			Type:     AssertHTMLContains,
			Expected: fmt.Sprintf("document containing %q", a.Value),
			Actual:   "not found",
			HTML:     body,
		}
	}
	return nil
}

func assertCount(doc *host.Document, a Assertion) error {
	all, err := doc.QueryAll(a.Selector)
	if err != nil {
		return err
	}
	if got := len(all); got != a.Count {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d elements matching %s", a.Count, a.Selector),
			Actual:   fmt.Sprintf("%d elements", got),
			HTML:     doc.Body(),
		}
	}
	return nil
}

func assertStoreSize(actx *AssertionContext, a Assertion) error {
	if actx.StoreSize != a.Count {
		return &AssertionError{
			Type:     AssertStoreSize,
			Expected: fmt.Sprintf("%d hook store entries", a.Count),
			Actual:   fmt.Sprintf("%d entries", actx.StoreSize),
		}
	}
	return nil
}

// assertTraceCount counts events of a kind, optionally restricted to one
// component.
func assertTraceCount(trace []ir.TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if string(ev.Kind) != a.Kind {
			continue
		}
		if a.Component != "" && ev.Component != a.Component {
			continue
		}
		count++
	}

	if count != a.Count {
		what := a.Kind
		if a.Component != "" {
			what += " of " + a.Component
		}
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, what),
			Actual:   fmt.Sprintf("%d occurrences", count),
		}
	}
	return nil
}

// assertNoLeaks checks the state left behind by teardown.
func assertNoLeaks(actx *AssertionContext) error {
	var leaks []string
	if n := actx.Root.Store().Len(); n != 0 {
		leaks = append(leaks, fmt.Sprintf("%d hook store entries", n))
	}
	if n := actx.Doc.Listeners(); n != 0 {
		leaks = append(leaks, fmt.Sprintf("%d listeners", n))
	}
	if body := actx.Doc.Body(); body != "" {
		leaks = append(leaks, fmt.Sprintf("container not empty: %s", body))
	}
	live, err := actx.Store.LiveInstances(actx.Ctx, actx.Session)
	if err != nil {
		return fmt.Errorf("read live instances: %w", err)
	}
	if len(live) > 0 {
		leaks = append(leaks, fmt.Sprintf("instances never unmounted: %v", live))
	}

	if len(leaks) > 0 {
		return &AssertionError{
			Type:     AssertNoLeaks,
			Expected: "nothing left after unmount",
			Actual:   strings.Join(leaks, "; "),
		}
	}
	return nil
}
