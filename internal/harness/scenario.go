package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/hookrt/internal/demo"
	"github.com/roach88/hookrt/internal/ir"
)

// Scenario drives one demo app through a sequence of host events.
type Scenario struct {
	// Name identifies the scenario. It is also the session id and the
	// golden file name.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// App names the demo app to mount (see demo.Names).
	App string `yaml:"app"`

	// MaxSteps bounds the tasks a single flush may run. Zero uses the
	// engine default.
	MaxSteps int `yaml:"max_steps,omitempty"`

	// Steps are executed in order; each is followed by a flush.
	Steps []Step `yaml:"steps"`

	// Assertions are checked once all steps have run.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one host interaction. Exactly one of Click, Input, Submit and
// Flush is set.
type Step struct {
	Click  string `yaml:"click,omitempty"`
	Input  string `yaml:"input,omitempty"`
	Submit string `yaml:"submit,omitempty"`
	Flush  bool   `yaml:"flush,omitempty"`

	// Value is the text typed by an input step.
	Value string `yaml:"value,omitempty"`

	// Expect is checked right after the step's flush.
	Expect []Assertion `yaml:"expect,omitempty"`
}

// Label describes the step for snapshots and error messages.
func (s Step) Label() string {
	switch {
	case s.Click != "":
		return "click " + s.Click
	case s.Input != "":
		return fmt.Sprintf("input %s %q", s.Input, s.Value)
	case s.Submit != "":
		return "submit " + s.Submit
	default:
		return "flush"
	}
}

// Assertion checks the document, the hook store or the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Selector is used by text_equals and count.
	Selector string `yaml:"selector,omitempty"`

	// Value is the expected text (text_equals) or fragment (html_contains).
	Value string `yaml:"value,omitempty"`

	// Count is the expected number for count, store_size and trace_count.
	Count int `yaml:"count,omitempty"`

	// Kind and Component filter trace_count.
	Kind      string `yaml:"kind,omitempty"`
	Component string `yaml:"component,omitempty"`
}

// Assertion type constants.
const (
	AssertTextEquals   = "text_equals"
	AssertHTMLContains = "html_contains"
	AssertCount        = "count"
	AssertStoreSize    = "store_size"
	AssertTraceCount   = "trace_count"
	AssertNoLeaks      = "no_leaks"
)

// afterTeardown reports whether the assertion is checked after unmount.
func (a Assertion) afterTeardown() bool {
	return a.Type == AssertTraceCount || a.Type == AssertNoLeaks
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so that typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.App == "" {
		return fmt.Errorf("app is required")
	}
	if _, err := demo.Lookup(s.App); err != nil {
		return err
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(fmt.Sprintf("assertions[%d]", i), a); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, s Step) error {
	actions := 0
	for _, set := range []bool{s.Click != "", s.Input != "", s.Submit != "", s.Flush} {
		if set {
			actions++
		}
	}
	if actions != 1 {
		return fmt.Errorf("steps[%d]: exactly one of click, input, submit, flush is required", index)
	}
	if s.Value != "" && s.Input == "" {
		return fmt.Errorf("steps[%d]: value is only valid on input steps", index)
	}
	for j, a := range s.Expect {
		where := fmt.Sprintf("steps[%d].expect[%d]", index, j)
		if a.afterTeardown() {
			return fmt.Errorf("%s: %s is only valid in assertions", where, a.Type)
		}
		if err := validateAssertion(where, a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(where string, a Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("%s: type is required", where)
	}

	switch a.Type {
	case AssertTextEquals:
		if a.Selector == "" {
			return fmt.Errorf("%s: selector is required for text_equals", where)
		}
	case AssertHTMLContains:
		if a.Value == "" {
			return fmt.Errorf("%s: value is required for html_contains", where)
		}
	case AssertCount:
		if a.Selector == "" {
			return fmt.Errorf("%s: selector is required for count", where)
		}
		if a.Count < 0 {
			return fmt.Errorf("%s: count must be non-negative", where)
		}
	case AssertStoreSize:
		if a.Count < 0 {
			return fmt.Errorf("%s: count must be non-negative", where)
		}
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("%s: kind is required for trace_count", where)
		}
		if !ir.ValidTraceKinds[ir.TraceKind(a.Kind)] {
			return fmt.Errorf("%s: unknown trace kind %q", where, a.Kind)
		}
		if a.Count < 0 {
			return fmt.Errorf("%s: count must be non-negative", where)
		}
	case AssertNoLeaks:
	default:
		return fmt.Errorf("%s: unknown assertion type %q", where, a.Type)
	}
	return nil
}
