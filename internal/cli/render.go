package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hookrt/internal/demo"
	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/host"
	"github.com/roach88/hookrt/internal/store"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Actions []string // "click:<sel>", "input:<sel>=<value>", "submit:<sel>"
	TraceDB string
}

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	App       string `json:"app"`
	Session   string `json:"session"`
	HTML      string `json:"html"`
	StoreSize int    `json:"store_size"`
	Actions   int    `json:"actions"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <app>",
		Short: "Render a demo app to HTML",
		Long: `Mount a demo app, apply optional host actions, flush, and print the
resulting HTML.

Actions run in order, each followed by a flush:
  click:<selector>
  input:<selector>=<value>
  submit:<selector>

Apps: ` + strings.Join(demo.Names(), ", ") + `

Examples:
  hookrt render counter
  hookrt render counter --do click:button --do click:button
  hookrt render notes --do 'input:input[name=title]=Hi' --do 'input:textarea=Body' --do submit:form
  hookrt render reducer --trace-db ./trace.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Actions, "do", nil, "host action to apply (repeatable)")
	cmd.Flags().StringVar(&opts.TraceDB, "trace-db", "", "record the trace into this SQLite file (overrides config trace.db)")

	return cmd
}

func runRender(ctx context.Context, opts *RenderOptions, name string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := formatterFor(opts.RootOptions, cmd)

	app, err := demo.Lookup(name)
	if err != nil {
		return WrapExitError(ExitCommandError, "unknown app", err)
	}
	actions, err := parseActions(opts.Actions)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid action", err)
	}

	cfg := opts.Config()
	rootOpts := append(cfg.RootOptions(), engine.WithLogger(opts.Logger(cmd.ErrOrStderr())))

	dbPath := opts.TraceDB
	if dbPath == "" {
		dbPath = cfg.Trace.DB
	}
	var st *store.Store
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open trace database", err)
		}
		defer st.Close()
		rootOpts = append(rootOpts, engine.WithRecorder(st))
	}

	doc := host.New()
	root := engine.NewRoot(doc, doc.Container(), rootOpts...)
	if st != nil {
		if err := st.DeleteSession(ctx, root.Session()); err != nil {
			return WrapExitError(ExitCommandError, "failed to reset session", err)
		}
		if err := st.WriteSession(ctx, root.Session(), name); err != nil {
			return WrapExitError(ExitCommandError, "failed to record session", err)
		}
	}

	if err := root.Render(app.Root()); err != nil {
		return renderFailure(out, "mount", err)
	}
	if err := root.Flush(); err != nil {
		return renderFailure(out, "mount", err)
	}
	for _, a := range actions {
		out.VerboseLog("%s %s", a.kind, a.selector)
		if err := a.apply(doc); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("action %s:%s", a.kind, a.selector), err)
		}
		if err := root.Flush(); err != nil {
			return renderFailure(out, a.kind+":"+a.selector, err)
		}
	}

	result := RenderResult{
		App:       name,
		Session:   root.Session(),
		HTML:      doc.Body(),
		StoreSize: root.Store().Len(),
		Actions:   len(actions),
	}
	if err := root.Unmount(); err != nil {
		return renderFailure(out, "unmount", err)
	}

	if out.Format == "json" {
		return out.Success(result)
	}
	fmt.Fprintln(out.Writer, result.HTML)
	return nil
}

// renderFailure reports a runtime error and maps it to ExitFailure.
func renderFailure(out *OutputFormatter, during string, err error) error {
	if out.isJSON() {
		_ = out.Error(errorCode(err, "E_RENDER"), err.Error(), map[string]string{"during": during})
	}
	return WrapExitError(ExitFailure, fmt.Sprintf("render failed during %s", during), err)
}

type action struct {
	kind     string
	selector string
	value    string
}

func parseActions(specs []string) ([]action, error) {
	actions := make([]action, 0, len(specs))
	for _, spec := range specs {
		kind, rest, ok := strings.Cut(spec, ":")
		if !ok || rest == "" {
			return nil, fmt.Errorf("%q: expected <kind>:<selector>", spec)
		}
		a := action{kind: kind, selector: rest}
		switch kind {
		case "click", "submit":
		case "input":
			sel, value, ok := cutInput(rest)
			if !ok {
				return nil, fmt.Errorf("%q: input needs <selector>=<value>", spec)
			}
			a.selector, a.value = sel, value
		default:
			return nil, fmt.Errorf("%q: unknown action %q (click, input, submit)", spec, kind)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// cutInput splits "<selector>=<value>" at the first "=" outside an
// attribute selector, so both "input[name=t]=x" and values containing
// "]=" survive.
func cutInput(s string) (sel, value string, ok bool) {
	depth := 0
	var quote rune
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case depth > 0 && (r == '"' || r == '\''):
			quote = r
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case r == '=' && depth == 0:
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func (a action) apply(doc *host.Document) error {
	switch a.kind {
	case "click":
		return doc.Click(a.selector)
	case "input":
		return doc.Input(a.selector, a.value)
	default:
		return doc.Submit(a.selector)
	}
}
