package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/hookrt/internal/ir"
	"github.com/roach88/hookrt/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Session  string
	Instance string // optional - filter to one instance
	Kind     string // optional - filter to one trace kind
}

// TraceEvent is one line of the timeline.
type TraceEvent struct {
	Seq        int64          `json:"seq"`
	Kind       string         `json:"kind"`
	InstanceID string         `json:"instance_id"`
	ParentID   string         `json:"parent_id,omitempty"`
	Component  string         `json:"component"`
	Slot       int            `json:"slot,omitempty"`
	Props      map[string]any `json:"props,omitempty"`
}

// TraceResult holds the trace of one session.
type TraceResult struct {
	Session  string         `json:"session"`
	Timeline []TraceEvent   `json:"timeline"`
	Counts   map[string]int `json:"counts"`
	Live     []string       `json:"live"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <db>",
		Short: "Inspect a recorded trace",
		Long: `Read a trace database written by render --trace-db or test --trace-db.

Without --session, lists the recorded sessions. With --session, prints
the session's lifecycle timeline, per-kind counts and the instances that
were mounted but never unmounted.

Examples:
  hookrt trace ./trace.db
  hookrt trace ./trace.db --session counter_increments
  hookrt trace ./trace.db --session counter_increments --kind effect
  hookrt trace ./trace.db --session counter_increments --instance i-2 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "session to print")
	cmd.Flags().StringVar(&opts.Instance, "instance", "", "filter to one instance id")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "filter to one trace kind")

	return cmd
}

func runTrace(ctx context.Context, opts *TraceOptions, dbPath string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(dbPath); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}
	if opts.Kind != "" && !ir.ValidTraceKinds[ir.TraceKind(opts.Kind)] {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown trace kind %q", opts.Kind))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	out := formatterFor(opts.RootOptions, cmd)
	if opts.Session == "" {
		sessions, err := st.ReadSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read sessions", err)
		}
		if out.Format == "json" {
			return out.Success(sessions)
		}
		return outputSessionsText(out.Writer, sessions)
	}

	var events []ir.TraceEvent
	if opts.Instance != "" {
		events, err = st.ReadInstance(ctx, opts.Session, opts.Instance)
	} else {
		events, err = st.ReadEvents(ctx, opts.Session)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read events", err)
	}
	counts, err := st.CountByKind(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count events", err)
	}
	live, err := st.LiveInstances(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read live instances", err)
	}

	result := TraceResult{
		Session:  opts.Session,
		Timeline: buildTimeline(events, opts.Kind),
		Counts:   make(map[string]int, len(counts)),
		Live:     live,
	}
	for k, n := range counts {
		result.Counts[string(k)] = n
	}

	if out.Format == "json" {
		return outputTraceJSON(cmd, result)
	}
	return outputTraceText(out.Writer, result, opts.Verbose)
}

// buildTimeline converts stored events, keeping only kind when set.
func buildTimeline(events []ir.TraceEvent, kind string) []TraceEvent {
	timeline := []TraceEvent{}
	for _, ev := range events {
		if kind != "" && string(ev.Kind) != kind {
			continue
		}
		timeline = append(timeline, TraceEvent{
			Seq:        ev.Seq,
			Kind:       string(ev.Kind),
			InstanceID: ev.InstanceID,
			ParentID:   ev.ParentID,
			Component:  ev.Component,
			Slot:       ev.Slot,
			Props:      irObjectToMap(ev.Props),
		})
	}
	return timeline
}

// irObjectToMap converts an ir.IRObject to a plain map.
func irObjectToMap(obj ir.IRObject) map[string]any {
	if len(obj) == 0 {
		return nil
	}
	result := make(map[string]any, len(obj))
	for k, v := range obj {
		result[k] = ir.ToGo(v)
	}
	return result
}

// outputTraceJSON outputs the trace result as JSON.
func outputTraceJSON(cmd *cobra.Command, result TraceResult) error {
	response := CLIResponse{
		Status:  "ok",
		Data:    result,
		Session: result.Session,
	}

	return writeJSON(cmd.OutOrStdout(), response)
}

func outputSessionsText(w io.Writer, sessions []store.Session) error {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %s  (%d events)\n", s.ID, s.Label, s.Events)
	}
	return nil
}

// outputTraceText outputs the trace result as text.
func outputTraceText(w io.Writer, result TraceResult, verbose bool) error {
	fmt.Fprintf(w, "Trace for Session: %s\n", result.Session)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no events)")
	}
	for _, ev := range result.Timeline {
		formatTimelineEvent(w, ev, verbose)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Counts ===")
	kinds := make([]string, 0, len(result.Counts))
	for k := range result.Counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-8s %d\n", k+":", result.Counts[k])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Live Instances ===")
	if len(result.Live) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, id := range result.Live {
		fmt.Fprintf(w, "  %s\n", id)
	}
	return nil
}

// formatTimelineEvent formats a single timeline event for text output.
func formatTimelineEvent(w io.Writer, ev TraceEvent, verbose bool) {
	line := fmt.Sprintf("  [%d] %-8s %s %s", ev.Seq, strings.ToUpper(ev.Kind), ev.Component, truncateID(ev.InstanceID))
	switch ev.Kind {
	case string(ir.TraceEffect), string(ir.TraceCleanup):
		line += fmt.Sprintf(" slot=%d", ev.Slot)
	}
	fmt.Fprintln(w, line)
	if verbose && len(ev.Props) > 0 {
		fmt.Fprintf(w, "       Props: %s\n", formatArgs(ev.Props))
	}
	if verbose && ev.ParentID != "" {
		fmt.Fprintf(w, "       Parent: %s\n", truncateID(ev.ParentID))
	}
}

// formatArgs formats a map for display with sorted keys.
func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatValue(args[k])))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// formatValue formats a single value, handling nested structures
// deterministically.
func formatValue(v any) string {
	switch val := v.(type) {
	case map[string]any:
		return formatArgs(val)
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = formatValue(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truncateID truncates a long ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
