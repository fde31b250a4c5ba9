package store

import (
	"context"
	"fmt"

	"github.com/roach88/hookrt/internal/engine"
	"github.com/roach88/hookrt/internal/ir"
)

var _ engine.Recorder = (*Store)(nil)

// WriteSession registers a session. Rewriting an existing session only
// updates its label.
func (s *Store) WriteSession(ctx context.Context, id, label string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, label, trace_version, runtime_version)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET label = excluded.label
	`, id, label, ir.TraceVersion, ir.RuntimeVersion)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// DeleteSession removes a session with its events and snapshots, so a
// rerun under the same id starts from an empty trace.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	defer tx.Rollback()
	for _, table := range []string{"trace_events", "snapshots"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE session = ?", id); err != nil {
			return fmt.Errorf("delete session %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return tx.Commit()
}

// Record implements engine.Recorder.
func (s *Store) Record(ctx context.Context, ev ir.TraceEvent) error {
	return s.WriteEvent(ctx, ev)
}

// WriteEvent appends a trace event. Uses ON CONFLICT DO NOTHING for
// idempotency - a duplicate (session, seq) is silently ignored.
//
// Props are stored as canonical JSON so equal summaries compare equal as
// text.
func (s *Store) WriteEvent(ctx context.Context, ev ir.TraceEvent) error {
	if !ir.ValidTraceKinds[ev.Kind] {
		return fmt.Errorf("write event: invalid kind %q", ev.Kind)
	}
	props := ev.Props
	if props == nil {
		props = ir.IRObject{}
	}
	propsJSON, err := ir.MarshalCanonical(props)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trace_events
		(session, seq, kind, instance_id, parent_id, component, slot, props_hash, props)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		ev.Session,
		ev.Seq,
		string(ev.Kind),
		ev.InstanceID,
		ev.ParentID,
		ev.Component,
		ev.Slot,
		ev.PropsHash,
		string(propsJSON),
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// Snapshot is a serialized host tree captured after a harness step.
type Snapshot struct {
	Session string
	Step    int
	Label   string
	HTML    string
	Hash    string
}

// WriteSnapshot stores a host snapshot; the hash is computed from the HTML.
func (s *Store) WriteSnapshot(ctx context.Context, session string, step int, label, html string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO snapshots (session, step, label, html, hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, session, step, label, html, ir.SnapshotHash(html))
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
