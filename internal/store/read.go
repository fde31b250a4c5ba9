package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/hookrt/internal/ir"
)

// Session describes a recorded root.
type Session struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	TraceVersion   string `json:"trace_version"`
	RuntimeVersion string `json:"runtime_version"`
	Events         int    `json:"events"`
}

// ReadSessions returns all sessions ordered by id.
func (s *Store) ReadSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.label, s.trace_version, s.runtime_version,
		       (SELECT COUNT(*) FROM trace_events e WHERE e.session = s.id)
		FROM sessions s
		ORDER BY s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var ss Session
		if err := rows.Scan(&ss.ID, &ss.Label, &ss.TraceVersion, &ss.RuntimeVersion, &ss.Events); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadEvents returns a session's events ordered by seq.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadEvents(ctx context.Context, session string) ([]ir.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, seq, kind, instance_id, parent_id, component, slot, props_hash, props
		FROM trace_events
		WHERE session = ?
		ORDER BY seq ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ReadInstance returns the events of one instance ordered by seq.
func (s *Store) ReadInstance(ctx context.Context, session, instanceID string) ([]ir.TraceEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, seq, kind, instance_id, parent_id, component, slot, props_hash, props
		FROM trace_events
		WHERE session = ? AND instance_id = ?
		ORDER BY seq ASC
	`, session, instanceID)
	if err != nil {
		return nil, fmt.Errorf("query instance events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]ir.TraceEvent, error) {
	events := []ir.TraceEvent{}
	for rows.Next() {
		var (
			ev        ir.TraceEvent
			kind      string
			propsJSON string
		)
		if err := rows.Scan(&ev.Session, &ev.Seq, &kind, &ev.InstanceID, &ev.ParentID,
			&ev.Component, &ev.Slot, &ev.PropsHash, &propsJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = ir.TraceKind(kind)
		if propsJSON != "" && propsJSON != "{}" {
			if err := ev.Props.UnmarshalJSON([]byte(propsJSON)); err != nil {
				return nil, fmt.Errorf("decode props of seq %d: %w", ev.Seq, err)
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CountByKind returns the number of events per kind in a session.
func (s *Store) CountByKind(ctx context.Context, session string) (map[ir.TraceKind]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) FROM trace_events
		WHERE session = ?
		GROUP BY kind
		ORDER BY kind
	`, session)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[ir.TraceKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[ir.TraceKind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

// LiveInstances returns the instances of a session that were mounted and
// never unmounted, ordered by mount seq.
func (s *Store) LiveInstances(ctx context.Context, session string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.instance_id
		FROM trace_events m
		WHERE m.session = ? AND m.kind = 'mount'
		  AND NOT EXISTS (
		    SELECT 1 FROM trace_events u
		    WHERE u.session = m.session AND u.instance_id = m.instance_id AND u.kind = 'unmount'
		  )
		ORDER BY m.seq ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query live instances: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan instance: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instances: %w", err)
	}
	return ids, nil
}

// ReadSnapshots returns a session's snapshots ordered by step.
func (s *Store) ReadSnapshots(ctx context.Context, session string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, step, label, html, hash
		FROM snapshots
		WHERE session = ?
		ORDER BY step ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.Session, &sn.Step, &sn.Label, &sn.HTML, &sn.Hash); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}
