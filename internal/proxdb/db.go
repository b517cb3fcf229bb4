// Package proxdb persists periodic snapshots of the proximity distance
// model to sqlite for offline analysis and plotting.
package proxdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the snapshot database at path and brings
// the schema up to date.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	wrapped := &DB{db}
	if err := wrapped.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate snapshot schema: %w", err)
	}
	return wrapped, nil
}

// Session identifies one daemon run.
type Session struct {
	ID         string
	SerialPort string
	StartedAt  time.Time
}

// StartSession records the beginning of a daemon run and returns the
// generated session ID.
func (db *DB) StartSession(serialPort string) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO sessions (session_id, serial_port, started_at) VALUES (?, ?, ?)`,
		id, serialPort, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	return id, nil
}

// LatestSession returns the most recently started session.
func (db *DB) LatestSession() (Session, error) {
	var s Session
	err := db.QueryRow(
		`SELECT session_id, serial_port, started_at FROM sessions ORDER BY started_at DESC LIMIT 1`,
	).Scan(&s.ID, &s.SerialPort, &s.StartedAt)
	if err != nil {
		return Session{}, fmt.Errorf("failed to query latest session: %w", err)
	}
	return s, nil
}

// Snapshot is one periodic capture of the distance model's consumer
// views.
type Snapshot struct {
	SessionID    string
	Timestamp    time.Time
	Status       string
	ValidSectors int

	// Closest object; nil when no sector held a valid sample.
	ClosestAngleDeg *float64
	ClosestDistM    *float64

	// 8-orientation distance array; nil when unavailable.
	Distances []float64
}

// RecordSnapshot appends one snapshot row.
func (db *DB) RecordSnapshot(snap Snapshot) error {
	var distances any
	if snap.Distances != nil {
		encoded, err := json.Marshal(snap.Distances)
		if err != nil {
			return fmt.Errorf("failed to encode distances: %w", err)
		}
		distances = string(encoded)
	}

	_, err := db.Exec(
		`INSERT INTO snapshots
			(session_id, timestamp, status, valid_sectors, closest_angle_deg, closest_dist_m, distances)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.SessionID, snap.Timestamp.UTC(), snap.Status, snap.ValidSectors,
		snap.ClosestAngleDeg, snap.ClosestDistM, distances,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// SnapshotsForSession returns a session's snapshots in time order.
func (db *DB) SnapshotsForSession(sessionID string) ([]Snapshot, error) {
	rows, err := db.Query(
		`SELECT session_id, timestamp, status, valid_sectors, closest_angle_deg, closest_dist_m, distances
		 FROM snapshots WHERE session_id = ? ORDER BY timestamp`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var distances sql.NullString
		if err := rows.Scan(
			&snap.SessionID, &snap.Timestamp, &snap.Status, &snap.ValidSectors,
			&snap.ClosestAngleDeg, &snap.ClosestDistM, &distances,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if distances.Valid {
			if err := json.Unmarshal([]byte(distances.String), &snap.Distances); err != nil {
				return nil, fmt.Errorf("failed to decode distances: %w", err)
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
