package index

import (
	"fmt"
	"time"

	"github.com/starford/raido/internal/models"
)

// UpsertNote replaces a note's index entry and its embeds within a
// transaction. embeds maps resolved target paths to reference counts.
func (db *DB) UpsertNote(path, checksum string, embeds map[string]int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO notes (path, checksum, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, path, checksum, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}

	// Replace embeds: delete old then bulk insert.
	_, _ = tx.Exec(`DELETE FROM embeds WHERE source = ?`, path)
	if len(embeds) > 0 {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO embeds (source, target, count) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare embed insert: %w", err)
		}
		defer stmt.Close()
		for target, count := range embeds {
			if _, err := stmt.Exec(path, target, count); err != nil {
				return fmt.Errorf("index: insert embed: %w", err)
			}
		}
	}

	return tx.Commit()
}

// DeleteNote removes a note and its outgoing embeds.
func (db *DB) DeleteNote(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, _ = tx.Exec(`DELETE FROM embeds WHERE source = ?`, path)
	_, _ = tx.Exec(`DELETE FROM notes WHERE path = ?`, path)

	return tx.Commit()
}

// Targets returns the embed entry for source in lexicographic target
// order, so substring resolution is deterministic across runs.
func (db *DB) Targets(source string) ([]models.Embed, error) {
	rows, err := db.conn.Query(`
		SELECT target, count FROM embeds
		WHERE source = ?
		ORDER BY target ASC
	`, source)
	if err != nil {
		return nil, fmt.Errorf("index: targets: %w", err)
	}
	defer rows.Close()

	var out []models.Embed
	for rows.Next() {
		e := models.Embed{Source: source}
		if err := rows.Scan(&e.Target, &e.Count); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM notes WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns path → checksum for every indexed note.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}
