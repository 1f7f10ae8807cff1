package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/reel/internal/db"
)

// Play is one item starting to play.
type Play struct {
	Source string
	URL    string
	Name   string
	Index  int
	Count  int // catalog size at the time
	At     time.Time
}

// SourceState is what is remembered about a source.
type SourceState struct {
	Source    string
	URL       string // last item played
	Name      string
	Index     int
	Count     int
	PlayCount int64
	PlayedAt  time.Time
}

func savePlay(db *sql.DB, p Play) error {
	at := p.At
	if at.IsZero() {
		at = time.Now()
	}
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO plays (source, item_url, item_name, played_at)
			VALUES (?, ?, ?, ?)
		`, p.Source, p.URL, p.Name, at.UnixMilli()); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO sources (source, item_url, item_name, item_index, item_count, play_count, played_at)
			VALUES (?, ?, ?, ?, ?, 1, ?)
			ON CONFLICT(source) DO UPDATE SET
				item_url = excluded.item_url,
				item_name = excluded.item_name,
				item_index = excluded.item_index,
				item_count = excluded.item_count,
				play_count = play_count + 1,
				played_at = excluded.played_at
		`, p.Source, p.URL, p.Name, p.Index, p.Count, at.UnixMilli())
		return err
	})
}

const sourceColumns = `source, item_url, item_name, item_index, item_count, play_count, played_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (SourceState, error) {
	var s SourceState
	var name sql.NullString
	var count sql.NullInt64
	var playedAt int64
	if err := row.Scan(&s.Source, &s.URL, &name, &s.Index, &count, &s.PlayCount, &playedAt); err != nil {
		return SourceState{}, err
	}
	s.Name = dbutil.NullStringValue(name)
	s.Count = int(dbutil.NullInt64Value(count))
	s.PlayedAt = time.UnixMilli(playedAt)
	return s, nil
}

func getSource(db *sql.DB, source string) (*SourceState, error) {
	s, err := scanSource(db.QueryRow(`SELECT `+sourceColumns+` FROM sources WHERE source = ?`, source))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // a source never played is valid
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func recentSources(db *sql.DB, limit int) ([]SourceState, error) {
	rows, err := db.Query(`
		SELECT `+sourceColumns+` FROM sources
		ORDER BY played_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SourceState
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
