package store

import (
	"context"
	"database/sql"
	"time"
)

type SearchRecord struct {
	ID       int64     `json:"id"`
	Keywords string    `json:"keywords"`
	Location string    `json:"location"`
	Results  int       `json:"results"`
	Partial  bool      `json:"partial"`
	At       time.Time `json:"at"`
}

func LogSearch(ctx context.Context, db *sql.DB, rec SearchRecord) error {
	partial := 0
	if rec.Partial {
		partial = 1
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO searches(keywords, location, results, partial, created_at)
VALUES(?,?,?,?,?);`,
		rec.Keywords, rec.Location, rec.Results, partial,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func RecentSearches(ctx context.Context, db *sql.DB, limit int) ([]SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, keywords, location, results, partial, created_at
FROM searches
ORDER BY created_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SearchRecord
	for rows.Next() {
		var r SearchRecord
		var partial int
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Keywords, &r.Location, &r.Results, &partial, &createdAt); err != nil {
			return nil, err
		}
		r.Partial = partial != 0
		r.At, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MarkAlertSeen records a posting's dedup key for the alert loop; returns
// true when the key is new.
func MarkAlertSeen(ctx context.Context, db *sql.DB, dedupKey string) (bool, error) {
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO alert_seen(dedup_key, first_seen)
VALUES(?,?);`, dedupKey, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
