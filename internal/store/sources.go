package store

import (
	"context"
	"database/sql"
)

// SourceSetting is the runtime view of one fetcher: whether it is active
// and how it may be driven. Rows are seeded from config on startup and
// edited through the HTTP API afterwards.
type SourceSetting struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Active     bool   `json:"active"`
	RatePerMin int    `json:"ratePerMin"`
	Weight     int    `json:"weight"`
}

func ListSources(ctx context.Context, db *sql.DB) ([]SourceSetting, error) {
	rows, err := db.QueryContext(ctx, `
SELECT name, kind, active, rate_per_min, weight
FROM sources
ORDER BY weight DESC, name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SourceSetting
	for rows.Next() {
		var s SourceSetting
		var active int
		if err := rows.Scan(&s.Name, &s.Kind, &active, &s.RatePerMin, &s.Weight); err != nil {
			return nil, err
		}
		s.Active = active != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// SeedSource inserts a source row if it does not exist yet; existing rows
// (possibly user-edited) are left alone.
func SeedSource(ctx context.Context, db *sql.DB, s SourceSetting) error {
	active := 0
	if s.Active {
		active = 1
	}
	_, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO sources(name, kind, active, rate_per_min, weight)
VALUES(?,?,?,?,?);`,
		s.Name, s.Kind, active, s.RatePerMin, s.Weight)
	return err
}

func UpdateSource(ctx context.Context, db *sql.DB, s SourceSetting) error {
	active := 0
	if s.Active {
		active = 1
	}
	res, err := db.ExecContext(ctx, `
UPDATE sources
SET active = ?, rate_per_min = ?, weight = ?
WHERE name = ?;`,
		active, s.RatePerMin, s.Weight, s.Name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
