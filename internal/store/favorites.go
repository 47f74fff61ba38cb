package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"jobpilot-engine/internal/domain"
)

type Favorite struct {
	ID      int64              `json:"id"`
	Job     domain.JobPosting  `json:"job"`
	SavedAt time.Time          `json:"savedAt"`
}

// SaveFavorite stores the full posting as JSON: favorites must outlive the
// search response they came from, and postings have no cross-request
// identity beyond their dedup key.
func SaveFavorite(ctx context.Context, db *sql.DB, job domain.JobPosting) (int64, error) {
	b, err := json.Marshal(job)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO favorites(job, dedup_key, created_at)
VALUES(?,?,?);`,
		string(b), job.DedupKey(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, nil // already saved
	}
	return res.LastInsertId()
}

func ListFavorites(ctx context.Context, db *sql.DB) ([]Favorite, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, job, created_at
FROM favorites
ORDER BY created_at DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Favorite
	for rows.Next() {
		var f Favorite
		var jobJSON, createdAt string
		if err := rows.Scan(&f.ID, &jobJSON, &createdAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(jobJSON), &f.Job)
		f.SavedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, f)
	}
	return out, rows.Err()
}

func DeleteFavorite(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?;`, id)
	return err
}
