package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string       `json:"db_path"`
	DBSizeBytes int64        `json:"db_size_bytes"`
	Saves       int          `json:"saves"`
	Rolls       int          `json:"rolls"`
	Successes   int          `json:"successes"`
	Skills      []SkillStats `json:"skills"`
}

// SkillStats holds per-skill roll counts.
type SkillStats struct {
	Skill     string `json:"skill"`
	Rolls     int    `json:"rolls"`
	Successes int    `json:"successes"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves`).Scan(&st.Saves)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rolls`).Scan(&st.Rolls)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rolls WHERE outcome = 'Success'`).Scan(&st.Successes)

	rows, err := s.db.QueryContext(ctx, `
		SELECT skill, COUNT(*) AS cnt, SUM(CASE WHEN outcome = 'Success' THEN 1 ELSE 0 END)
		FROM rolls
		GROUP BY skill ORDER BY cnt DESC, skill`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var sk SkillStats
		rows.Scan(&sk.Skill, &sk.Rolls, &sk.Successes)
		st.Skills = append(st.Skills, sk)
	}

	return st, nil
}
