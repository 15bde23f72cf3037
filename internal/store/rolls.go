package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/shadow-soldiers/internal/challenge"
	"github.com/rcliao/shadow-soldiers/internal/dice"
)

// Roll kinds.
const (
	RollChallenge = "challenge"
	RollPassive   = "passive"
)

// Roll is one logged check made during a save's session.
type Roll struct {
	ID         string       `json:"id"`
	SaveID     string       `json:"save_id"`
	Dialogue   string       `json:"dialogue"`
	Kind       string       `json:"kind"`
	Skill      string       `json:"skill"`
	Dice       dice.Pair    `json:"dice"`
	SkillValue int          `json:"skill_value"`
	Target     int          `json:"target"`
	Outcome    dice.Outcome `json:"outcome"`
	CreatedAt  time.Time    `json:"created_at"`
}

// LogRoll records a resolved check against a save.
func (s *SQLiteStore) LogRoll(ctx context.Context, saveID, dialogue, kind string, res challenge.Result) (*Roll, error) {
	now := time.Now().UTC()
	r := &Roll{
		ID:         s.newID(),
		SaveID:     saveID,
		Dialogue:   dialogue,
		Kind:       kind,
		Skill:      res.Skill,
		Dice:       res.Dice,
		SkillValue: res.SkillValue,
		Target:     res.Target,
		Outcome:    res.Outcome,
		CreatedAt:  now.Truncate(time.Second),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rolls (id, save_id, dialogue, kind, skill, die1, die2, skill_value, target, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SaveID, r.Dialogue, r.Kind, r.Skill, r.Dice.Die1, r.Dice.Die2,
		r.SkillValue, r.Target, r.Outcome.String(), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert roll: %w", err)
	}
	return r, nil
}

// Rolls returns a save's rolls in the order they were made. A limit of zero
// returns all of them.
func (s *SQLiteStore) Rolls(ctx context.Context, saveID string, limit int) ([]Roll, error) {
	query := `SELECT id, save_id, dialogue, kind, skill, die1, die2, skill_value, target, outcome, created_at
	          FROM rolls WHERE save_id = ? ORDER BY id`
	args := []interface{}{saveID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rolls []Roll
	for rows.Next() {
		var r Roll
		var outcome, createdAt string
		if err := rows.Scan(&r.ID, &r.SaveID, &r.Dialogue, &r.Kind, &r.Skill,
			&r.Dice.Die1, &r.Dice.Die2, &r.SkillValue, &r.Target, &outcome, &createdAt); err != nil {
			return nil, err
		}
		if err := r.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, fmt.Errorf("decode roll %s: %w", r.ID, err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rolls = append(rolls, r)
	}
	return rolls, rows.Err()
}
