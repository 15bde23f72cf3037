package store

import (
	"context"
	"errors"
)

// Export returns every save, optionally filtered by graph path, oldest first.
func (s *SQLiteStore) Export(ctx context.Context, graphPath string) ([]Save, error) {
	query := `SELECT ` + saveColumns + ` FROM saves`
	var args []interface{}
	if graphPath != "" {
		query += ` WHERE graph_path = ?`
		args = append(args, graphPath)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		sv, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		saves = append(saves, sv)
	}
	return saves, rows.Err()
}

// Import stores saves from an export under new IDs. Saves whose name is
// already in use are skipped.
func (s *SQLiteStore) Import(ctx context.Context, saves []Save) (int, error) {
	imported := 0
	for _, sv := range saves {
		_, err := s.Create(ctx, CreateParams{
			Name:      sv.Name,
			GraphPath: sv.GraphPath,
			State:     sv.State,
		})
		if errors.Is(err, ErrNameTaken) {
			continue
		}
		if err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
