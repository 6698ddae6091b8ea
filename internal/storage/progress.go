package storage

import (
	"database/sql"
	"fmt"
)

// UnlockPowerUp records a power-up as unlocked. Unlocking twice is a no-op.
func (s *Store) UnlockPowerUp(name string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO unlocked_powerups (power_up) VALUES (?)",
		name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock power-up %s: %w", name, err)
	}
	return nil
}

// UnlockedPowerUps returns unlocked power-ups in the order they were unlocked.
func (s *Store) UnlockedPowerUps() ([]string, error) {
	rows, err := s.db.Query(
		"SELECT power_up FROM unlocked_powerups ORDER BY unlocked_at ASC, rowid ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query power-ups: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}

// MarkLevelCleared records a cleared campaign level (1-based), keeping the
// best score seen for it.
func (s *Store) MarkLevelCleared(level int, name string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO level_progress (level, name, best_score) VALUES (?, ?, ?)
		 ON CONFLICT(level) DO UPDATE SET
			name = excluded.name,
			best_score = MAX(level_progress.best_score, excluded.best_score)`,
		level, name, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record level %d: %w", level, err)
	}
	return nil
}

// HighestClearedLevel returns the highest cleared level, 0 if none.
func (s *Store) HighestClearedLevel() (int, error) {
	var level sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(level) FROM level_progress").Scan(&level); err != nil {
		return 0, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	if !level.Valid {
		return 0, nil
	}
	return int(level.Int64), nil
}

// LevelProgress returns every cleared level ordered by level number.
func (s *Store) LevelProgress() ([]LevelRecord, error) {
	rows, err := s.db.Query(
		"SELECT level, name, best_score, cleared_at FROM level_progress ORDER BY level ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var clearedAt any
		if err := rows.Scan(&r.Level, &r.Name, &r.BestScore, &clearedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.ClearedAt = parseTime(clearedAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ResetProgress forgets cleared levels and unlocked power-ups. Scores are kept.
func (s *Store) ResetProgress() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin reset: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec("DELETE FROM level_progress"); err != nil {
		return fmt.Errorf("storage: cannot reset levels: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM unlocked_powerups"); err != nil {
		return fmt.Errorf("storage: cannot reset power-ups: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}
