package storage

import (
	"database/sql"
	"fmt"

	"examgame/internal/domain"
)

// gameStateID is the fixed key of the singleton progress row.
const gameStateID = 1

// GameState retrieves the singleton progress record, or nil if it was never
// set.
func (db *DB) GameState() (*domain.GameState, error) {
	var gs domain.GameState
	row := db.conn.QueryRow(`
		SELECT current_topic, current_position, current_score, target_score
		FROM game_state WHERE id = ?
	`, gameStateID)

	err := row.Scan(&gs.CurrentTopic, &gs.CurrentPosition, &gs.CurrentScore, &gs.TargetScore)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Never set
		}
		return nil, fmt.Errorf("failed to read game state: %w", err)
	}
	return &gs, nil
}

// SetGameState replaces the singleton progress record wholesale.
func (db *DB) SetGameState(gs domain.GameState) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO game_state (id, current_topic, current_position, current_score, target_score)
		VALUES (?, ?, ?, ?, ?)
	`,
		gameStateID,
		gs.CurrentTopic,
		gs.CurrentPosition,
		gs.CurrentScore,
		gs.TargetScore,
	)
	if err != nil {
		return fmt.Errorf("failed to write game state: %w", err)
	}
	return nil
}
