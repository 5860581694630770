package storage

import (
	"database/sql"
	"fmt"

	"examgame/internal/domain"
)

// CreateTopic inserts a new topic and returns it with its assigned id.
// Returns ErrDuplicateTopic if the name is already taken.
func (db *DB) CreateTopic(name string) (domain.Topic, error) {
	res, err := db.conn.Exec(`
		INSERT INTO topics (name)
		VALUES (?)
	`, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Topic{}, ErrDuplicateTopic
		}
		return domain.Topic{}, fmt.Errorf("failed to insert topic %s: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Topic{}, fmt.Errorf("failed to get last insert ID for topic %s: %w", name, err)
	}
	return domain.Topic{ID: id, Name: name}, nil
}

// DeleteTopic removes a topic by its id. Sync uses this to undo a topic
// whose document import failed; topics with imported questions are kept.
func (db *DB) DeleteTopic(id int64) error {
	_, err := db.conn.Exec(`
		DELETE FROM topics
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete topic %d: %w", id, err)
	}
	return nil
}

// ListTopics retrieves all stored topics in insertion order.
func (db *DB) ListTopics() ([]domain.Topic, error) {
	rows, err := db.conn.Query(`
		SELECT id, name
		FROM topics
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]domain.Topic, 0)
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan topic row: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// FindTopicByName retrieves a topic by its unique name.
func (db *DB) FindTopicByName(name string) (*domain.Topic, error) {
	var t domain.Topic
	row := db.conn.QueryRow(`
		SELECT id, name
		FROM topics WHERE name = ?
	`, name)

	err := row.Scan(&t.ID, &t.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Topic not found
		}
		return nil, fmt.Errorf("failed to find topic by name %s: %w", name, err)
	}
	return &t, nil
}
