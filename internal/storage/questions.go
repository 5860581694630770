package storage

import (
	"encoding/json"
	"fmt"

	"examgame/internal/domain"
)

// Options and references are aggregated per question with correlated
// subqueries so questions without children get empty arrays instead of
// null-filled join artifacts.
const flatQuestionsQuery = `
	SELECT q.id, q.question, c.name,
	       (SELECT json_group_array(json_object('text', o.text, 'correct', o.is_correct))
	        FROM options o WHERE o.question_id = q.id),
	       (SELECT json_group_array(json_object('title', r.title, 'url', r.url))
	        FROM question_references r WHERE r.question_id = q.id)
	FROM questions q
	JOIN categories c ON q.category_id = c.id
	JOIN topics t ON c.topic_id = t.id
	WHERE t.name = ?
	ORDER BY q.id
`

// SQLite has no boolean type, so is_correct arrives as 0/1 in the aggregated
// JSON and gets converted on decode.
type flatOptionRow struct {
	Text    string `json:"text"`
	Correct int    `json:"correct"`
}

// FlatQuestions returns one entry per question belonging to the topic, with
// options and references embedded. A topic with no questions (or an unknown
// topic) yields an empty slice.
func (db *DB) FlatQuestions(topicName string) ([]domain.FlatQuestion, error) {
	rows, err := db.conn.Query(flatQuestionsQuery, topicName)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for %s: %w", topicName, err)
	}
	defer rows.Close()

	questions := make([]domain.FlatQuestion, 0)
	for rows.Next() {
		var (
			q           domain.FlatQuestion
			optionsJSON string
			refsJSON    string
		)
		if err := rows.Scan(&q.ID, &q.Question, &q.Category, &optionsJSON, &refsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}

		var options []flatOptionRow
		if err := json.Unmarshal([]byte(optionsJSON), &options); err != nil {
			return nil, fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
		}
		q.Options = make([]domain.FlatOption, 0, len(options))
		for _, o := range options {
			q.Options = append(q.Options, domain.FlatOption{Text: o.Text, Correct: o.Correct != 0})
		}

		q.References = make([]domain.FlatReference, 0)
		if err := json.Unmarshal([]byte(refsJSON), &q.References); err != nil {
			return nil, fmt.Errorf("failed to decode references for question %d: %w", q.ID, err)
		}

		questions = append(questions, q)
	}
	return questions, rows.Err()
}
