package storage

import (
	"database/sql"
	"fmt"

	"examgame/internal/domain"
)

// topicTreeQuery flattens the whole hierarchy for one topic into joined rows.
// The ORDER BY groups rows by category then question then option, which is
// what TopicTree's single-pass accumulation relies on.
const topicTreeQuery = `
	SELECT t.id,
	       c.id, c.name,
	       q.id, q.question,
	       o.id, o.text, o.is_correct,
	       r.id, r.title, r.url
	FROM topics t
	LEFT JOIN categories c ON c.topic_id = t.id
	LEFT JOIN questions q ON q.category_id = c.id
	LEFT JOIN options o ON o.question_id = q.id
	LEFT JOIN question_references r ON r.question_id = q.id
	WHERE t.name = ?
	ORDER BY c.name, q.id, o.id, r.id
`

// TopicTree rebuilds the nested topic document from the flat joined row
// stream, breaking on category and question id changes. A topic with no
// categories (or an unknown topic) yields an empty category list, never an
// error; the topic id stays null when the topic does not exist.
func (db *DB) TopicTree(topicName string) (domain.TopicTree, error) {
	tree := domain.TopicTree{
		Topic:      domain.TopicRef{Name: topicName},
		Categories: make([]domain.CategoryTree, 0),
	}

	rows, err := db.conn.Query(topicTreeQuery, topicName)
	if err != nil {
		return tree, fmt.Errorf("failed to query topic tree for %s: %w", topicName, err)
	}
	defer rows.Close()

	var currentCategory *domain.CategoryTree
	var currentQuestion *domain.QuestionTree

	for rows.Next() {
		var (
			topicID    int64
			categoryID sql.NullInt64
			category   sql.NullString
			questionID sql.NullInt64
			question   sql.NullString
			optionID   sql.NullInt64
			optionText sql.NullString
			isCorrect  sql.NullBool
			refID      sql.NullInt64
			refTitle   sql.NullString
			refURL     sql.NullString
		)
		if err := rows.Scan(
			&topicID,
			&categoryID, &category,
			&questionID, &question,
			&optionID, &optionText, &isCorrect,
			&refID, &refTitle, &refURL,
		); err != nil {
			return tree, fmt.Errorf("failed to scan topic tree row: %w", err)
		}

		if tree.Topic.ID == nil {
			id := topicID
			tree.Topic.ID = &id
		}

		// A row with a null category id means the topic has no categories at
		// all; it contributes nothing beyond the topic id.
		if categoryID.Valid && (currentCategory == nil || currentCategory.ID != categoryID.Int64) {
			if currentCategory != nil {
				tree.Categories = append(tree.Categories, *currentCategory)
			}
			currentCategory = &domain.CategoryTree{
				ID:        categoryID.Int64,
				Name:      category.String,
				Questions: make([]domain.QuestionTree, 0),
			}
			currentQuestion = nil
		}

		if questionID.Valid && currentCategory != nil &&
			(currentQuestion == nil || currentQuestion.ID != questionID.Int64) {
			currentCategory.Questions = append(currentCategory.Questions, domain.QuestionTree{
				ID:         questionID.Int64,
				Question:   question.String,
				Options:    make([]domain.Option, 0),
				References: make([]domain.Reference, 0),
			})
			currentQuestion = &currentCategory.Questions[len(currentCategory.Questions)-1]
		}

		if optionID.Valid && currentQuestion != nil {
			currentQuestion.Options = append(currentQuestion.Options, domain.Option{
				ID:      optionID.Int64,
				Text:    optionText.String,
				Correct: isCorrect.Bool,
			})
		}

		if refID.Valid && currentQuestion != nil {
			currentQuestion.References = append(currentQuestion.References, domain.Reference{
				ID:    refID.Int64,
				Title: refTitle.String,
				URL:   refURL.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return tree, fmt.Errorf("failed to iterate topic tree rows: %w", err)
	}

	if currentCategory != nil {
		tree.Categories = append(tree.Categories, *currentCategory)
	}
	return tree, nil
}
