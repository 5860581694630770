package storage

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"examgame/internal/domain"
)

var validate = validator.New()

// ImportQuestions persists a nested import document under the named topic as
// normalized rows, assigning surrogate ids as it goes. The whole document is
// one transaction: any failure rolls back every insertion made by this call.
// Returns the number of categories imported.
func (db *DB) ImportQuestions(topicName string, doc domain.ImportDocument) (int, error) {
	topic, err := db.FindTopicByName(topicName)
	if err != nil {
		return 0, err
	}
	if topic == nil {
		return 0, ErrTopicNotFound
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, category := range doc.Categories {
		if err := validate.Struct(category); err != nil {
			return 0, err
		}

		res, err := tx.Exec(`
			INSERT INTO categories (topic_id, name)
			VALUES (?, ?)
		`, topic.ID, category.Name)
		if err != nil {
			return 0, fmt.Errorf("failed to insert category %s: %w", category.Name, err)
		}
		categoryID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get last insert ID for category %s: %w", category.Name, err)
		}

		for _, question := range category.Questions {
			// Validated element by element so a malformed question aborts the
			// transaction even when earlier ones already went in.
			if err := validate.Struct(question); err != nil {
				return 0, err
			}

			res, err := tx.Exec(`
				INSERT INTO questions (category_id, question)
				VALUES (?, ?)
			`, categoryID, question.Question)
			if err != nil {
				return 0, fmt.Errorf("failed to insert question: %w", err)
			}
			questionID, err := res.LastInsertId()
			if err != nil {
				return 0, fmt.Errorf("failed to get last insert ID for question: %w", err)
			}

			for _, option := range question.Options {
				if _, err := tx.Exec(`
					INSERT INTO options (question_id, text, is_correct)
					VALUES (?, ?, ?)
				`, questionID, option.Text, option.Correct); err != nil {
					return 0, fmt.Errorf("failed to insert option: %w", err)
				}
			}

			for _, ref := range question.References {
				var title any
				if ref.Title != "" {
					title = ref.Title
				}
				if _, err := tx.Exec(`
					INSERT INTO question_references (question_id, title, url)
					VALUES (?, ?, ?)
				`, questionID, title, ref.URL); err != nil {
					return 0, fmt.Errorf("failed to insert reference: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(doc.Categories), nil
}
