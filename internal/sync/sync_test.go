package sync

import (
	"os"
	"path/filepath"
	"testing"

	"examgame/internal/storage"
)

func newTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "examgame.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func writeDocument(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

const geographyDocument = `{
	"topic": "Geography Quiz",
	"categories": [{
		"name": "Geography",
		"questions": [{
			"question": "Capital of France?",
			"options": [
				{"text": "Paris", "correct": true},
				{"text": "Lyon", "correct": false}
			]
		}]
	}]
}`

const historyDocument = `{
	"topic": "History Quiz",
	"categories": [{
		"name": "Antiquity",
		"questions": [{
			"question": "First Roman emperor?",
			"options": [
				{"text": "Augustus", "correct": true},
				{"text": "Nero", "correct": false}
			]
		}]
	}]
}`

func TestRunImportsLocalSource(t *testing.T) {
	db := newTestDB(t)

	dir := t.TempDir()
	writeDocument(t, dir, "geography.json", geographyDocument)
	writeDocument(t, dir, "history.json", historyDocument)
	writeDocument(t, dir, "notes.txt", "not a document")

	if _, err := db.AddSource(dir, "local"); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}
	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	topics, err := db.ListTopics()
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("topics after sync = %d, want 2", len(topics))
	}

	questions, err := db.FlatQuestions("Geography Quiz")
	if err != nil {
		t.Fatalf("FlatQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("Geography Quiz questions = %d, want 1", len(questions))
	}

	source, err := db.FindSourceByPath(dir)
	if err != nil {
		t.Fatalf("FindSourceByPath failed: %v", err)
	}
	if source == nil || !source.LastScanned.Valid {
		t.Error("expected the source scan time to be recorded")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	dir := t.TempDir()
	writeDocument(t, dir, "geography.json", geographyDocument)

	if _, err := db.AddSource(dir, "local"); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}

	reposDir := t.TempDir()
	if err := Run(db, reposDir); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if err := Run(db, reposDir); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	// The topic already exists after the first run, so the document is
	// skipped rather than appended again.
	questions, err := db.FlatQuestions("Geography Quiz")
	if err != nil {
		t.Fatalf("FlatQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("questions after two runs = %d, want 1", len(questions))
	}
}

func TestRunSkipsBrokenDocuments(t *testing.T) {
	db := newTestDB(t)

	dir := t.TempDir()
	writeDocument(t, dir, "broken.json", "{not json")
	writeDocument(t, dir, "anonymous.json", `{"categories": []}`)
	writeDocument(t, dir, "geography.json", geographyDocument)

	if _, err := db.AddSource(dir, "local"); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}
	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	topics, err := db.ListTopics()
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}
	if len(topics) != 1 || topics[0].Name != "Geography Quiz" {
		t.Errorf("topics = %v, want only Geography Quiz", topics)
	}
}

func TestRunRetriesDocumentAfterFailedImport(t *testing.T) {
	db := newTestDB(t)

	dir := t.TempDir()
	// Named like geographyDocument but with an empty option text, which
	// fails validation and rolls the import back.
	writeDocument(t, dir, "geography.json", `{
		"topic": "Geography Quiz",
		"categories": [{
			"name": "Geography",
			"questions": [{
				"question": "Capital of France?",
				"options": [{"text": "", "correct": true}]
			}]
		}]
	}`)

	if _, err := db.AddSource(dir, "local"); err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}
	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	// The failed import must not leave an empty topic behind, or the
	// corrected document would be skipped as already loaded.
	topics, err := db.ListTopics()
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}
	if len(topics) != 0 {
		t.Fatalf("topics after failed import = %v, want none", topics)
	}

	writeDocument(t, dir, "geography.json", geographyDocument)
	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	questions, err := db.FlatQuestions("Geography Quiz")
	if err != nil {
		t.Fatalf("FlatQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("questions after corrected run = %d, want 1", len(questions))
	}
}

func TestRunWithoutSources(t *testing.T) {
	db := newTestDB(t)

	if err := Run(db, t.TempDir()); err != nil {
		t.Fatalf("Run with no sources failed: %v", err)
	}
}

func TestGitURLToLocalPath(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "https URL",
			url:  "https://example.com/team/questions.git",
			want: filepath.Join("repos", "questions"),
		},
		{
			name: "no .git suffix",
			url:  "https://example.com/questions",
			want: filepath.Join("repos", "questions"),
		},
		{
			name:    "bare host",
			url:     "https://example.com",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := gitURLToLocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("gitURLToLocalPath failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("path = %q, want %q", got, tc.want)
			}
		})
	}
}
