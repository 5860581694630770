package storage

import "testing"

func TestAddSource(t *testing.T) {
	db := newTestDB(t)

	id, err := db.AddSource("/srv/questions", "local")
	if err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}
	if id == 0 {
		t.Error("expected a non-zero source id")
	}

	// Re-adding the same path returns the existing id.
	again, err := db.AddSource("/srv/questions", "local")
	if err != nil {
		t.Fatalf("AddSource failed on re-add: %v", err)
	}
	if again != id {
		t.Errorf("re-added id = %d, want %d", again, id)
	}
	if n := countRows(t, db, "sources"); n != 1 {
		t.Errorf("sources row count = %d, want 1", n)
	}
}

func TestListAndTouchSource(t *testing.T) {
	db := newTestDB(t)

	id, err := db.AddSource("https://example.com/questions.git", "git")
	if err != nil {
		t.Fatalf("AddSource failed: %v", err)
	}

	sources, err := db.ListSources()
	if err != nil {
		t.Fatalf("ListSources failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(sources))
	}
	if sources[0].Type != "git" {
		t.Errorf("source type = %q, want git", sources[0].Type)
	}
	if sources[0].LastScanned.Valid {
		t.Error("expected last_scanned to be unset before the first sync")
	}

	if err := db.TouchSource(id); err != nil {
		t.Fatalf("TouchSource failed: %v", err)
	}

	source, err := db.FindSourceByPath("https://example.com/questions.git")
	if err != nil {
		t.Fatalf("FindSourceByPath failed: %v", err)
	}
	if source == nil || !source.LastScanned.Valid {
		t.Errorf("source after touch = %+v, want a last_scanned timestamp", source)
	}
}
