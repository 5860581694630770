// Package sync reconciles registered question-document sources with the
// store. A source is a directory (or git repository) of JSON documents, each
// naming a topic and carrying a full import payload for it.
package sync

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"examgame/internal/domain"
	"examgame/internal/gitsource"
	"examgame/internal/storage"
)

// Run iterates over all registered sources and reconciles them. Per-source
// failures are logged and skipped so one broken source doesn't block the
// rest.
func Run(db *storage.DB, reposDir string) error {
	slog.Info("Starting sync process for all sources...")
	sources, err := db.ListSources()
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		slog.Info("No sources configured. Add one with --source <path/or/url.git>")
		return nil
	}

	if err := os.MkdirAll(reposDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create repos directory: %w", err)
	}

	for _, source := range sources {
		slog.Info("Syncing source", "id", source.ID, "type", source.Type, "path", source.Path)

		localPath := source.Path
		if source.Type == "git" {
			localPath, err = gitURLToLocalPath(reposDir, source.Path)
			if err != nil {
				slog.Error("Error determining local path for git repo", "url", source.Path, "error", err)
				continue
			}
			if err := gitsource.Sync(source.Path, localPath); err != nil {
				slog.Error("Error syncing git repo", "url", source.Path, "error", err)
				continue
			}
		}

		reconcileDocuments(db, localPath)

		if err := db.TouchSource(source.ID); err != nil {
			slog.Warn("Failed to record scan time", "source_id", source.ID, "error", err)
		}
	}
	slog.Info("Sync process complete.")
	return nil
}

// reconcileDocuments walks a directory for *.json question documents and
// imports each one whose topic is not in the store yet. Existing topics are
// skipped: imports are append-only, so topic existence is the marker that a
// document has already been loaded.
func reconcileDocuments(db *storage.DB, dir string) {
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}

		doc, err := loadDocument(p)
		if err != nil {
			slog.Error("Skipping unreadable document", "path", p, "error", err)
			return nil
		}

		existing, err := db.FindTopicByName(doc.Topic)
		if err != nil {
			slog.Error("Error checking topic", "topic", doc.Topic, "error", err)
			return nil
		}
		if existing != nil {
			slog.Info("Topic already loaded, skipping", "topic", doc.Topic, "path", p)
			return nil
		}

		topic, err := db.CreateTopic(doc.Topic)
		if err != nil {
			slog.Error("Error creating topic", "topic", doc.Topic, "error", err)
			return nil
		}
		imported, err := db.ImportQuestions(doc.Topic, doc.ImportDocument)
		if err != nil {
			slog.Error("Error importing document", "topic", doc.Topic, "path", p, "error", err)
			// Drop the topic again so a corrected document is picked up
			// on the next run instead of being skipped as already loaded.
			if delErr := db.DeleteTopic(topic.ID); delErr != nil {
				slog.Error("Error removing topic after failed import", "topic", doc.Topic, "error", delErr)
			}
			return nil
		}
		slog.Info("Imported document", "topic", doc.Topic, "categories", imported)
		return nil
	})
	if walkErr != nil {
		slog.Error("Error walking directory", "path", dir, "error", walkErr)
	}
}

func loadDocument(file string) (*domain.SourceDocument, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var doc domain.SourceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Topic == "" {
		return nil, fmt.Errorf("document %s names no topic", file)
	}
	return &doc, nil
}

// gitURLToLocalPath derives the checkout directory for a git source URL.
func gitURLToLocalPath(reposDir, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse git URL %s: %w", rawURL, err)
	}
	name := strings.TrimSuffix(path.Base(u.Path), ".git")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive a directory name from %s", rawURL)
	}
	return filepath.Join(reposDir, name), nil
}
