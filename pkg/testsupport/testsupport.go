// Package testsupport holds helpers shared by the package tests:
// fixture loading, a silent logger, and item seeding.
package testsupport

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"todocore/todo"
)

// Logger returns a logger that discards everything, keeping test output
// readable.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FixturePath constructs a path to a fixture file relative to the
// testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// LoadFixtureJSON loads JSON test data from a fixture file and
// unmarshals it into dest.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// LoadItems loads a fixture file holding a JSON array of items.
func LoadItems(t *testing.T, path string) []todo.Item {
	t.Helper()

	var items []todo.Item
	LoadFixtureJSON(t, path, &items)
	return items
}

// Item builds a valid item with the given id and title, defaulting the
// remaining fields.
func Item(id, title string) todo.Item {
	return todo.Item{
		ID:      id,
		Title:   title,
		DueDate: "2026-01-15",
		Status:  todo.StatusPending,
	}
}
