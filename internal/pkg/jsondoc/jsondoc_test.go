package jsondoc

import (
	"os"
	"path/filepath"
	"testing"
)

type doc struct {
	Items []string `json:"items"`
}

func TestReadMissingDocument(t *testing.T) {
	var d doc
	found, err := Read(filepath.Join(t.TempDir(), "missing.json"), &d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("missing document must not be reported as found")
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")

	if err := Write(path, doc{Items: []string{"a", "b"}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got doc
	found, err := Read(path, &got)
	if err != nil || !found {
		t.Fatalf("read: found=%v err=%v", found, err)
	}
	if len(got.Items) != 2 || got.Items[1] != "b" {
		t.Errorf("unexpected document: %+v", got)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestReadCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	var d doc
	if _, err := Read(path, &d); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestWriteIntoUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A regular file where a directory is expected makes MkdirAll fail.
	if err := Write(filepath.Join(blocker, "doc.json"), doc{}); err == nil {
		t.Fatal("expected write error")
	}
}
