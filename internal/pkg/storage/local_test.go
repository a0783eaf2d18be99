package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestLocalStoragePutExistsDelete(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	st, err := NewLocalStorage(base, "uploads")
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	if err := st.Put(ctx, "thumbnails/thumb_a.jpg", strings.NewReader("thumb"), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}

	ok, err := st.Exists(ctx, "thumbnails/thumb_a.jpg")
	if err != nil || !ok {
		t.Fatalf("expected object to exist: ok=%v err=%v", ok, err)
	}
	if got := st.GetURL("thumbnails/thumb_a.jpg"); got != "uploads/thumbnails/thumb_a.jpg" {
		t.Errorf("unexpected url %s", got)
	}

	if err := st.Delete(ctx, "thumbnails/thumb_a.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete(ctx, "thumbnails/thumb_a.jpg"); err != nil {
		t.Fatalf("second delete must be a no-op: %v", err)
	}
	if ok, _ := st.Exists(ctx, "thumbnails/thumb_a.jpg"); ok {
		t.Fatal("object still exists after delete")
	}
}

func TestLocalStorageKeysCannotEscapeBase(t *testing.T) {
	ctx := context.Background()
	parent := t.TempDir()
	base := filepath.Join(parent, "store")
	st, err := NewLocalStorage(base, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := st.Put(ctx, "../../escape.txt", strings.NewReader("x"), "text/plain"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "escape.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("key escaped the storage root")
	}
	if _, err := os.Stat(filepath.Join(base, "escape.txt")); err != nil {
		t.Fatalf("expected file inside root: %v", err)
	}
}

func TestLocalStorageList(t *testing.T) {
	ctx := context.Background()
	st, err := NewLocalStorage(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"a.jpg", "b.png", "thumbnails/thumb_a.jpg"} {
		if err := st.Put(ctx, key, bytes.NewReader([]byte(key)), ""); err != nil {
			t.Fatal(err)
		}
	}

	all, err := st.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(all)
	if len(all) != 3 || all[2] != "thumbnails/thumb_a.jpg" {
		t.Errorf("unexpected keys %v", all)
	}

	thumbs, _ := st.List(ctx, "thumbnails/")
	if len(thumbs) != 1 {
		t.Errorf("expected one thumbnail key, got %v", thumbs)
	}
}

func TestReadLimited(t *testing.T) {
	if _, err := ReadLimited(strings.NewReader(""), 10); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("expected ErrEmptyFile, got %v", err)
	}
	if _, err := ReadLimited(strings.NewReader("12345678901"), 10); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
	data, err := ReadLimited(strings.NewReader("1234567890"), 10)
	if err != nil || len(data) != 10 {
		t.Errorf("expected exact-limit read to succeed, got %d bytes err=%v", len(data), err)
	}
}

func TestNormalizeMime(t *testing.T) {
	tests := map[string]string{
		"image/jpg":                "image/jpeg",
		"IMAGE/PNG":                "image/png",
		"text/plain; charset=utf-8": "text/plain",
	}
	for in, want := range tests {
		if got := NormalizeMime(in); got != want {
			t.Errorf("NormalizeMime(%q) = %q, want %q", in, got, want)
		}
	}
	if GetExtensionForMime("image/jpg") != ".jpg" {
		t.Error("expected .jpg for image/jpg")
	}
}

func TestOpenSelectsDriver(t *testing.T) {
	st, err := Open(context.Background(), Options{Driver: DriverLocal, LocalDir: t.TempDir(), LocalURL: "uploads"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := st.(*LocalStorage); !ok {
		t.Errorf("expected local storage, got %T", st)
	}
	if _, err := Open(context.Background(), Options{Driver: "ftp"}); err == nil {
		t.Error("expected unknown driver error")
	}
}
