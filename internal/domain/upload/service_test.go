package upload

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/pkg/apperr"
	imgproc "github.com/orbitshare/orbit-api/internal/pkg/imaging"
)

// memoryStore is an in-memory ObjectStore
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut string // key prefix whose puts fail
	deleted []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Put(_ context.Context, key string, r io.Reader, _ string) error {
	if m.failPut != "" && strings.HasPrefix(key, m.failPut) {
		return errors.New("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memoryStore) GetURL(key string) string {
	return "uploads/" + key
}

// failingRegistry rejects every append
type failingRegistry struct {
	files.Registry
}

func (failingRegistry) Append(context.Context, files.FileRecord) error {
	return apperr.Wrap(errors.New("read-only filesystem"), apperr.KindStorage, "STORE_WRITE_FAILED", "write failed")
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 10, G: 120, B: 240, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T, reg files.Registry, store *memoryStore) *Service {
	t.Helper()
	if reg == nil {
		reg = files.NewFileRegistry(filepath.Join(t.TempDir(), "files.json"))
	}
	return NewService(reg, store, imgproc.NewProcessor(imgproc.DefaultConfig()), nil, Config{
		MaxBytes:     1 << 20,
		AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
	})
}

func TestUploadStoresThumbnailsAndRegisters(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	reg := files.NewFileRegistry(filepath.Join(t.TempDir(), "files.json"))
	svc := newTestService(t, reg, store)

	data := jpegBytes(t, 2000, 1000)
	res, err := svc.Upload(ctx, Input{OriginalName: "beach.jpg", DeclaredType: "image/jpeg", Size: int64(len(data))}, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	rec := res.Record
	if rec.Name != "beach.jpg" || rec.MimeType != "image/jpeg" || rec.SizeBytes != int64(len(data)) {
		t.Errorf("unexpected record %+v", rec)
	}
	if strings.Contains(rec.StoredFilename, "beach") || !strings.HasSuffix(rec.StoredFilename, ".jpg") {
		t.Errorf("stored name must be generated, got %s", rec.StoredFilename)
	}
	if rec.Dimensions == nil || rec.Dimensions.Width != 2000 || rec.Dimensions.Height != 1000 {
		t.Errorf("unexpected dimensions %+v", rec.Dimensions)
	}
	if !rec.HasThumbnail() || *rec.ThumbnailPath != "uploads/thumbnails/thumb_"+rec.StoredFilename {
		t.Fatalf("unexpected thumbnail path %v", rec.ThumbnailPath)
	}

	thumb, ok := store.objects["thumbnails/thumb_"+rec.StoredFilename]
	if !ok {
		t.Fatal("thumbnail not stored")
	}
	probed, err := imgproc.NewProcessor(imgproc.DefaultConfig()).Probe(thumb)
	if err != nil {
		t.Fatal(err)
	}
	if probed.Width != 300 || probed.Height != 150 {
		t.Errorf("expected 300x150 thumbnail, got %dx%d", probed.Width, probed.Height)
	}

	want := []State{StateReceived, StateValidated, StateStored, StateThumbnailDerived, StateRegistered}
	if len(res.Trace) != len(want) {
		t.Fatalf("unexpected trace %v", res.Trace)
	}
	for i := range want {
		if res.Trace[i] != want[i] {
			t.Errorf("trace[%d] = %s, want %s", i, res.Trace[i], want[i])
		}
	}

	records, _ := reg.List(ctx)
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Errorf("expected exactly one registered record, got %d", len(records))
	}
}

func TestUploadRejectsDisallowedTypeWithoutStoring(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, nil, store)

	_, err := svc.Upload(context.Background(), Input{OriginalName: "notes.txt", DeclaredType: "text/plain", Size: 5}, strings.NewReader("hello"))
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("nothing may be stored on rejection, got %d objects", len(store.objects))
	}
}

func TestUploadRejectsMismatchedContent(t *testing.T) {
	svc := newTestService(t, nil, newMemoryStore())

	_, err := svc.Upload(context.Background(), Input{OriginalName: "x.jpg", DeclaredType: "image/jpeg", Size: -1}, strings.NewReader("plain text pretending"))
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType for text content, got %v", err)
	}
}

func TestUploadRejectsCorruptImage(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, nil, store)

	data := jpegBytes(t, 50, 50)[:40]
	_, err := svc.Upload(context.Background(), Input{OriginalName: "broken.jpg", DeclaredType: "image/jpeg", Size: int64(len(data))}, bytes.NewReader(data))
	if !errors.Is(err, ErrCorruptContent) {
		t.Fatalf("expected ErrCorruptContent, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Error("corrupt content must not be stored")
	}
}

func TestUploadRejectsTooLarge(t *testing.T) {
	svc := newTestService(t, nil, newMemoryStore())
	big := bytes.Repeat([]byte{0xff}, (1<<20)+1)

	_, err := svc.Upload(context.Background(), Input{OriginalName: "big.jpg", DeclaredType: "image/jpeg", Size: -1}, bytes.NewReader(big))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge from the stream, got %v", err)
	}

	_, err = svc.Upload(context.Background(), Input{OriginalName: "big.jpg", DeclaredType: "image/jpeg", Size: 2 << 20}, strings.NewReader("x"))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge from the declared size, got %v", err)
	}
}

func TestUploadThumbnailFailureDegrades(t *testing.T) {
	store := newMemoryStore()
	store.failPut = "thumbnails/"
	svc := newTestService(t, nil, store)

	data := jpegBytes(t, 640, 480)
	res, err := svc.Upload(context.Background(), Input{OriginalName: "a.jpg", DeclaredType: "image/jpeg", Size: int64(len(data))}, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail failure must not fail the upload: %v", err)
	}
	if !res.Degraded() || res.Record.HasThumbnail() {
		t.Error("expected degraded result without thumbnail")
	}
	if res.Record.DisplayPath() != res.Record.Path {
		t.Errorf("display path should fall back to original, got %s", res.Record.DisplayPath())
	}
	if apperr.KindOf(res.ThumbnailErr) != apperr.KindDegradedFallback {
		t.Errorf("expected degraded fallback kind, got %v", apperr.KindOf(res.ThumbnailErr))
	}
}

func TestUploadRegistryFailureCleansUp(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, failingRegistry{}, store)

	data := jpegBytes(t, 64, 64)
	_, err := svc.Upload(context.Background(), Input{OriginalName: "a.jpg", DeclaredType: "image/jpeg", Size: int64(len(data))}, bytes.NewReader(data))
	if !errors.Is(err, ErrRegistryWrite) {
		t.Fatalf("expected ErrRegistryWrite, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("stored objects should be removed best-effort, left %v", store.objects)
	}
	if len(store.deleted) != 2 {
		t.Errorf("expected original and thumbnail deletes, got %v", store.deleted)
	}
}

func TestUploadStorageFailure(t *testing.T) {
	store := newMemoryStore()
	store.failPut = "fixedid_"
	svc := newTestService(t, nil, store)
	svc.newID = func() string { return "fixedid" }

	data := jpegBytes(t, 64, 64)
	_, err := svc.Upload(context.Background(), Input{OriginalName: "a.jpg", DeclaredType: "image/jpeg", Size: int64(len(data))}, bytes.NewReader(data))
	if !errors.Is(err, ErrStorageMove) {
		t.Fatalf("expected ErrStorageMove, got %v", err)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"../../etc/passwd":    "passwd",
		`C:\Users\me\pic.png`: "pic.png",
		"  photo.jpg ":        "photo.jpg",
		"":                    "file",
		"..":                  "file",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
