package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/orbitshare/orbit-api/internal/domain/files"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func setupRouter(t *testing.T) (http.Handler, *files.DocumentRegistry, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	reg := files.NewFileRegistry(filepath.Join(t.TempDir(), "files.json"))
	r := chi.NewRouter()
	r.Mount("/upload", NewHandler(newTestService(t, reg, store)).Routes())
	return r, reg, store
}

func post(t *testing.T, h http.Handler, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestHandlerUpload(t *testing.T) {
	h, reg, _ := setupRouter(t)
	body, ct := multipartBody(t, "file", "../../holiday.jpg", "image/jpeg", jpegBytes(t, 800, 600))

	rec, env := post(t, h, body, ct)
	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp UploadResponse
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.File.Name != "holiday.jpg" || resp.Message != "File uploaded successfully" {
		t.Errorf("unexpected response %+v", resp)
	}
	if records, _ := reg.List(context.Background()); len(records) != 1 {
		t.Errorf("expected one record, got %d", len(records))
	}
}

func TestHandlerUploadRejections(t *testing.T) {
	h, reg, store := setupRouter(t)

	body, ct := multipartBody(t, "file", "notes.txt", "text/plain", []byte("hello"))
	rec, env := post(t, h, body, ct)
	if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "REJECTED_INVALID_TYPE" {
		t.Errorf("expected invalid type, got %d %s", rec.Code, rec.Body.String())
	}

	body, ct = multipartBody(t, "other", "a.jpg", "image/jpeg", jpegBytes(t, 10, 10))
	rec, env = post(t, h, body, ct)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "NO_FILE" {
		t.Errorf("expected missing file error, got %d %s", rec.Code, rec.Body.String())
	}

	body, ct = multipartBody(t, "file", "big.jpg", "image/jpeg", bytes.Repeat([]byte{0xff}, (1<<20)+10))
	rec, _ = post(t, h, body, ct)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}

	if records, _ := reg.List(context.Background()); len(records) != 0 {
		t.Errorf("rejections must not register records, got %d", len(records))
	}
	if len(store.objects) != 0 {
		t.Errorf("rejections must not store files, got %d", len(store.objects))
	}
}

func jsonKeys(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestHandlerUploadWithoutThumbnailLooksNormal(t *testing.T) {
	upload := func(failThumbnails bool) (*httptest.ResponseRecorder, envelope) {
		h, _, store := setupRouter(t)
		if failThumbnails {
			store.failPut = "thumbnails/"
		}
		body, ct := multipartBody(t, "file", "holiday.jpg", "image/jpeg", jpegBytes(t, 640, 480))
		return post(t, h, body, ct)
	}

	okRec, okEnv := upload(false)
	degRec, degEnv := upload(true)

	if degRec.Code != okRec.Code || !degEnv.Success || degEnv.Error != nil {
		t.Fatalf("expected a plain success, got %d %s", degRec.Code, degRec.Body.String())
	}
	if ok, deg := jsonKeys(t, okEnv.Data), jsonKeys(t, degEnv.Data); !reflect.DeepEqual(ok, deg) {
		t.Errorf("response shape differs: %v vs %v", ok, deg)
	}

	var okResp, degResp struct {
		Message string          `json:"message"`
		File    json.RawMessage `json:"file"`
	}
	if err := json.Unmarshal(okEnv.Data, &okResp); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(degEnv.Data, &degResp); err != nil {
		t.Fatal(err)
	}
	if degResp.Message != okResp.Message {
		t.Errorf("message differs: %q vs %q", okResp.Message, degResp.Message)
	}
	if ok, deg := jsonKeys(t, okResp.File), jsonKeys(t, degResp.File); !reflect.DeepEqual(ok, deg) {
		t.Errorf("file shape differs: %v vs %v", ok, deg)
	}
}
