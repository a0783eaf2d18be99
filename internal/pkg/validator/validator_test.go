package validator

import "testing"

type publishReq struct {
	GalleryID string   `json:"galleryId" validate:"required,gallery_id"`
	Title     string   `json:"title" validate:"max=200"`
	Files     []string `json:"files" validate:"required,min=1"`
}

func TestValidateCustomTags(t *testing.T) {
	tests := []struct {
		name    string
		req     publishReq
		invalid string
	}{
		{"valid", publishReq{GalleryID: "abc_12-Z", Files: []string{"x"}}, ""},
		{"traversal id", publishReq{GalleryID: "../etc", Files: []string{"x"}}, "galleryId"},
		{"no files", publishReq{GalleryID: "abc"}, "files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.req)
			if tt.invalid == "" {
				if errs != nil {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.invalid]; !ok {
				t.Fatalf("expected error on %s, got %v", tt.invalid, errs)
			}
		})
	}
}

func TestValidateVarStorageName(t *testing.T) {
	if err := ValidateVar("abc_123.jpg", "storage_name"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateVar("../abc.jpg", "storage_name"); err == nil {
		t.Error("expected path separator to be rejected")
	}
}
