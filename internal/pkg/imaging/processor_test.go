package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func encoded(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 180, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestProbeAndThumbnailLandscape(t *testing.T) {
	p := NewProcessor(DefaultConfig())

	probed, err := p.Probe(encoded(t, 2000, 1000, imaging.JPEG))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if probed.Width != 2000 || probed.Height != 1000 || probed.Format != "jpeg" {
		t.Fatalf("unexpected probe result: %dx%d %s", probed.Width, probed.Height, probed.Format)
	}

	thumb, err := p.Thumbnail(probed)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if thumb.Width != 300 || thumb.Height != 150 {
		t.Errorf("expected 300x150, got %dx%d", thumb.Width, thumb.Height)
	}
	if thumb.ContentType != "image/jpeg" || thumb.Ext != ".jpg" {
		t.Errorf("unexpected output format %s %s", thumb.ContentType, thumb.Ext)
	}

	decoded, _, err := image.Decode(bytes.NewReader(thumb.Data))
	if err != nil {
		t.Fatalf("thumbnail bytes do not decode: %v", err)
	}
	if decoded.Bounds().Dx() != 300 {
		t.Errorf("decoded thumbnail width %d", decoded.Bounds().Dx())
	}
}

func TestThumbnailKeepsPNG(t *testing.T) {
	p := NewProcessor(Config{Bound: 300})
	probed, err := p.Probe(encoded(t, 400, 800, imaging.PNG))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	thumb, err := p.Thumbnail(probed)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if thumb.Width != 150 || thumb.Height != 300 || thumb.Ext != ".png" {
		t.Errorf("unexpected thumbnail %dx%d %s", thumb.Width, thumb.Height, thumb.Ext)
	}
}

func TestProbeRejectsCorruptContent(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	data := encoded(t, 640, 480, imaging.JPEG)

	tests := map[string][]byte{
		"truncated": data[:len(data)/3],
		"text":      []byte("definitely not an image"),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Probe(in); !errors.Is(err, ErrUndecodable) {
				t.Fatalf("expected ErrUndecodable, got %v", err)
			}
		})
	}
}

func TestThumbnailLongEdgeEqualsBound(t *testing.T) {
	p := NewProcessor(Config{Bound: 300})
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 2000, 1000, 300, 150},
		{"portrait", 1000, 2000, 150, 300},
		{"square at bound", 300, 300, 300, 300},
		{"small landscape", 200, 100, 300, 150},
		{"small portrait", 80, 120, 200, 300},
		{"sliver", 3000, 2, 300, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probed, err := p.Probe(encoded(t, tt.w, tt.h, imaging.PNG))
			if err != nil {
				t.Fatalf("probe: %v", err)
			}
			thumb, err := p.Thumbnail(probed)
			if err != nil {
				t.Fatalf("thumbnail: %v", err)
			}
			if thumb.Width != tt.wantW || thumb.Height != tt.wantH {
				t.Errorf("%dx%d -> %dx%d, want %dx%d", tt.w, tt.h, thumb.Width, thumb.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestThumbnailName(t *testing.T) {
	if got := ThumbnailName("abc_1700000000.webp", ".jpg"); got != "thumb_abc_1700000000.jpg" {
		t.Errorf("unexpected name %s", got)
	}
}
