package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers the webp decoder with image.Decode
)

// ErrUndecodable is returned when bytes do not decode as a supported image.
var ErrUndecodable = errors.New("content is not a decodable image")

// Config for thumbnail derivation
type Config struct {
	Bound   int // bounding box edge for thumbnails (default 300)
	Quality int // JPEG quality 1-100 (default 85)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{Bound: 300, Quality: 85}
}

// Probed is a successfully decoded image.
type Probed struct {
	Image  image.Image
	Format string // jpeg, png, gif, webp
	Width  int
	Height int
}

// Thumbnail is an encoded, aspect-preserving reduction of a probed image.
type Thumbnail struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Processor probes uploads and derives thumbnails
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	if config.Bound <= 0 {
		config.Bound = DefaultConfig().Bound
	}
	if config.Quality <= 0 || config.Quality > 100 {
		config.Quality = DefaultConfig().Quality
	}
	return &Processor{config: config}
}

// Probe fully decodes data. A declared image whose pixels cannot be
// decoded is rejected here even when its header sniffed correctly.
func (p *Processor) Probe(data []byte) (*Probed, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty bounds", ErrUndecodable)
	}
	return &Probed{Image: img, Format: format, Width: b.Dx(), Height: b.Dy()}, nil
}

// Thumbnail scales the image so its long edge equals the bound and the
// short edge keeps the aspect ratio. Smaller images are scaled up.
func (p *Processor) Thumbnail(src *Probed) (*Thumbnail, error) {
	if src == nil || src.Image == nil {
		return nil, errors.New("nothing to thumbnail")
	}

	var thumb *image.NRGBA
	if src.Width >= src.Height {
		thumb = imaging.Resize(src.Image, p.config.Bound, 0, imaging.Lanczos)
	} else {
		thumb = imaging.Resize(src.Image, 0, p.config.Bound, imaging.Lanczos)
	}

	format, contentType, ext := outputFormat(src.Format)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, format, imaging.JPEGQuality(p.config.Quality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return &Thumbnail{
		Data:        buf.Bytes(),
		ContentType: contentType,
		Ext:         ext,
		Width:       thumb.Bounds().Dx(),
		Height:      thumb.Bounds().Dy(),
	}, nil
}

// ThumbnailName derives the thumbnail object name for a stored file.
func ThumbnailName(storedName, ext string) string {
	base := strings.TrimSuffix(storedName, path.Ext(storedName))
	return "thumb_" + base + ext
}

// imaging has no webp encoder, so webp thumbnails are written as JPEG.
func outputFormat(format string) (imaging.Format, string, string) {
	switch format {
	case "png":
		return imaging.PNG, "image/png", ".png"
	case "gif":
		return imaging.GIF, "image/gif", ".gif"
	default:
		return imaging.JPEG, "image/jpeg", ".jpg"
	}
}
