package scene

import (
	"context"
	"math/rand"
	"time"

	"github.com/orbitshare/orbit-api/internal/domain/files"
	"github.com/orbitshare/orbit-api/internal/domain/gallery"
	"github.com/orbitshare/orbit-api/internal/galaxy"
	"github.com/orbitshare/orbit-api/internal/galaxy/render"
)

// FileLister is the metadata registry read the scene needs
type FileLister interface {
	List(ctx context.Context) ([]files.FileRecord, error)
}

// GalleryViewer loads a snapshot and counts the view
type GalleryViewer interface {
	View(ctx context.Context, id string) (*gallery.Snapshot, error)
}

// Options shape one rendered frame
type Options struct {
	Seed int64
	// Aspect is the viewport width over height
	Aspect float64
	// At is how far past startup the frame is taken
	At time.Duration
	Render render.Options
}

// Service builds visualization frames from registry data
type Service struct {
	files    FileLister
	gallery  GalleryViewer
	assets   *AssetResolver
	cfg      *galaxy.Config
	now      func() time.Time
	seedFunc func() int64
}

// NewService creates scene service. A nil cfg uses galaxy defaults.
func NewService(fl FileLister, gv GalleryViewer, assets *AssetResolver, cfg *galaxy.Config) *Service {
	if cfg == nil {
		cfg = galaxy.DefaultConfig()
	}
	return &Service{
		files:    fl,
		gallery:  gv,
		assets:   assets,
		cfg:      cfg,
		now:      time.Now,
		seedFunc: func() int64 { return time.Now().UnixNano() },
	}
}

// Config returns the visualization tuning in use
func (s *Service) Config() *galaxy.Config { return s.cfg }

// BuildForFiles renders the galaxy for every registered file
func (s *Service) BuildForFiles(ctx context.Context, opts Options) (*SceneResponse, error) {
	records, err := s.files.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, records, opts), nil
}

// BuildForGallery renders a shared gallery. Loading it counts one view.
func (s *Service) BuildForGallery(ctx context.Context, id string, opts Options) (*SceneResponse, error) {
	snap, err := s.gallery.View(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.build(ctx, snap.Files, opts)
	resp.GalleryID = snap.ID
	resp.Title = snap.Title
	resp.Views = snap.Views
	return resp, nil
}

func (s *Service) build(ctx context.Context, records []files.FileRecord, opts Options) *SceneResponse {
	if opts.Seed == 0 {
		opts.Seed = s.seedFunc()
	}
	if opts.Aspect <= 0 {
		opts.Aspect = 16.0 / 9.0
	}

	var sources []galaxy.Source
	if s.assets != nil {
		sources = s.assets.Sources(ctx, records)
	} else {
		for _, rec := range records {
			src := galaxy.Source{ID: rec.ID, Title: rec.Name, Original: rec.Path}
			if rec.HasThumbnail() {
				src.Thumbnail = *rec.ThumbnailPath
			}
			sources = append(sources, src)
		}
	}

	sc := galaxy.Build(sources, s.cfg, rand.New(rand.NewSource(opts.Seed)), opts.Aspect)
	engine := galaxy.NewEngine(sc, s.cfg)
	start := s.now()
	engine.Start(start)
	engine.Tick(start.Add(opts.At))
	defer engine.Teardown()

	return &SceneResponse{
		Seed:    opts.Seed,
		Objects: len(sc.Objects),
		Frame:   render.Render(engine, s.cfg, opts.Render),
	}
}
