package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/orbitshare/orbit-api/internal/galaxy"
)

type simOptions struct {
	Files   int
	Frames  int
	FPS     int
	Seed    int64
	MoveAt  int
	LeaveAt int
	Every   int
	JSON    bool
	Config  string
}

var simFlags simOptions

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the galaxy engine headless and print its state per frame",
	Long: `Run the galaxy engine without a renderer. A pointer move is injected at
--move-at and a pointer leave at --leave-at (negative disables it, leaving
the idle timeout to zoom back out).

Examples:
  orbitctl simulate --files 20 --frames 300
  orbitctl simulate --move-at 60 --leave-at 200 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := galaxy.LoadConfig(simFlags.Config)
		if err != nil {
			return err
		}
		_, err = simulate(cmd.OutOrStdout(), cfg, simFlags)
		return err
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simFlags.Files, "files", 12, "Number of synthetic files")
	f.IntVar(&simFlags.Frames, "frames", 240, "Frames to run")
	f.IntVar(&simFlags.FPS, "fps", 60, "Frames per second")
	f.Int64Var(&simFlags.Seed, "seed", 1, "Layout seed")
	f.IntVar(&simFlags.MoveAt, "move-at", 90, "Frame of the pointer move")
	f.IntVar(&simFlags.LeaveAt, "leave-at", -1, "Frame of the pointer leave")
	f.IntVar(&simFlags.Every, "every", 10, "Print every n-th frame and every transition")
	f.BoolVar(&simFlags.JSON, "json", false, "Print one JSON object per line")
	f.StringVar(&simFlags.Config, "config", "", "Galaxy YAML config")
}

type frameState struct {
	Frame         int         `json:"frame"`
	Millis        int64       `json:"ms"`
	Mode          galaxy.Mode `json:"mode"`
	Transitioning bool        `json:"transitioning"`
	Compact       int         `json:"compact"`
	Detail        int         `json:"detail"`
	Debris        int         `json:"debris"`
	Rings         bool        `json:"rings"`
	Hovered       int         `json:"hovered"`
	CameraZ       float64     `json:"cameraZ"`
}

// simulate drives a synthetic scene and writes sampled frame states to w
func simulate(w io.Writer, cfg *galaxy.Config, opts simOptions) (galaxy.Stats, error) {
	if opts.Files < 0 || opts.Frames <= 0 {
		return galaxy.Stats{}, fmt.Errorf("files must be >= 0 and frames > 0")
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}

	sources := make([]galaxy.Source, opts.Files)
	for i := range sources {
		sources[i] = galaxy.Source{
			ID:        fmt.Sprintf("sim%03d", i),
			Title:     fmt.Sprintf("photo %d", i+1),
			Thumbnail: fmt.Sprintf("uploads/thumbnails/thumb_sim%03d.jpg", i),
			Original:  fmt.Sprintf("uploads/sim%03d.jpg", i),
		}
	}

	sc := galaxy.Build(sources, cfg, rand.New(rand.NewSource(opts.Seed)), 16.0/9.0)
	engine := galaxy.NewEngine(sc, cfg)
	defer engine.Teardown()

	start := time.Unix(0, 0).UTC()
	step := time.Second / time.Duration(opts.FPS)
	engine.Start(start)

	var tw *tabwriter.Writer
	var enc *json.Encoder
	if opts.JSON {
		enc = json.NewEncoder(w)
	} else {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FRAME\tMS\tMODE\tMOVING\tCOMPACT\tDETAIL\tDEBRIS\tRINGS\tHOVER\tCAM_Z")
	}

	prevMode, prevMoving := engine.Mode(), engine.Transitioning()
	for i := 0; i < opts.Frames; i++ {
		now := start.Add(time.Duration(i) * step)
		if i == opts.MoveAt {
			engine.PointerMove(now, 0, 0)
		}
		if i == opts.LeaveAt {
			engine.PointerLeave(now)
		}
		engine.Tick(now)

		changed := engine.Mode() != prevMode || engine.Transitioning() != prevMoving
		prevMode, prevMoving = engine.Mode(), engine.Transitioning()
		if !changed && i%opts.Every != 0 && i != opts.Frames-1 {
			continue
		}

		st := sample(engine, i, now.Sub(start))
		if enc != nil {
			if err := enc.Encode(st); err != nil {
				return engine.Stats(), err
			}
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%t\t%d\t%d\t%d\t%t\t%d\t%.1f\n",
			st.Frame, st.Millis, st.Mode, st.Transitioning, st.Compact, st.Detail, st.Debris, st.Rings, st.Hovered, st.CameraZ)
	}

	stats := engine.Stats()
	if tw != nil {
		if err := tw.Flush(); err != nil {
			return stats, err
		}
		fmt.Fprintln(w, formatHeader(fmt.Sprintf("%d frames, %d transitions, %d ignored triggers",
			stats.Frames, stats.Transitions, stats.Ignored)))
	}
	return stats, nil
}

func sample(e *galaxy.Engine, frame int, elapsed time.Duration) frameState {
	sc := e.Scene()
	compact, detail := sc.VisibleCounts()
	st := frameState{
		Frame:         frame,
		Millis:        elapsed.Milliseconds(),
		Mode:          e.Mode(),
		Transitioning: e.Transitioning(),
		Compact:       compact,
		Detail:        detail,
		Hovered:       e.Hovered(),
		CameraZ:       sc.Camera.Position.Z,
	}
	for _, d := range sc.Debris {
		if d.Visible {
			st.Debris++
		}
	}
	for _, r := range sc.Rings {
		st.Rings = st.Rings || r.Visible
	}
	return st
}
