package torch

import (
	"fmt"
	"log/slog"

	"github.com/softlight/lumen/facet"
	"github.com/softlight/lumen/lumen"
)

// shader entry points bundled in lumen/shaders
const (
	vertexEntry   = "vertexShader"
	fragmentEntry = "fragmentShader"
)

// Options configures the harness. Zero values fall back to defaults.
type Options struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
}

func (o Options) withDefaults() Options {
	if o.WindowWidth == 0 {
		o.WindowWidth = 800
	}

	if o.WindowHeight == 0 {
		o.WindowHeight = 600
	}

	if o.WindowTitle == "" {
		o.WindowTitle = "Lumen"
	}

	return o
}

// Run builds the window, device context, shader library, pipeline and
// geometry, then blocks in the frame loop until the window is closed.
// Every resource acquired on the way is torn down exactly once on the
// way out, dependents first. Any error it returns is fatal: there is no
// retry or degraded mode.
func Run(opts Options) error {
	opts = opts.withDefaults()

	session := &Session{}
	defer session.Close()

	win, err := facet.NewWindow(opts.WindowWidth, opts.WindowHeight, opts.WindowTitle)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	session.Defer(win.Terminate)

	ctx, err := lumen.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initialize gpu device: %w", err)
	}
	session.Defer(ctx.Release)

	lib, err := lumen.DefaultLibrary()
	if err != nil {
		return fmt.Errorf("load shader library: %w", err)
	}

	view := lumen.NewView(ctx)
	width, height := win.GetSize()
	view.Configure(width, height)

	pipelines := lumen.NewPipelineCache(ctx, lib)

	spec := lumen.PipelineSpec{
		VertexEntry:   vertexEntry,
		FragmentEntry: fragmentEntry,
		Format:        view.Format(),
	}

	// a pipeline that failed to build is unusable; stop here instead of
	// rendering with an invalid pipeline state
	pipeline, err := pipelines.Get(spec)
	if err != nil {
		return fmt.Errorf("build render pipeline: %w", err)
	}

	vertices, err := lumen.UploadVertices(ctx, lumen.TriangleVertices)
	if err != nil {
		return fmt.Errorf("upload geometry: %w", err)
	}
	session.Defer(vertices.Release)

	submitter := &Submitter{
		Queue:       NewQueue(ctx),
		Pipeline:    pipeline,
		Vertices:    vertices,
		VertexCount: uint32(len(lumen.TriangleVertices)),
	}

	loop := &Loop{
		Window: win,
		Acquire: func() (Drawable, error) {
			if w, h := win.GetSize(); w != width || h != height {
				slog.Debug("Resize surface",
					slog.Int("width", int(w)),
					slog.Int("height", int(h)),
				)

				view.Configure(w, h)
				width, height = w, h
			}

			return view.Acquire()
		},
		Render: func(frame Drawable) error {
			// a reconfigured surface can change the attachment format;
			// the pipeline is immutable, so fetch a rebuilt one
			if format := view.Format(); format != spec.Format {
				spec.Format = format

				pl, err := pipelines.Get(spec)
				if err != nil {
					frame.Release()
					return fmt.Errorf("rebuild render pipeline: %w", err)
				}
				submitter.Pipeline = pl
			}

			return submitter.SubmitFrame(frame)
		},
	}

	return loop.Run()
}
