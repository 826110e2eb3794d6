package torch

import (
	"log/slog"

	"github.com/softlight/lumen/facet"
)

// Loop drives the per-frame cadence until the window reports close. It
// holds no per-frame state of its own: the close flag lives in the
// window system and the drawable is scoped to a single iteration.
type Loop struct {
	Window  facet.Window
	Acquire func() (Drawable, error)
	Render  func(Drawable) error
}

// Run blocks until the window is closed or rendering fails. Every
// iteration polls events, checks the close flag, acquires a drawable and
// delegates the frame to Render. An unavailable drawable skips the frame
// and keeps looping; pacing comes from the FIFO-presented surface, not
// from the loop itself.
func (l *Loop) Run() error {
	for {
		l.Window.PollEvents()

		if l.Window.ShouldClose() {
			return nil
		}

		frame, err := l.Acquire()
		if err != nil {
			slog.Warn("No drawable available, skipping frame",
				slog.String("error", err.Error()))
			continue
		}

		if err := l.Render(frame); err != nil {
			return err
		}
	}
}
