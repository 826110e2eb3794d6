// Command triangle opens a window, acquires a GPU device and draws a
// static colored triangle with one draw call per frame until the window
// is closed. Exit code 0 on normal close, 1 on any startup failure.
package main

import (
	"log/slog"
	"os"

	"github.com/softlight/lumen/torch"
)

func main() {
	if err := torch.Run(torch.Options{WindowTitle: "Triangle"}); err != nil {
		slog.Error("Renderer failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
