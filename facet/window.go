// Package facet owns the native window: creation, event polling, the
// close flag and the surface descriptor a render target attaches to.
package facet

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
)

// Window is the windowing collaborator the renderer depends on. The
// renderer only ever needs the close flag, event polling, the current
// pixel size and a descriptor to attach a presentable surface to.
type Window interface {
	PollEvents()
	ShouldClose() bool
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Terminate()
}

type glfwWindow struct {
	win  *glfw.Window
	prof interface{ Stop() }
}

// NewWindow creates a native window of the given pixel size and title.
func NewWindow(width, height int, title string) (Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	w := &glfwWindow{win: window}

	if os.Getenv("LUMEN_PROFILE") == "1" {
		w.prof = profile.Start(profile.CPUProfile)
	}

	return w, nil
}

func (g *glfwWindow) PollEvents() {
	glfw.PollEvents()
}

func (g *glfwWindow) ShouldClose() bool {
	return g.win.ShouldClose()
}

func (g *glfwWindow) GetSize() (uint32, uint32) {
	width, height := g.win.GetSize()
	return uint32(width), uint32(height)
}

func (g *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(g.win)
}

func (g *glfwWindow) Terminate() {
	if g.prof != nil {
		g.prof.Stop()
	}
	g.win.Destroy()
	glfw.Terminate()
}
