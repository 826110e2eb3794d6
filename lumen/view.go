package lumen

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// View owns the presentable surface configuration: color format, present
// mode and size.
type View struct {
	ctx    *Context
	config *wgpu.SurfaceConfiguration
}

// NewView inspects the surface capabilities and prepares a FIFO-presented
// configuration using the preferred surface format. FIFO presentation is
// what throttles the frame loop: acquisition blocks while the
// presentation queue is full.
func NewView(ctx *Context) *View {
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	return &View{
		ctx: ctx,
		config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      caps.Formats[0],
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],
		},
	}
}

// Format returns the color format presentable textures are created with.
// Pipelines rendering into this view must target the same format.
func (v *View) Format() wgpu.TextureFormat {
	return v.config.Format
}

// Configure (re)configures the surface for the given size. Must be
// called before the first Acquire and again whenever the window size
// changes.
func (v *View) Configure(width, height uint32) {
	v.config.Width = width
	v.config.Height = height
	v.ctx.Surface.Configure(v.ctx.Adapter, v.ctx.Device, v.config)
}

// Acquire returns the next presentable frame. When no drawable is
// available the surface reports an error; callers treat that as "skip
// this frame", not as a failure.
func (v *View) Acquire() (*Frame, error) {
	texture, err := v.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("get current texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	return &Frame{surface: v.ctx.Surface, texture: texture, view: view}, nil
}

// Frame is the per-frame drawable: a short-lived handle to the texture
// the compositor will display next. It is acquired at the start of a
// frame, presented or released by the end of the same frame, and never
// held across frames.
type Frame struct {
	surface *wgpu.Surface
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

// TargetView returns the texture view render passes attach to.
func (f *Frame) TargetView() *wgpu.TextureView {
	return f.view
}

// Present schedules the frame for display. The frame is consumed and
// must not be rendered to afterwards.
func (f *Frame) Present() {
	f.surface.Present()
}

// Release drops the per-frame texture handles. Safe to call after
// Present, and for frames that were acquired but never rendered.
func (f *Frame) Release() {
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
}
