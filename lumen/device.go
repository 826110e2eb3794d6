// Package lumen is the GPU core of the harness: device context, surface
// view and drawable acquisition, shader library, pipeline compilation and
// geometry upload. Everything built here is created once at startup and
// read-only for the rest of the process.
package lumen

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Context owns the GPU device handle and its command submission queue,
// plus the surface and adapter they were created against.
type Context struct {
	*wgpu.Device
	*wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

// New acquires the best available GPU device that can render to the
// given surface, and its command queue. There is no software rendering
// fallback: if no adapter or device is available the returned error is a
// startup-fatal condition for the caller.
func New(sd *wgpu.SurfaceDescriptor) (ctx *Context, err error) {
	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx = &Context{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	ctx.Surface = instance.CreateSurface(sd)

	ctx.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    ctx.Surface,
	})
	if err != nil {
		err = fmt.Errorf("request adapter: %w", err)
		return
	}

	ctx.Device, err = ctx.Adapter.RequestDevice(nil)
	if err != nil {
		err = fmt.Errorf("request device: %w", err)
		return
	}

	ctx.Queue = ctx.Device.GetQueue()

	return ctx, nil
}

// Release tears the context down: it waits for in-flight GPU work to
// drain, then releases queue, device, adapter and surface. It must be
// called after all dependent resources are released, and no GPU
// operation may follow it.
func (ctx *Context) Release() {
	if ctx.Device != nil {
		// submitted command buffers may still reference device memory
		ctx.Device.Poll(true, nil)
	}

	if ctx.Queue != nil {
		ctx.Queue.Release()
		ctx.Queue = nil
	}

	if ctx.Device != nil {
		ctx.Device.Release()
		ctx.Device = nil
	}

	if ctx.Adapter != nil {
		ctx.Adapter.Release()
		ctx.Adapter = nil
	}

	if ctx.Surface != nil {
		ctx.Surface.Release()
		ctx.Surface = nil
	}
}
