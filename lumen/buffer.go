package lumen

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// UploadVertices copies the fixed vertex list into GPU-visible memory.
// The buffer is initialized mapped, so the CPU write is visible to the
// GPU without an explicit flush; no GPU read can be in flight because
// upload happens once before the first frame. There is no update path:
// geometry is static for the process lifetime.
func UploadVertices(ctx *Context, vertices []Vec3f) (*wgpu.Buffer, error) {
	buf, err := ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "TriangleVertices",
		Contents: toBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("upload vertices: %w", err)
	}

	return buf, nil
}
