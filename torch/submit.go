package torch

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ClearColor is the constant the color attachment is cleared to at the
// start of every frame.
var ClearColor = wgpu.Color{R: 41.0 / 255.0, G: 42.0 / 255.0, B: 48.0 / 255.0, A: 1.0}

// Submitter encodes and submits one frame: clear, bind, a single draw
// call, present. It only reads state built once at startup; the drawable
// is the only per-frame input.
type Submitter struct {
	Queue       Queue
	Pipeline    *wgpu.RenderPipeline
	Vertices    *wgpu.Buffer
	VertexCount uint32
}

// SubmitFrame records the frame's render pass against the drawable and
// commits it to the queue for asynchronous execution; the call returns
// before the GPU has executed anything. The drawable is consumed: it is
// presented and released before the call returns.
func (s *Submitter) SubmitFrame(target Drawable) error {
	defer target.Release()

	encoder, err := s.Queue.CreateEncoder()
	if err != nil {
		return fmt.Errorf("acquire command buffer: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "TrianglePass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target.TargetView(),
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: ClearColor,
			},
		},
	})

	pass.SetPipeline(s.Pipeline)
	pass.SetVertexBuffer(0, s.Vertices, 0)
	pass.Draw(s.VertexCount, 1, 0, 0)
	pass.End()

	buf, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	s.Queue.Submit(buf)
	target.Present()

	return nil
}
