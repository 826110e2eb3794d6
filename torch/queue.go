// Package torch drives the per-frame cadence: it owns the frame loop,
// the render submitter and the startup wiring that builds everything the
// loop depends on.
package torch

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/softlight/lumen/lumen"
)

// Drawable is the per-frame presentable surface handle. It is consumed
// by the frame that acquired it and never reused.
type Drawable interface {
	TargetView() *wgpu.TextureView
	Present()
	Release()
}

// CommandBuffer is a per-frame container of encoded commands, submitted
// once and then discarded.
type CommandBuffer interface {
	Release()
}

// RenderPass is one open command-encoding scope. After End no further
// commands may be recorded into it.
type RenderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End()
}

// Encoder records one frame's commands into a CommandBuffer.
type Encoder interface {
	BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass
	Finish() (CommandBuffer, error)
}

// Queue is the ordered channel command buffers are submitted to. The
// GPU executes submissions asynchronously, in FIFO order, on its own
// timeline.
type Queue interface {
	CreateEncoder() (Encoder, error)
	Submit(buf CommandBuffer)
}

// NewQueue wraps the device context's command queue.
func NewQueue(ctx *lumen.Context) Queue {
	return &gpuQueue{ctx: ctx}
}

type gpuQueue struct {
	ctx *lumen.Context
}

func (q *gpuQueue) CreateEncoder() (Encoder, error) {
	enc, err := q.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}

	return &gpuEncoder{enc: enc}, nil
}

func (q *gpuQueue) Submit(buf CommandBuffer) {
	if gb, ok := buf.(*gpuCommandBuffer); ok {
		q.ctx.Queue.Submit(gb.buf)
	}
	buf.Release()
}

type gpuEncoder struct {
	enc *wgpu.CommandEncoder
}

func (e *gpuEncoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass {
	return &gpuRenderPass{pass: e.enc.BeginRenderPass(desc)}
}

func (e *gpuEncoder) Finish() (CommandBuffer, error) {
	buf, err := e.enc.Finish(nil)
	e.enc.Release()
	if err != nil {
		return nil, fmt.Errorf("finish command encoder: %w", err)
	}

	return &gpuCommandBuffer{buf: buf}, nil
}

type gpuRenderPass struct {
	pass *wgpu.RenderPassEncoder
}

func (p *gpuRenderPass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.pass.SetPipeline(pipeline)
}

func (p *gpuRenderPass) SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset uint64) {
	p.pass.SetVertexBuffer(slot, buffer, offset, wgpu.WholeSize)
}

func (p *gpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (p *gpuRenderPass) End() {
	p.pass.End()

	// the pass encoder must be released before the encoder is finished
	p.pass.Release()
}

type gpuCommandBuffer struct {
	buf *wgpu.CommandBuffer
}

func (b *gpuCommandBuffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}
