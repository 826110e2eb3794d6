package torch

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vertexBinding struct {
	slot   uint32
	offset uint64
}

type fakePass struct {
	pipelines      []*wgpu.RenderPipeline
	vertexBindings []vertexBinding
	draws          [][4]uint32
	ended          int
}

func (p *fakePass) SetPipeline(pipeline *wgpu.RenderPipeline) {
	p.pipelines = append(p.pipelines, pipeline)
}

func (p *fakePass) SetVertexBuffer(slot uint32, _ *wgpu.Buffer, offset uint64) {
	p.vertexBindings = append(p.vertexBindings, vertexBinding{slot: slot, offset: offset})
}

func (p *fakePass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, [4]uint32{vertexCount, instanceCount, firstVertex, firstInstance})
}

func (p *fakePass) End() {
	p.ended++
}

type fakeEncoder struct {
	pass      *fakePass
	descs     []*wgpu.RenderPassDescriptor
	finished  int
	finishErr error
}

func (e *fakeEncoder) BeginRenderPass(desc *wgpu.RenderPassDescriptor) RenderPass {
	e.descs = append(e.descs, desc)
	return e.pass
}

func (e *fakeEncoder) Finish() (CommandBuffer, error) {
	e.finished++
	if e.finishErr != nil {
		return nil, e.finishErr
	}
	return &fakeCommandBuffer{}, nil
}

type fakeCommandBuffer struct {
	released int
}

func (b *fakeCommandBuffer) Release() {
	b.released++
}

type fakeQueue struct {
	encoders  []*fakeEncoder
	submitted []CommandBuffer
	createErr error
	finishErr error
}

func (q *fakeQueue) CreateEncoder() (Encoder, error) {
	if q.createErr != nil {
		return nil, q.createErr
	}

	enc := &fakeEncoder{pass: &fakePass{}, finishErr: q.finishErr}
	q.encoders = append(q.encoders, enc)
	return enc, nil
}

func (q *fakeQueue) Submit(buf CommandBuffer) {
	q.submitted = append(q.submitted, buf)
}

type fakeDrawable struct {
	presented int
	released  int
}

func (d *fakeDrawable) TargetView() *wgpu.TextureView { return nil }
func (d *fakeDrawable) Present()                      { d.presented++ }
func (d *fakeDrawable) Release()                      { d.released++ }

func TestSubmitFrameEncodesSingleDraw(t *testing.T) {
	queue := &fakeQueue{}
	sub := &Submitter{Queue: queue, VertexCount: 3}
	drawable := &fakeDrawable{}

	require.NoError(t, sub.SubmitFrame(drawable))

	require.Len(t, queue.encoders, 1)
	enc := queue.encoders[0]

	require.Len(t, enc.descs, 1)
	require.Len(t, enc.descs[0].ColorAttachments, 1)

	att := enc.descs[0].ColorAttachments[0]
	assert.Equal(t, wgpu.LoadOpClear, att.LoadOp)
	assert.Equal(t, wgpu.StoreOpStore, att.StoreOp)
	assert.Equal(t, ClearColor, att.ClearValue)

	require.Len(t, enc.pass.draws, 1)
	assert.Equal(t, [4]uint32{3, 1, 0, 0}, enc.pass.draws[0])

	require.Len(t, enc.pass.vertexBindings, 1)
	assert.Equal(t, vertexBinding{slot: 0, offset: 0}, enc.pass.vertexBindings[0])

	assert.Equal(t, 1, enc.pass.ended)
	assert.Equal(t, 1, enc.finished)
	assert.Len(t, queue.submitted, 1)
	assert.Equal(t, 1, drawable.presented)
	assert.Equal(t, 1, drawable.released)
}

func TestSubmitFrameClearColorConstant(t *testing.T) {
	assert.InDelta(t, 41.0/255.0, ClearColor.R, 1e-6)
	assert.InDelta(t, 42.0/255.0, ClearColor.G, 1e-6)
	assert.InDelta(t, 48.0/255.0, ClearColor.B, 1e-6)
	assert.Equal(t, 1.0, ClearColor.A)
}

func TestSubmitFrameEncoderError(t *testing.T) {
	queue := &fakeQueue{createErr: errors.New("queue is gone")}
	sub := &Submitter{Queue: queue, VertexCount: 3}
	drawable := &fakeDrawable{}

	err := sub.SubmitFrame(drawable)
	require.Error(t, err)

	assert.Empty(t, queue.submitted)
	assert.Equal(t, 0, drawable.presented)
	assert.Equal(t, 1, drawable.released, "drawable must be consumed even on error")
}

func TestSubmitFrameFinishError(t *testing.T) {
	queue := &fakeQueue{finishErr: errors.New("validation failed")}
	sub := &Submitter{Queue: queue, VertexCount: 3}
	drawable := &fakeDrawable{}

	err := sub.SubmitFrame(drawable)
	require.Error(t, err)

	assert.Empty(t, queue.submitted)
	assert.Equal(t, 0, drawable.presented)
	assert.Equal(t, 1, drawable.released)
}
