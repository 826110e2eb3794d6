package lumen

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	lru "github.com/hashicorp/golang-lru/v2"
)

// PipelineSpec describes one immutable render pipeline: two named shader
// entry points and the output color format. A pipeline is never mutated;
// a different output format is a different spec and therefore a rebuilt
// pipeline.
type PipelineSpec struct {
	VertexEntry   string
	FragmentEntry string
	Format        wgpu.TextureFormat
}

// Specialize compiles the spec against the shader library into an
// immutable pipeline state. Entry point resolution is asserted before
// anything touches the GPU; compile or link errors reported by the
// driver are returned with the driver description.
func (spec PipelineSpec) Specialize(dev *wgpu.Device, lib *Library) (*wgpu.RenderPipeline, error) {
	lib.MustEntry(spec.VertexEntry, VertexStage)
	lib.MustEntry(spec.FragmentEntry, FragmentStage)

	slog.Info("Create render pipeline",
		slog.String("vertex", spec.VertexEntry),
		slog.String("fragment", spec.FragmentEntry),
		slog.Any("format", spec.Format),
	)

	module, err := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Library",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: lib.Source()},
	})
	if err != nil {
		return nil, fmt.Errorf("compile shader library: %w", err)
	}

	// the module is only needed while the pipeline is built
	defer module.Release()

	pipeline, err := dev.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Triangle.%s", spec.Format),
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: spec.VertexEntry,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(Vec3f{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: spec.FragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    spec.Format,
					Blend:     &wgpu.BlendStateReplace,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build pipeline %s/%s: %w", spec.VertexEntry, spec.FragmentEntry, err)
	}

	return pipeline, nil
}

// PipelineCache builds pipelines on demand and keeps the most recently
// used ones alive. A surface format change shows up here as a new
// PipelineSpec key, so the pipeline is rebuilt rather than mutated.
type PipelineCache struct {
	device  *wgpu.Device
	library *Library
	cache   *lru.Cache[PipelineSpec, *wgpu.RenderPipeline]
}

func NewPipelineCache(ctx *Context, lib *Library) *PipelineCache {
	cache, _ := lru.NewWithEvict[PipelineSpec, *wgpu.RenderPipeline](8, releasePipelineOnEviction)

	return &PipelineCache{
		device:  ctx.Device,
		library: lib,
		cache:   cache,
	}
}

// Get returns the pipeline for the given spec, building it on first use.
func (p *PipelineCache) Get(spec PipelineSpec) (*wgpu.RenderPipeline, error) {
	if pipeline, ok := p.cache.Get(spec); ok {
		return pipeline, nil
	}

	pipeline, err := spec.Specialize(p.device, p.library)
	if err != nil {
		return nil, err
	}

	p.cache.Add(spec, pipeline)

	return pipeline, nil
}

func releasePipelineOnEviction(_ PipelineSpec, pipeline *wgpu.RenderPipeline) {
	pipeline.Release()
}
