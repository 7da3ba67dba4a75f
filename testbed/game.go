package testbed

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine"
	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

const VERTEX_STRIDE uint32 = 16

type TestGame struct {
	*engine.Game
}

type gameState struct {
	angle  float32
	width  uint32
	height uint32

	vtxFmt   core.Handle
	ctx      *metadata.RendererContext
	triangle []byte
	ground   []byte
}

func NewTestGame() *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: &engine.ApplicationConfig{
				StartPosX:   100,
				StartPosY:   100,
				Name:        "rndr testbed",
				OptionsPath: "renderer.toml",
			},
			State: &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

type vertex struct {
	pos   mgl32.Vec3
	color [4]uint8
}

// pack lays the vertices out as COORD float3 followed by COLOR0 ubyte4n.
func pack(vs ...vertex) []byte {
	out := make([]byte, 0, len(vs)*int(VERTEX_STRIDE))
	for _, v := range vs {
		for _, f := range v.pos {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
		}
		out = append(out, v.color[:]...)
	}
	return out
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)

	desc := metadata.VertexFormatDesc{}
	desc.Append(0, metadata.CLRFMT_FLOAT3, metadata.VTXSEM_COORD).
		Append(0, metadata.CLRFMT_UBYTE4N, metadata.VTXSEM_COLOR0)
	h, err := g.Renderer.CreateVtxFmt(desc)
	if err != nil {
		return err
	}
	state.vtxFmt = h

	state.triangle = pack(
		vertex{mgl32.Vec3{0, 1, 0}, [4]uint8{255, 0, 0, 255}},
		vertex{mgl32.Vec3{-1, -1, 0}, [4]uint8{0, 255, 0, 255}},
		vertex{mgl32.Vec3{1, -1, 0}, [4]uint8{0, 0, 255, 255}},
	)
	grey := [4]uint8{90, 90, 90, 255}
	state.ground = pack(
		vertex{mgl32.Vec3{-4, -1.5, -4}, grey},
		vertex{mgl32.Vec3{-4, -1.5, 4}, grey},
		vertex{mgl32.Vec3{4, -1.5, -4}, grey},
		vertex{mgl32.Vec3{4, -1.5, 4}, grey},
	)

	ctx := metadata.NewRendererContext()
	ctx.SetRenderStateValue(metadata.RS_CULL_MODE, metadata.RSV_CULL_NONE)
	ctx.SetRenderStateValue(metadata.RS_LIGHTING, metadata.RSV_FALSE)
	// vertex colors only
	ctx.SetTextureState(0, metadata.TS_COLOROP, metadata.TSV_ARG0)
	ctx.SetTextureState(0, metadata.TS_COLORARG0, metadata.TSV_PRIMARY_COLOR)
	ctx.SetTextureState(0, metadata.TS_ALPHAOP, metadata.TSV_ARG0)
	ctx.SetTextureState(0, metadata.TS_ALPHAARG0, metadata.TSV_PRIMARY_ALPHA)
	ctx.SetVtxFmt(h)
	ctx.SetView(mgl32.LookAtV(mgl32.Vec3{0, 2, 6}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}))
	state.ctx = ctx
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)
	state.angle += float32(deltaTime)
	return nil
}

func (g *TestGame) Render(deltaTime float64) error {
	state := g.State.(*gameState)
	r := g.Renderer

	if err := r.Clear(metadata.CLEAR_ALL, mgl32.Vec4{0.1, 0.1, 0.15, 1}, 1, 0); err != nil {
		return err
	}

	state.ctx.SetWorld(mgl32.Ident4())
	r.SetContext(state.ctx)
	if err := r.DrawUp(metadata.PRIM_TRIANGLE_STRIP, 2, state.ground, VERTEX_STRIDE); err != nil {
		return err
	}

	// only the world matrix changes for the second draw
	state.ctx.SetWorld(mgl32.HomogRotate3DY(state.angle))
	r.SetContext(state.ctx)
	return r.DrawUp(metadata.PRIM_TRIANGLE_LIST, 1, state.triangle, VERTEX_STRIDE)
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width, state.height = width, height
	if state.ctx == nil || height == 0 {
		return nil
	}
	state.ctx.SetProj(mgl32.Perspective(mgl32.DegToRad(60), float32(width)/float32(height), 0.1, 100))
	return nil
}

func (g *TestGame) Shutdown() error {
	core.LogInfo("testbed shutting down")
	return nil
}
