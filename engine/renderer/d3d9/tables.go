package d3d9

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

// renderState returns the D3DRS state and value for an engine render state.
func renderState(s metadata.RenderState, v int32) (state, value uint32, ok bool) {
	m, ok := s.Meta()
	if !ok {
		return 0, 0, false
	}
	if m.Group == metadata.RSVG_INT {
		return m.D3D, uint32(v), true
	}
	vm, ok := metadata.RenderStateValue(v).Meta()
	if !ok {
		return 0, 0, false
	}
	return m.D3D, vm.D3D, true
}

// textureOp translates a combiner operation, replacing dot3 with
// SELECTARG1 on hardware without it.
func textureOp(v metadata.TextureStateValue, caps *metadata.Caps) (uint32, bool) {
	vm, ok := v.Meta()
	if !ok {
		return 0, false
	}
	if v == metadata.TSV_DOT3 && !caps.Has(metadata.CAP_DOT3) {
		core.LogWarnOnce("d3d9.dot3", "dot3 texture combiner not supported, falling back to SELECTARG1")
		return tokens.D3DTOP_SELECTARG1, true
	}
	return vm.D3D, true
}

// textureArg translates a combiner argument. Without per stage constants
// the single global texture factor stands in for D3DTA_CONSTANT.
func textureArg(v metadata.TextureStateValue, caps *metadata.Caps) (uint32, bool) {
	vm, ok := v.Meta()
	if !ok {
		return 0, false
	}
	arg := vm.D3D
	if arg&tokens.D3DTA_SELECTMASK == tokens.D3DTA_CONSTANT && !caps.Has(metadata.CAP_PER_STAGE_CONSTANT) {
		core.LogWarnOnce("d3d9.perstageconstant", "per stage constants not supported, falling back to TFACTOR")
		arg = arg&^tokens.D3DTA_SELECTMASK | tokens.D3DTA_TFACTOR
	}
	return arg, true
}

// declElements builds the native declaration of a vertex format.
func declElements(desc *metadata.VertexFormatDesc) ([]VertexElement, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	out := make([]VertexElement, 0, len(desc.Elements))
	for _, e := range desc.Elements {
		fm := metadata.ClrFmtMetas[e.Format]
		sm := metadata.VtxSemMetas[e.Semantic]
		out = append(out, VertexElement{
			Stream:     uint16(e.Stream),
			Offset:     uint16(e.Offset),
			Type:       uint8(fm.D3D),
			Method:     0,
			Usage:      uint8(sm.D3DUsage),
			UsageIndex: uint8(sm.D3DUsageIndex),
		})
	}
	return out, nil
}

// colorARGB packs a normalized RGBA color as D3DCOLOR.
func colorARGB(c mgl32.Vec4) uint32 {
	b := func(f float32) uint32 {
		return uint32(core.Clamp(f, 0, 1)*255 + 0.5)
	}
	return b(c[3])<<24 | b(c[0])<<16 | b(c[1])<<8 | b(c[2])
}

func clearFlags(f metadata.ClearFlags) uint32 {
	var out uint32
	if f&metadata.CLEAR_COLOR != 0 {
		out |= tokens.D3DCLEAR_TARGET
	}
	if f&metadata.CLEAR_DEPTH != 0 {
		out |= tokens.D3DCLEAR_ZBUFFER
	}
	if f&metadata.CLEAR_STENCIL != 0 {
		out |= tokens.D3DCLEAR_STENCIL
	}
	return out
}
