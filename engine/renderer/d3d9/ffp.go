package d3d9

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

func (b *Backend) bindFFP(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current

	// D3D9 keeps the three matrices apart.
	if flags.Has(metadata.FLAG_WORLD) && (force || next.World != cur.World) {
		logCall("SetTransform", b.dev.SetTransform(tokens.D3DTS_WORLD, next.World))
	}
	if flags.Has(metadata.FLAG_VIEW) && (force || next.View != cur.View) {
		logCall("SetTransform", b.dev.SetTransform(tokens.D3DTS_VIEW, next.View))
	}
	if flags.Has(metadata.FLAG_PROJ) && (force || next.Proj != cur.Proj) {
		logCall("SetTransform", b.dev.SetTransform(tokens.D3DTS_PROJECTION, next.Proj))
	}

	lightFlags := metadata.FLAG_LIGHT0_POS | metadata.FLAG_LIGHT0_DIFFUSE
	if flags.Has(lightFlags) {
		pos, diffuse := cur.Light0Pos, cur.Light0Diffuse
		if flags.Has(metadata.FLAG_LIGHT0_POS) {
			pos = next.Light0Pos
		}
		if flags.Has(metadata.FLAG_LIGHT0_DIFFUSE) {
			diffuse = next.Light0Diffuse
		}
		if force || pos != cur.Light0Pos || diffuse != cur.Light0Diffuse {
			logCall("SetLight", b.dev.SetLight(0, light0(pos, diffuse)))
			logCall("LightEnable", b.dev.LightEnable(0, true))
		}
	}

	matFlags := metadata.FLAG_MATERIAL_DIFFUSE | metadata.FLAG_MATERIAL_SPECULAR
	if flags.Has(matFlags) {
		diffuse, specular := cur.MaterialDiffuse, cur.MaterialSpecular
		if flags.Has(metadata.FLAG_MATERIAL_DIFFUSE) {
			diffuse = next.MaterialDiffuse
		}
		if flags.Has(metadata.FLAG_MATERIAL_SPECULAR) {
			specular = next.MaterialSpecular
		}
		if force || diffuse != cur.MaterialDiffuse || specular != cur.MaterialSpecular {
			logCall("SetMaterial", b.dev.SetMaterial(Material{
				Diffuse:  diffuse,
				Ambient:  diffuse,
				Specular: specular,
				Power:    specular[3],
			}))
		}
	}

	if flags.Has(metadata.FLAG_TSB) {
		b.bindTextureStages(&next.Tsb, &cur.Tsb, force)
	}
}

// light0 builds a directional light for w == 0 and a point light otherwise.
func light0(pos, diffuse mgl32.Vec4) Light {
	if pos[3] == 0 {
		return Light{
			Type:      tokens.D3DLIGHT_DIRECTIONAL,
			Diffuse:   diffuse,
			Direction: pos.Vec3().Mul(-1),
		}
	}
	return Light{
		Type:         tokens.D3DLIGHT_POINT,
		Diffuse:      diffuse,
		Position:     pos.Vec3().Mul(1 / pos[3]),
		Range:        1e6,
		Attenuation0: 1,
	}
}

func (b *Backend) bindTextureStages(next, cur *metadata.TextureStateBlockDesc, force bool) {
	maxStages := b.caps.Query(metadata.CAP_MAX_TEXTURE_STAGES)
	n := next.NumStages()
	if n > maxStages {
		core.LogWarnOnce("d3d9.maxstages", "%d texture stages requested, device supports %d", n, maxStages)
		n = maxStages
	}
	perStage := b.caps.Has(metadata.CAP_PER_STAGE_CONSTANT)

	for stage := uint32(0); stage < n; stage++ {
		next.Each(stage, func(s metadata.TextureState, v metadata.TextureStateValue) {
			if !force {
				if old, ok := cur.Get(stage, s); ok && old == v {
					return
				}
			}
			var value uint32
			var ok bool
			if metadata.TextureStateMetas[s].IsArg {
				value, ok = textureArg(v, &b.caps)
			} else {
				value, ok = textureOp(v, &b.caps)
			}
			if !ok {
				return
			}
			logCall("SetTextureStageState", b.dev.SetTextureStageState(stage, metadata.TextureStateMetas[s].D3D, value))
		})

		if c, ok := next.Constant(stage); ok {
			if old, set := cur.Constant(stage); force || !set || old != c {
				if perStage {
					logCall("SetTextureStageState", b.dev.SetTextureStageState(stage, tokens.D3DTSS_CONSTANT, c))
				} else {
					logCall("SetRenderState", b.dev.SetRenderState(tokens.D3DRS_TEXTUREFACTOR, c))
				}
			}
		}
	}

	// Disable the stages after the last active one.
	prev := min(cur.NumStages(), maxStages)
	if !force && n == prev {
		return
	}
	limit := max(prev, n+1)
	if force {
		limit = maxStages
	}
	for stage := n; stage < min(limit, maxStages); stage++ {
		logCall("SetTextureStageState", b.dev.SetTextureStageState(stage, tokens.D3DTSS_COLOROP, tokens.D3DTOP_DISABLE))
		logCall("SetTextureStageState", b.dev.SetTextureStageState(stage, tokens.D3DTSS_ALPHAOP, tokens.D3DTOP_DISABLE))
	}
}
