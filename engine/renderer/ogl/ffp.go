package ogl

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/tokens"
)

func (b *Backend) bindFFP(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	cur := b.current

	world, view := cur.World, cur.View
	if flags.Has(metadata.FLAG_WORLD) {
		world = next.World
	}
	if flags.Has(metadata.FLAG_VIEW) {
		view = next.View
	}
	viewChanged := flags.Has(metadata.FLAG_VIEW) && (force || view != cur.View)
	modelviewChanged := viewChanged || (flags.Has(metadata.FLAG_WORLD) && (force || world != cur.World))

	lightPos, lightDiffuse := cur.Light0Pos, cur.Light0Diffuse
	if flags.Has(metadata.FLAG_LIGHT0_POS) {
		lightPos = next.Light0Pos
	}
	if flags.Has(metadata.FLAG_LIGHT0_DIFFUSE) {
		lightDiffuse = next.Light0Diffuse
	}
	// GL transforms the light position by the modelview matrix in effect, so
	// it is set with the view matrix alone whenever either one changes.
	posChanged := viewChanged || (flags.Has(metadata.FLAG_LIGHT0_POS) && (force || lightPos != cur.Light0Pos))
	if posChanged {
		b.dev.LoadMatrix(tokens.GL_MODELVIEW, view)
		b.dev.Light(tokens.GL_LIGHT0, tokens.GL_POSITION, lightPos)
		modelviewChanged = true
	}
	if modelviewChanged {
		b.dev.LoadMatrix(tokens.GL_MODELVIEW, view.Mul4(world))
	}
	if flags.Has(metadata.FLAG_PROJ) && (force || next.Proj != cur.Proj) {
		b.dev.LoadMatrix(tokens.GL_PROJECTION, next.Proj)
	}
	if flags.Has(metadata.FLAG_LIGHT0_DIFFUSE) && (force || lightDiffuse != cur.Light0Diffuse) {
		b.dev.Light(tokens.GL_LIGHT0, tokens.GL_DIFFUSE, lightDiffuse)
		b.dev.Enable(tokens.GL_LIGHT0, true)
	}

	if flags.Has(metadata.FLAG_MATERIAL_DIFFUSE) && (force || next.MaterialDiffuse != cur.MaterialDiffuse) {
		b.dev.Material(tokens.GL_DIFFUSE, next.MaterialDiffuse)
	}
	if flags.Has(metadata.FLAG_MATERIAL_SPECULAR) && (force || next.MaterialSpecular != cur.MaterialSpecular) {
		b.dev.Material(tokens.GL_SPECULAR, next.MaterialSpecular)
	}

	if flags.Has(metadata.FLAG_TSB) {
		b.bindTextureStages(&next.Tsb, &cur.Tsb, force)
	}
}

// colorVec unpacks 0xAARRGGBB.
func colorVec(argb uint32) mgl32.Vec4 {
	c := func(shift uint) float32 {
		return float32((argb>>shift)&0xFF) / 255
	}
	return mgl32.Vec4{c(16), c(8), c(0), c(24)}
}

func (b *Backend) bindTextureStages(next, cur *metadata.TextureStateBlockDesc, force bool) {
	maxStages := b.caps.Query(metadata.CAP_MAX_TEXTURE_STAGES)
	n := next.NumStages()
	if n > maxStages {
		core.LogWarnOnce("gl.maxstages", "%d texture stages requested, context supports %d", n, maxStages)
		n = maxStages
	}
	combine := b.caps.Has(metadata.CAP_TEXTURE_ENV_COMBINE)
	if !combine && n > 0 {
		core.LogWarnOnce("gl.combine", "texture env combine not supported, stages fall back to REPLACE/MODULATE")
	}

	for stage := uint32(0); stage < n; stage++ {
		active := false
		activate := func() {
			if !active {
				b.dev.ActiveTexture(tokens.GL_TEXTURE0 + stage)
				active = true
			}
		}
		if !combine && b.unitOff[stage] {
			activate()
			b.dev.Enable(tokens.GL_TEXTURE_2D, true)
			b.unitOff[stage] = false
		}
		if combine && (force || !b.combineMode[stage]) {
			activate()
			b.dev.TexEnv(tokens.GL_TEXTURE_ENV_MODE, tokens.GL_COMBINE)
			b.combineMode[stage] = true
		}

		next.Each(stage, func(s metadata.TextureState, v metadata.TextureStateValue) {
			if !force {
				if old, ok := cur.Get(stage, s); ok && old == v {
					return
				}
			}
			sm := &metadata.TextureStateMetas[s]
			vm, ok := v.Meta()
			if !ok {
				return
			}
			if !combine {
				if s == metadata.TS_COLOROP {
					activate()
					mode := tokens.GL_MODULATE
					if v == metadata.TSV_ARG0 {
						mode = tokens.GL_REPLACE
					}
					b.dev.TexEnv(tokens.GL_TEXTURE_ENV_MODE, mode)
				}
				return
			}
			activate()
			if !sm.IsArg && v == metadata.TSV_DOT3 && !b.caps.Has(metadata.CAP_DOT3) {
				core.LogWarnOnce("gl.dot3", "dot3 texture combiner not supported, falling back to REPLACE")
				b.dev.TexEnv(sm.GLOp1, tokens.GL_REPLACE)
				b.dev.TexEnv(sm.GLOp2, 1)
				return
			}
			b.dev.TexEnv(sm.GLOp1, vm.GLVal1)
			b.dev.TexEnv(sm.GLOp2, vm.GLVal2)
		})

		if c, ok := next.Constant(stage); ok {
			if old, set := cur.Constant(stage); force || !set || old != c {
				activate()
				b.dev.TexEnvColor(colorVec(c))
			}
		}
	}

	// Stages after the last active one pass the previous color through, or
	// are switched off without the combine extension.
	prev := min(cur.NumStages(), maxStages)
	if !force && n == prev {
		return
	}
	limit := max(prev, n+1)
	if force {
		limit = maxStages
	}
	for stage := n; stage < min(limit, maxStages); stage++ {
		b.dev.ActiveTexture(tokens.GL_TEXTURE0 + stage)
		if !combine {
			b.dev.Enable(tokens.GL_TEXTURE_2D, false)
			b.unitOff[stage] = true
			continue
		}
		b.dev.TexEnv(tokens.GL_TEXTURE_ENV_MODE, tokens.GL_COMBINE)
		b.combineMode[stage] = true
		b.dev.TexEnv(tokens.GL_COMBINE_RGB, tokens.GL_REPLACE)
		b.dev.TexEnv(tokens.GL_SOURCE0_RGB, tokens.GL_PREVIOUS)
		b.dev.TexEnv(tokens.GL_OPERAND0_RGB, tokens.GL_SRC_COLOR)
		b.dev.TexEnv(tokens.GL_COMBINE_ALPHA, tokens.GL_REPLACE)
		b.dev.TexEnv(tokens.GL_SOURCE0_ALPHA, tokens.GL_PREVIOUS)
		b.dev.TexEnv(tokens.GL_OPERAND0_ALPHA, tokens.GL_SRC_ALPHA)
	}
}
