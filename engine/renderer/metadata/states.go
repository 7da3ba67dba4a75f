package metadata

import "github.com/spaghettifunk/rndr/engine/core"

const (
	MAX_TEXTURE_STAGES uint32 = 8
	MAX_COLOR_BUFFERS  uint32 = 4
	MAX_VERTEX_STREAMS uint32 = 8
)

/**
 * @brief Sparse set of render states. Values of unset states are never read,
 * the device keeps whatever it had.
 */
type RenderStateBlockDesc struct {
	values [NUM_RENDER_STATES]int32
	set    uint32
}

// validRenderStateValue checks v against the value group the state accepts.
func validRenderStateValue(s RenderState, v int32) bool {
	m := &RenderStateMetas[s]
	if m.Group == RSVG_INT {
		return v >= m.Min && v <= m.Max
	}
	rsv := RenderStateValue(v)
	return rsv.Valid() && RenderStateValueMetas[rsv].Group == m.Group
}

// Set stores a value for the state. Setting a state twice overwrites it.
// Bad states or values are logged and ignored.
func (d *RenderStateBlockDesc) Set(s RenderState, v int32) bool {
	if !s.Valid() {
		core.LogError("cannot set render state %d: out of range", s)
		return false
	}
	if !validRenderStateValue(s, v) {
		core.LogError("value %d is not valid for render state %s", v, s)
		return false
	}
	d.values[s] = v
	d.set |= 1 << uint32(s)
	return true
}

// SetValue is the typed form of Set for enum valued states.
func (d *RenderStateBlockDesc) SetValue(s RenderState, v RenderStateValue) bool {
	return d.Set(s, int32(v))
}

func (d *RenderStateBlockDesc) SetBool(s RenderState, b bool) bool {
	if b {
		return d.SetValue(s, RSV_TRUE)
	}
	return d.SetValue(s, RSV_FALSE)
}

func (d *RenderStateBlockDesc) IsSet(s RenderState) bool {
	return s.Valid() && d.set&(1<<uint32(s)) != 0
}

func (d *RenderStateBlockDesc) Get(s RenderState) (int32, bool) {
	if !d.IsSet(s) {
		return 0, false
	}
	return d.values[s], true
}

// GetOr returns the value of s, or def when s is not set.
func (d *RenderStateBlockDesc) GetOr(s RenderState, def int32) int32 {
	if v, ok := d.Get(s); ok {
		return v
	}
	return def
}

func (d *RenderStateBlockDesc) Empty() bool {
	return d.set == 0
}

// Each visits the set states in enum order.
func (d *RenderStateBlockDesc) Each(fn func(s RenderState, v int32)) {
	for s := RenderState(0); s < NUM_RENDER_STATES; s++ {
		if d.set&(1<<uint32(s)) != 0 {
			fn(s, d.values[s])
		}
	}
}

// Merge copies every state set in other into d.
func (d *RenderStateBlockDesc) Merge(other *RenderStateBlockDesc) {
	other.Each(func(s RenderState, v int32) {
		d.values[s] = v
		d.set |= 1 << uint32(s)
	})
}

// ResetToDefault sets every state to its table default.
func (d *RenderStateBlockDesc) ResetToDefault() {
	for s := RenderState(0); s < NUM_RENDER_STATES; s++ {
		d.values[s] = RenderStateMetas[s].Default
	}
	d.set = 1<<uint32(NUM_RENDER_STATES) - 1
}

func DefaultRenderStateBlock() RenderStateBlockDesc {
	var d RenderStateBlockDesc
	d.ResetToDefault()
	return d
}

// TextureStageDesc holds the sparse texture states of one stage.
type TextureStageDesc struct {
	values   [NUM_TEXTURE_STATES]TextureStateValue
	set      uint32
	constant uint32
	// constant color has been set
	hasConstant bool
}

/**
 * @brief Per stage sparse texture states used by the fixed function texture
 * combiner. Stages are active from 0 up to NumStages()-1.
 */
type TextureStateBlockDesc struct {
	stages    [MAX_TEXTURE_STAGES]TextureStageDesc
	numStages uint32
}

func (d *TextureStateBlockDesc) Set(stage uint32, s TextureState, v TextureStateValue) bool {
	if stage >= MAX_TEXTURE_STAGES {
		core.LogError("texture stage %d out of range [0, %d)", stage, MAX_TEXTURE_STAGES)
		return false
	}
	if !s.Valid() {
		core.LogError("cannot set texture state %d: out of range", s)
		return false
	}
	if !v.Valid() || TextureStateValueMetas[v].IsArg != TextureStateMetas[s].IsArg {
		core.LogError("value %s is not valid for texture state %s", v, s)
		return false
	}
	st := &d.stages[stage]
	st.values[s] = v
	st.set |= 1 << uint32(s)
	if stage+1 > d.numStages {
		d.numStages = stage + 1
	}
	return true
}

// SetConstant stores the constant color (0xAARRGGBB) read by CONSTANT_*
// arguments.
func (d *TextureStateBlockDesc) SetConstant(stage uint32, argb uint32) bool {
	if stage >= MAX_TEXTURE_STAGES {
		core.LogError("texture stage %d out of range [0, %d)", stage, MAX_TEXTURE_STAGES)
		return false
	}
	d.stages[stage].constant = argb
	d.stages[stage].hasConstant = true
	if stage+1 > d.numStages {
		d.numStages = stage + 1
	}
	return true
}

func (d *TextureStateBlockDesc) IsSet(stage uint32, s TextureState) bool {
	return stage < MAX_TEXTURE_STAGES && s.Valid() && d.stages[stage].set&(1<<uint32(s)) != 0
}

func (d *TextureStateBlockDesc) Get(stage uint32, s TextureState) (TextureStateValue, bool) {
	if !d.IsSet(stage, s) {
		return TSV_INVALID, false
	}
	return d.stages[stage].values[s], true
}

// GetOrDefault returns the value of s on stage, or its table default.
func (d *TextureStateBlockDesc) GetOrDefault(stage uint32, s TextureState) TextureStateValue {
	if v, ok := d.Get(stage, s); ok {
		return v
	}
	return s.Default(stage)
}

func (d *TextureStateBlockDesc) Constant(stage uint32) (uint32, bool) {
	if stage >= MAX_TEXTURE_STAGES || !d.stages[stage].hasConstant {
		return 0, false
	}
	return d.stages[stage].constant, true
}

func (d *TextureStateBlockDesc) NumStages() uint32 {
	return d.numStages
}

// Each visits the set states of one stage in enum order.
func (d *TextureStateBlockDesc) Each(stage uint32, fn func(s TextureState, v TextureStateValue)) {
	if stage >= MAX_TEXTURE_STAGES {
		return
	}
	st := &d.stages[stage]
	for s := TextureState(0); s < NUM_TEXTURE_STATES; s++ {
		if st.set&(1<<uint32(s)) != 0 {
			fn(s, st.values[s])
		}
	}
}

// ResetToDefault fills stage 0 with its defaults and leaves no other stage
// active.
func (d *TextureStateBlockDesc) ResetToDefault() {
	*d = TextureStateBlockDesc{}
	for s := TextureState(0); s < NUM_TEXTURE_STATES; s++ {
		d.Set(0, s, s.Default(0))
	}
}

// Merge copies the states set in other into d, stage by stage. The active
// stage count becomes the one of other.
func (d *TextureStateBlockDesc) Merge(other *TextureStateBlockDesc) {
	for stage := uint32(0); stage < other.numStages; stage++ {
		src := &other.stages[stage]
		dst := &d.stages[stage]
		for s := TextureState(0); s < NUM_TEXTURE_STATES; s++ {
			if src.set&(1<<uint32(s)) != 0 {
				dst.values[s] = src.values[s]
				dst.set |= 1 << uint32(s)
			}
		}
		if src.hasConstant {
			dst.constant = src.constant
			dst.hasConstant = true
		}
	}
	d.numStages = other.numStages
}
