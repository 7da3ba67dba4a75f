// Package rendertest provides recording fakes of the renderer
// collaborators for tests.
package rendertest

import (
	"encoding/binary"
	"fmt"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/resources"
)

// Shader counts how the binder drives it.
type Shader struct {
	ShaderType metadata.ShaderType
	Language   metadata.ShadingLanguage
	Object     uint32

	Applies      int
	DirtyApplies int
	Disables     int
}

func NewShader(t metadata.ShaderType, lang metadata.ShadingLanguage, object uint32) *Shader {
	return &Shader{ShaderType: t, Language: lang, Object: object}
}

func (s *Shader) Type() metadata.ShaderType      { return s.ShaderType }
func (s *Shader) Lang() metadata.ShadingLanguage { return s.Language }
func (s *Shader) Apply()                         { s.Applies++ }
func (s *Shader) ApplyDirtyUniforms()            { s.DirtyApplies++ }
func (s *Shader) Disable()                       { s.Disables++ }
func (s *Shader) GLObject() uint32               { return s.Object }
func (s *Shader) Reset()                         { s.Applies, s.DirtyApplies, s.Disables = 0, 0, 0 }
func (s *Shader) String() string                 { return fmt.Sprintf("shader(%s,%d)", s.ShaderType, s.Object) }

var _ resources.GLSLShader = (*Shader)(nil)

// Surface is an opaque native surface with a size.
type Surface struct {
	Name          string
	Width, Height uint32
}

// Texture records the stages it was bound to.
type Texture struct {
	Width, Height uint32
	// returned by NativeSurface, nil makes the texture unusable as target
	Surface any
	Bound   []uint32
}

func NewTexture(width, height uint32, surface any) *Texture {
	return &Texture{Width: width, Height: height, Surface: surface}
}

func (t *Texture) Bind(stage uint32) { t.Bound = append(t.Bound, stage) }

func (t *Texture) Size(level uint32) (uint32, uint32) {
	return max(t.Width>>level, 1), max(t.Height>>level, 1)
}

func (t *Texture) NativeSurface(face, level uint32) any { return t.Surface }

var _ resources.Texture = (*Texture)(nil)

// VtxBuf keeps its data in memory.
type VtxBuf struct {
	resources.LockState
	NativeObj   any
	StrideBytes uint32
	Data        []byte
}

func NewVtxBuf(native any, stride, count uint32) *VtxBuf {
	return &VtxBuf{NativeObj: native, StrideBytes: stride, Data: make([]byte, stride*count)}
}

func (b *VtxBuf) Native() any    { return b.NativeObj }
func (b *VtxBuf) Stride() uint32 { return b.StrideBytes }

func (b *VtxBuf) Count() uint32 {
	if b.StrideBytes == 0 {
		return 0
	}
	return uint32(len(b.Data)) / b.StrideBytes
}

func (b *VtxBuf) Lock(offset, size uint32) ([]byte, error) {
	if offset+size > uint32(len(b.Data)) {
		return nil, fmt.Errorf("lock [%d, %d) past %d bytes", offset, offset+size, len(b.Data))
	}
	if err := b.LockState.Lock(); err != nil {
		return nil, err
	}
	return b.Data[offset : offset+size], nil
}

var _ resources.VtxBuf = (*VtxBuf)(nil)

// IdxBuf keeps 16 bit indices in memory.
type IdxBuf struct {
	resources.LockState
	NativeObj any
	Data      []uint16
}

func NewIdxBuf(native any, indices ...uint16) *IdxBuf {
	return &IdxBuf{NativeObj: native, Data: indices}
}

func (b *IdxBuf) Native() any   { return b.NativeObj }
func (b *IdxBuf) Count() uint32 { return uint32(len(b.Data)) }

// Lock hands out a little endian copy, written back on Unlock.
func (b *IdxBuf) Lock(offset, size uint32) ([]byte, error) {
	if offset+size > uint32(len(b.Data))*2 {
		return nil, fmt.Errorf("lock [%d, %d) past %d bytes", offset, offset+size, len(b.Data)*2)
	}
	if err := b.LockState.Lock(); err != nil {
		return nil, err
	}
	out := make([]byte, len(b.Data)*2)
	for i, v := range b.Data {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out[offset : offset+size], nil
}

func (b *IdxBuf) Indices(start, count uint32) ([]uint16, error) {
	if start+count > uint32(len(b.Data)) {
		return nil, fmt.Errorf("indices [%d, %d) of %d: %w", start, start+count, len(b.Data), core.ErrIndexOutOfRange)
	}
	return b.Data[start : start+count], nil
}

var _ resources.IdxBuf = (*IdxBuf)(nil)

// Display is a window of fixed size. SizeMoves counts HandleSizeMove calls,
// OnSizeMove runs inside it.
type Display struct {
	Desc       metadata.DispDesc
	Changed    bool
	SizeMoves  int
	OnSizeMove func()
}

func NewDisplay(width, height uint32) *Display {
	return &Display{Desc: metadata.DispDesc{Width: width, Height: height}}
}

func (d *Display) DispDesc() metadata.DispDesc { return d.Desc }

func (d *Display) HandleSizeMove() bool {
	d.SizeMoves++
	if d.OnSizeMove != nil {
		d.OnSizeMove()
	}
	changed := d.Changed
	d.Changed = false
	return changed
}

// Resize changes the size reported on the next frame.
func (d *Display) Resize(width, height uint32) {
	d.Desc.Width, d.Desc.Height = width, height
	d.Changed = true
}
