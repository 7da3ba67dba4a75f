package metadata

import (
	"fmt"

	"github.com/spaghettifunk/rndr/engine/core"
)

/** @brief One attribute of a vertex format. */
type VertexElement struct {
	Stream   uint32
	Offset   uint32
	Format   ClrFmt
	Semantic VtxSem
}

/**
 * @brief Layout of the vertices read by a draw call, possibly spread over
 * several streams. Two descriptors with the same elements describe the same
 * native declaration.
 */
type VertexFormatDesc struct {
	Elements []VertexElement
}

func (d *VertexFormatDesc) Add(stream, offset uint32, format ClrFmt, sem VtxSem) *VertexFormatDesc {
	d.Elements = append(d.Elements, VertexElement{Stream: stream, Offset: offset, Format: format, Semantic: sem})
	return d
}

// Append adds an element packed right after the previous element of the
// same stream.
func (d *VertexFormatDesc) Append(stream uint32, format ClrFmt, sem VtxSem) *VertexFormatDesc {
	return d.Add(stream, d.StreamStride(stream), format, sem)
}

func (d *VertexFormatDesc) Equal(other *VertexFormatDesc) bool {
	if len(d.Elements) != len(other.Elements) {
		return false
	}
	for i := range d.Elements {
		if d.Elements[i] != other.Elements[i] {
			return false
		}
	}
	return true
}

// Validate checks every element against the canonical tables.
func (d *VertexFormatDesc) Validate() error {
	for i, e := range d.Elements {
		if e.Stream >= MAX_VERTEX_STREAMS {
			return fmt.Errorf("element %d: stream %d: %w", i, e.Stream, core.ErrBadVertexFormat)
		}
		if !e.Format.Valid() || !e.Semantic.Valid() {
			return fmt.Errorf("element %d: format %s semantic %s: %w", i, e.Format, e.Semantic, core.ErrBadVertexFormat)
		}
	}
	return nil
}

// StreamStride is the byte size of one vertex in the stream.
func (d *VertexFormatDesc) StreamStride(stream uint32) uint32 {
	var stride uint32
	for _, e := range d.Elements {
		if e.Stream != stream || !e.Format.Valid() {
			continue
		}
		if end := e.Offset + ClrFmtMetas[e.Format].Size; end > stride {
			stride = end
		}
	}
	return stride
}

// StreamMask has bit i set when stream i carries at least one element.
func (d *VertexFormatDesc) StreamMask() uint32 {
	var mask uint32
	for _, e := range d.Elements {
		if e.Stream < MAX_VERTEX_STREAMS {
			mask |= 1 << e.Stream
		}
	}
	return mask
}

// Find returns the element with the given semantic.
func (d *VertexFormatDesc) Find(sem VtxSem) (VertexElement, bool) {
	for _, e := range d.Elements {
		if e.Semantic == sem {
			return e, true
		}
	}
	return VertexElement{}, false
}

// Clone returns a descriptor that shares no memory with d.
func (d *VertexFormatDesc) Clone() VertexFormatDesc {
	return VertexFormatDesc{Elements: append([]VertexElement(nil), d.Elements...)}
}
