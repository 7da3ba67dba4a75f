package metadata

// CalcVertexCount returns the number of vertices (or indices) needed to
// draw numPrims primitives. ok is false for unknown primitive types.
func CalcVertexCount(prim PrimitiveType, numPrims uint32) (count uint32, ok bool) {
	if !prim.Valid() {
		return 0, false
	}
	if numPrims == 0 {
		return 0, true
	}
	m := &PrimitiveTypeMetas[prim]
	return numPrims*m.PerPrim + m.Extra, true
}

// CalcPrimitiveCount is the inverse of CalcVertexCount. Vertices that do
// not complete a primitive are ignored.
func CalcPrimitiveCount(prim PrimitiveType, numVtx uint32) (count uint32, ok bool) {
	if !prim.Valid() {
		return 0, false
	}
	m := &PrimitiveTypeMetas[prim]
	if numVtx <= m.Extra {
		return 0, true
	}
	return (numVtx - m.Extra) / m.PerPrim, true
}
