package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/resources"
)

type bindCall struct {
	flags metadata.FieldFlags
	force bool
	ctx   metadata.RendererContext
}

type drawCall struct {
	op       string
	prim     metadata.PrimitiveType
	numPrims uint32
	// vertices or indices
	count    uint32
	startVtx uint32
}

type fakeVtxFmt struct {
	desc metadata.VertexFormatDesc
}

func (f *fakeVtxFmt) Desc() *metadata.VertexFormatDesc { return &f.desc }

// fakeBackend logs lifecycle calls into a trace shared with the registry
// entries of the test.
type fakeBackend struct {
	api    metadata.RendererAPI
	caps   metadata.Caps
	trace  *[]string
	tables *resources.Tables

	binds     []bindCall
	draws     []drawCall
	present   metadata.PresentDesc
	vtxFmts   int
	destroyed []core.Handle
	// whether each destroyed shader still resolved when reported
	resolved    []bool
	unsupported map[metadata.PrimitiveType]bool

	createErr   error
	restoreErr  error
	endSceneErr error
	notReady    bool
}

var _ Backend = (*fakeBackend)(nil)

func (b *fakeBackend) log(s string) { *b.trace = append(*b.trace, s) }

func (b *fakeBackend) API() metadata.RendererAPI { return b.api }
func (b *fakeBackend) Caps() *metadata.Caps      { return &b.caps }

func (b *fakeBackend) DeviceCreate(disp metadata.DispDesc, present metadata.PresentDesc) error {
	b.log("backend create")
	return b.createErr
}

func (b *fakeBackend) DeviceRestore(disp metadata.DispDesc, present metadata.PresentDesc) error {
	b.log("backend restore")
	b.present = present
	return b.restoreErr
}

func (b *fakeBackend) DeviceDispose() { b.log("backend dispose") }
func (b *fakeBackend) DeviceDestroy() { b.log("backend destroy") }
func (b *fakeBackend) DeviceReady() bool {
	return !b.notReady
}

func (b *fakeBackend) BindContext(next *metadata.RendererContext, flags metadata.FieldFlags, force bool) {
	b.log("bind")
	b.binds = append(b.binds, bindCall{flags: flags, force: force, ctx: *next})
}

func (b *fakeBackend) SupportsPrimitive(prim metadata.PrimitiveType) bool {
	return prim.Valid() && !b.unsupported[prim]
}

func (b *fakeBackend) Draw(prim metadata.PrimitiveType, numPrims, numVtx, startVtx uint32) error {
	b.draws = append(b.draws, drawCall{"draw", prim, numPrims, numVtx, startVtx})
	return nil
}

func (b *fakeBackend) DrawIndexed(prim metadata.PrimitiveType, numPrims, numIdx, startVtx, minVtxIdx, numVtx, startIdx uint32) error {
	b.draws = append(b.draws, drawCall{"indexed", prim, numPrims, numIdx, startVtx})
	return nil
}

func (b *fakeBackend) DrawUp(prim metadata.PrimitiveType, numPrims, numVtx uint32, vertices []byte, stride uint32) error {
	b.draws = append(b.draws, drawCall{"up", prim, numPrims, numVtx, 0})
	return nil
}

func (b *fakeBackend) DrawIndexedUp(prim metadata.PrimitiveType, numPrims, numIdx, numVtx uint32, indices []uint16, vertices []byte, stride uint32) error {
	b.draws = append(b.draws, drawCall{"indexed up", prim, numPrims, numIdx, 0})
	return nil
}

func (b *fakeBackend) Clear(flags metadata.ClearFlags, color mgl32.Vec4, z float32, stencil uint32) error {
	b.log("clear")
	return nil
}

func (b *fakeBackend) BeginScene() error {
	b.log("begin scene")
	return nil
}

func (b *fakeBackend) EndScene() error {
	b.log("end scene")
	return b.endSceneErr
}

func (b *fakeBackend) CreateVtxFmt(desc metadata.VertexFormatDesc) (resources.VtxFmt, error) {
	b.vtxFmts++
	return &fakeVtxFmt{desc: desc.Clone()}, nil
}

func (b *fakeBackend) OnShaderDestroyed(h core.Handle) {
	b.destroyed = append(b.destroyed, h)
	b.resolved = append(b.resolved, b.tables.Shaders.Valid(h))
}

// traceEntry is a registry entry logging into the shared trace.
type traceEntry struct {
	name       string
	trace      *[]string
	restoreErr error
}

func (e *traceEntry) DeviceCreate() error {
	*e.trace = append(*e.trace, e.name+" create")
	return nil
}

func (e *traceEntry) DeviceRestore() error {
	*e.trace = append(*e.trace, e.name+" restore")
	return e.restoreErr
}

func (e *traceEntry) DeviceDispose() { *e.trace = append(*e.trace, e.name+" dispose") }
func (e *traceEntry) DeviceDestroy() { *e.trace = append(*e.trace, e.name+" destroy") }
