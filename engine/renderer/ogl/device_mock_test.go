package ogl

import (
	"github.com/go-gl/mathgl/mgl32"
)

type call struct {
	name string
	args []any
}

// mockDevice records every call made by the backend. Created objects get
// consecutive names starting at 1.
type mockDevice struct {
	info     DeviceInfo
	calls    []call
	nextName uint32

	linkErr  error
	fbErr    error
	released bool
}

func newMockDevice(info DeviceInfo) *mockDevice {
	return &mockDevice{info: info}
}

func (d *mockDevice) record(name string, args ...any) {
	d.calls = append(d.calls, call{name, args})
}

func (d *mockDevice) name() uint32 {
	d.nextName++
	return d.nextName
}

func (d *mockDevice) reset() { d.calls = nil }

func (d *mockDevice) count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

func (d *mockDevice) find(name string) []call {
	var out []call
	for _, c := range d.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (d *mockDevice) names() []string {
	out := make([]string, len(d.calls))
	for i, c := range d.calls {
		out[i] = c.name
	}
	return out
}

func (d *mockDevice) Info() DeviceInfo { return d.info }
func (d *mockDevice) Release()         { d.released = true }

func (d *mockDevice) Enable(cap uint32, on bool)           { d.record("Enable", cap, on) }
func (d *mockDevice) AlphaFunc(fn uint32, ref float32)     { d.record("AlphaFunc", fn, ref) }
func (d *mockDevice) BlendFunc(src, dst uint32)            { d.record("BlendFunc", src, dst) }
func (d *mockDevice) ColorMask(r, g, b, a bool)            { d.record("ColorMask", r, g, b, a) }
func (d *mockDevice) CullFace(face uint32)                 { d.record("CullFace", face) }
func (d *mockDevice) DepthFunc(fn uint32)                  { d.record("DepthFunc", fn) }
func (d *mockDevice) DepthMask(on bool)                    { d.record("DepthMask", on) }
func (d *mockDevice) PolygonMode(mode uint32)              { d.record("PolygonMode", mode) }
func (d *mockDevice) Viewport(x, y, w, h int32)            { d.record("Viewport", x, y, w, h) }
func (d *mockDevice) LoadMatrix(mode uint32, m mgl32.Mat4) { d.record("LoadMatrix", mode, m) }
func (d *mockDevice) Light(light, pname uint32, v mgl32.Vec4) {
	d.record("Light", light, pname, v)
}
func (d *mockDevice) Material(pname uint32, v mgl32.Vec4) { d.record("Material", pname, v) }
func (d *mockDevice) ActiveTexture(unit uint32)           { d.record("ActiveTexture", unit) }
func (d *mockDevice) TexEnv(pname, value uint32)          { d.record("TexEnv", pname, value) }
func (d *mockDevice) TexEnvColor(c mgl32.Vec4)            { d.record("TexEnvColor", c) }
func (d *mockDevice) UnbindTexture(unit uint32)           { d.record("UnbindTexture", unit) }

func (d *mockDevice) CreateProgram(shaders []uint32) (uint32, error) {
	d.record("CreateProgram", append([]uint32(nil), shaders...))
	if d.linkErr != nil {
		return 0, d.linkErr
	}
	return d.name(), nil
}

func (d *mockDevice) DeleteProgram(program uint32) { d.record("DeleteProgram", program) }
func (d *mockDevice) UseProgram(program uint32)    { d.record("UseProgram", program) }

func (d *mockDevice) CreateFramebuffer() uint32 {
	d.record("CreateFramebuffer")
	return d.name()
}

func (d *mockDevice) DeleteFramebuffer(fbo uint32) { d.record("DeleteFramebuffer", fbo) }
func (d *mockDevice) BindFramebuffer(fbo uint32)   { d.record("BindFramebuffer", fbo) }

func (d *mockDevice) FramebufferTexture(attachment uint32, s Surface) {
	d.record("FramebufferTexture", attachment, s)
}

func (d *mockDevice) CreateRenderbuffer(width, height uint32) uint32 {
	d.record("CreateRenderbuffer", width, height)
	return d.name()
}

func (d *mockDevice) DeleteRenderbuffer(rb uint32) { d.record("DeleteRenderbuffer", rb) }

func (d *mockDevice) FramebufferRenderbuffer(attachment, rb uint32) {
	d.record("FramebufferRenderbuffer", attachment, rb)
}

func (d *mockDevice) DrawBuffers(n uint32) { d.record("DrawBuffers", n) }

func (d *mockDevice) CheckFramebuffer() error {
	d.record("CheckFramebuffer")
	return d.fbErr
}

func (d *mockDevice) CreateBuffer() uint32 {
	d.record("CreateBuffer")
	return d.name()
}

func (d *mockDevice) DeleteBuffer(buf uint32)       { d.record("DeleteBuffer", buf) }
func (d *mockDevice) BindBuffer(target, buf uint32) { d.record("BindBuffer", target, buf) }

func (d *mockDevice) BufferData(target uint32, data []byte, usage uint32) {
	d.record("BufferData", target, len(data), usage)
}

func (d *mockDevice) ClientArray(array, unit uint32, on bool) {
	d.record("ClientArray", array, unit, on)
}

func (d *mockDevice) ArrayPointer(array, unit uint32, size int32, typ uint32, stride uint32, offset uintptr) {
	d.record("ArrayPointer", array, unit, size, typ, stride, offset)
}

func (d *mockDevice) VertexAttribArray(index uint32, on bool) {
	d.record("VertexAttribArray", index, on)
}

func (d *mockDevice) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride uint32, offset uintptr) {
	d.record("VertexAttribPointer", index, size, typ, normalized, stride, offset)
}

func (d *mockDevice) DrawArrays(mode uint32, first, count int32) {
	d.record("DrawArrays", mode, first, count)
}

func (d *mockDevice) DrawElements(mode uint32, count int32, offset uintptr) {
	d.record("DrawElements", mode, count, offset)
}

func (d *mockDevice) Clear(mask uint32, color mgl32.Vec4, depth float32, stencil int32) {
	d.record("Clear", mask, color, depth, stencil)
}

func (d *mockDevice) SwapBuffers() error {
	d.record("SwapBuffers")
	return nil
}

var _ Device = (*mockDevice)(nil)
