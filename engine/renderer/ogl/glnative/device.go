// Package glnative implements the ogl Device with go-gl on a 3.2
// compatibility context.
package glnative

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.2-compatibility/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/renderer/ogl"
)

type device struct {
	info ogl.DeviceInfo
	swap func()
	rb   uint32
}

func getInt(pname uint32) uint32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	if v < 0 {
		return 0
	}
	return uint32(v)
}

/**
 * @brief Returns a factory binding devices to the GL context current on the
 * calling thread. swap presents the back buffer of the window owning it.
 */
func Factory(swap func()) ogl.DeviceFactory {
	return func(disp metadata.DispDesc, present metadata.PresentDesc) (ogl.Device, error) {
		if err := gl.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize gl: %w", err)
		}
		major, minor := getInt(gl.MAJOR_VERSION), getInt(gl.MINOR_VERSION)
		version := major*10 + minor
		d := &device{
			swap: swap,
			info: ogl.DeviceInfo{
				Version:          gl.GoStr(gl.GetString(gl.VERSION)),
				Renderer:         gl.GoStr(gl.GetString(gl.RENDERER)),
				MaxTextureUnits:  getInt(gl.MAX_TEXTURE_UNITS),
				MaxDrawBuffers:   getInt(gl.MAX_DRAW_BUFFERS),
				MaxVertexAttribs: getInt(gl.MAX_VERTEX_ATTRIBS),
				// core since 1.3
				Combine:           version >= 13,
				Dot3:              version >= 13,
				GLSL:              version >= 20,
				FramebufferObject: version >= 30,
				GeometryShader:    version >= 32,
			},
		}
		core.LogDebug("gl context %d.%d: %s", major, minor, d.info.Version)
		return d, nil
	}
}

func (d *device) Info() ogl.DeviceInfo {
	return d.info
}

func (d *device) Release() {}

func (d *device) Enable(cap uint32, on bool) {
	if on {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

func (d *device) AlphaFunc(fn uint32, ref float32) { gl.AlphaFunc(fn, ref) }
func (d *device) BlendFunc(src, dst uint32)        { gl.BlendFunc(src, dst) }
func (d *device) ColorMask(r, g, b, a bool)        { gl.ColorMask(r, g, b, a) }
func (d *device) CullFace(face uint32)             { gl.CullFace(face) }
func (d *device) DepthFunc(fn uint32)              { gl.DepthFunc(fn) }
func (d *device) DepthMask(on bool)                { gl.DepthMask(on) }
func (d *device) PolygonMode(mode uint32)          { gl.PolygonMode(gl.FRONT_AND_BACK, mode) }

func (d *device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *device) LoadMatrix(mode uint32, m mgl32.Mat4) {
	gl.MatrixMode(mode)
	gl.LoadMatrixf(&m[0])
}

func (d *device) Light(light, pname uint32, v mgl32.Vec4) {
	gl.Lightfv(light, pname, &v[0])
}

func (d *device) Material(pname uint32, v mgl32.Vec4) {
	gl.Materialfv(gl.FRONT_AND_BACK, pname, &v[0])
}

func (d *device) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (d *device) TexEnv(pname, value uint32) {
	gl.TexEnvi(gl.TEXTURE_ENV, pname, int32(value))
}

func (d *device) TexEnvColor(c mgl32.Vec4) {
	gl.TexEnvfv(gl.TEXTURE_ENV, gl.TEXTURE_ENV_COLOR, &c[0])
}

func (d *device) UnbindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.TEXTURE_2D)
}

func (d *device) CreateProgram(shaders []uint32) (uint32, error) {
	p := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(p, s)
	}
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(p, logLength, nil, gl.Str(log))
		gl.DeleteProgram(p)
		return 0, fmt.Errorf("link failed: %s", strings.TrimRight(log, "\x00"))
	}
	return p, nil
}

func (d *device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (d *device) UseProgram(program uint32)    { gl.UseProgram(program) }

func (d *device) CreateFramebuffer() uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	return fbo
}

func (d *device) DeleteFramebuffer(fbo uint32) { gl.DeleteFramebuffers(1, &fbo) }
func (d *device) BindFramebuffer(fbo uint32)   { gl.BindFramebuffer(gl.FRAMEBUFFER, fbo) }

func (d *device) FramebufferTexture(attachment uint32, s ogl.Surface) {
	target := s.Target
	if target == 0 {
		target = gl.TEXTURE_2D
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, target, s.Texture, s.Level)
}

func (d *device) CreateRenderbuffer(width, height uint32) uint32 {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rb)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return rb
}

func (d *device) DeleteRenderbuffer(rb uint32) { gl.DeleteRenderbuffers(1, &rb) }

func (d *device) FramebufferRenderbuffer(attachment, rb uint32) {
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, attachment, gl.RENDERBUFFER, rb)
}

func (d *device) DrawBuffers(n uint32) {
	bufs := make([]uint32, max(n, 1))
	for i := range bufs {
		bufs[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (d *device) CheckFramebuffer() error {
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer status 0x%04X", status)
	}
	return nil
}

func (d *device) CreateBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *device) DeleteBuffer(buf uint32)       { gl.DeleteBuffers(1, &buf) }
func (d *device) BindBuffer(target, buf uint32) { gl.BindBuffer(target, buf) }

func (d *device) BufferData(target uint32, data []byte, usage uint32) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(target, len(data), ptr, usage)
}

func (d *device) ClientArray(array, unit uint32, on bool) {
	if array == gl.TEXTURE_COORD_ARRAY {
		gl.ClientActiveTexture(gl.TEXTURE0 + unit)
	}
	if on {
		gl.EnableClientState(array)
	} else {
		gl.DisableClientState(array)
	}
}

func (d *device) ArrayPointer(array, unit uint32, size int32, typ uint32, stride uint32, offset uintptr) {
	ptr := gl.PtrOffset(int(offset))
	switch array {
	case gl.VERTEX_ARRAY:
		gl.VertexPointer(size, typ, int32(stride), ptr)
	case gl.NORMAL_ARRAY:
		gl.NormalPointer(typ, int32(stride), ptr)
	case gl.COLOR_ARRAY:
		gl.ColorPointer(size, typ, int32(stride), ptr)
	case gl.SECONDARY_COLOR_ARRAY:
		gl.SecondaryColorPointer(size, typ, int32(stride), ptr)
	case gl.FOG_COORD_ARRAY:
		gl.FogCoordPointer(typ, int32(stride), ptr)
	case gl.TEXTURE_COORD_ARRAY:
		gl.ClientActiveTexture(gl.TEXTURE0 + unit)
		gl.TexCoordPointer(size, typ, int32(stride), ptr)
	default:
		core.LogError("no gl pointer call for array 0x%04X", array)
	}
}

func (d *device) VertexAttribArray(index uint32, on bool) {
	if on {
		gl.EnableVertexAttribArray(index)
	} else {
		gl.DisableVertexAttribArray(index)
	}
}

func (d *device) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride uint32, offset uintptr) {
	gl.VertexAttribPointer(index, size, typ, normalized, int32(stride), gl.PtrOffset(int(offset)))
}

func (d *device) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (d *device) DrawElements(mode uint32, count int32, offset uintptr) {
	gl.DrawElements(mode, count, gl.UNSIGNED_SHORT, gl.PtrOffset(int(offset)))
}

func (d *device) Clear(mask uint32, color mgl32.Vec4, depth float32, stencil int32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.ClearDepth(float64(depth))
	gl.ClearStencil(stencil)
	gl.Clear(mask)
}

func (d *device) SwapBuffers() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		core.LogWarn("gl error 0x%04X during the frame", code)
	}
	if d.swap != nil {
		d.swap()
	}
	return nil
}

var _ ogl.Device = (*device)(nil)
