package ogl

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

/** @brief What the context reported when the device was created. */
type DeviceInfo struct {
	Version  string
	Renderer string

	MaxTextureUnits  uint32
	MaxDrawBuffers   uint32
	MaxVertexAttribs uint32

	// ARB_texture_env_combine
	Combine bool
	// ARB_texture_env_dot3
	Dot3 bool
	GLSL bool
	// ARB_geometry_shader4 or GL 3.2
	GeometryShader    bool
	FramebufferObject bool
}

/**
 * @brief A texture level usable as framebuffer attachment. The zero value
 * detaches.
 */
type Surface struct {
	Target  uint32
	Texture uint32
	Level   int32
	Width   uint32
	Height  uint32
}

/**
 * @brief The slice of OpenGL the backend drives. Object names are plain GL
 * names and 0 unbinds. Implemented by glnative on top of go-gl and by
 * recording mocks in tests.
 */
type Device interface {
	Info() DeviceInfo
	Release()

	Enable(cap uint32, on bool)
	AlphaFunc(fn uint32, ref float32)
	BlendFunc(src, dst uint32)
	ColorMask(r, g, b, a bool)
	CullFace(face uint32)
	DepthFunc(fn uint32)
	DepthMask(on bool)
	PolygonMode(mode uint32)
	Viewport(x, y, width, height int32)

	LoadMatrix(mode uint32, m mgl32.Mat4)
	Light(light, pname uint32, v mgl32.Vec4)
	Material(pname uint32, v mgl32.Vec4)
	ActiveTexture(unit uint32)
	TexEnv(pname, value uint32)
	TexEnvColor(c mgl32.Vec4)
	// UnbindTexture binds no texture to unit and disables texturing on it.
	UnbindTexture(unit uint32)

	CreateProgram(shaders []uint32) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	CreateFramebuffer() uint32
	DeleteFramebuffer(fbo uint32)
	BindFramebuffer(fbo uint32)
	FramebufferTexture(attachment uint32, s Surface)
	CreateRenderbuffer(width, height uint32) uint32
	DeleteRenderbuffer(rb uint32)
	FramebufferRenderbuffer(attachment, rb uint32)
	DrawBuffers(n uint32)
	CheckFramebuffer() error

	CreateBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target, buf uint32)
	BufferData(target uint32, data []byte, usage uint32)

	// Fixed function arrays, unit selects the coordinate set of
	// GL_TEXTURE_COORD_ARRAY.
	ClientArray(array, unit uint32, on bool)
	ArrayPointer(array, unit uint32, size int32, typ uint32, stride uint32, offset uintptr)
	VertexAttribArray(index uint32, on bool)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride uint32, offset uintptr)

	DrawArrays(mode uint32, first, count int32)
	// DrawElements reads 16 bit indices from the bound element buffer.
	DrawElements(mode uint32, count int32, offset uintptr)
	Clear(mask uint32, color mgl32.Vec4, depth float32, stencil int32)
	SwapBuffers() error
}

/** @brief Binds a device to the current GL context of a window. */
type DeviceFactory func(disp metadata.DispDesc, present metadata.PresentDesc) (Device, error)
