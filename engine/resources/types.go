package resources

import (
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
)

/**
 * @brief A compiled shader. Compilation is done elsewhere, the renderer only
 * enables, updates and disables it.
 */
type Shader interface {
	/** @brief The pipeline stage the shader runs on. */
	Type() metadata.ShaderType
	/** @brief The language the shader was written in. */
	Lang() metadata.ShadingLanguage
	/** @brief Binds the shader and uploads all of its uniforms. */
	Apply()
	/** @brief Uploads only the uniforms changed since the last apply. */
	ApplyDirtyUniforms()
	/** @brief Unbinds the shader. */
	Disable()
}

/** @brief A GLSL shader object that can be attached to a program. */
type GLSLShader interface {
	Shader
	GLObject() uint32
}

/** @brief A texture that can be sampled or rendered into. */
type Texture interface {
	/** @brief Binds the texture to a sampler stage. */
	Bind(stage uint32)
	/** @brief Size in pixels of a mip level. */
	Size(level uint32) (width, height uint32)
	/**
	 * @brief The native surface of a face and level used as render target.
	 * A GL texture returns an ogl.Surface, a D3D9 texture its native
	 * surface. nil when the texture cannot be rendered into.
	 */
	NativeSurface(face, level uint32) any
}

/** @brief Vertex data living in a native buffer. */
type VtxBuf interface {
	/** @brief The native buffer: uint32 buffer object on GL, a vertex buffer on D3D9. */
	Native() any
	/** @brief Bytes per vertex, 0 when unknown. */
	Stride() uint32
	/** @brief Number of vertices. */
	Count() uint32
	Lock(offset, size uint32) ([]byte, error)
	Unlock() error
}

/** @brief 16 bit indices living in a native buffer. */
type IdxBuf interface {
	Native() any
	Count() uint32
	Lock(offset, size uint32) ([]byte, error)
	Unlock() error
	/** @brief Copies count indices from start, used for debug validation. */
	Indices(start, count uint32) ([]uint16, error)
}

/** @brief A native vertex declaration built from a descriptor. */
type VtxFmt interface {
	Desc() *metadata.VertexFormatDesc
}
