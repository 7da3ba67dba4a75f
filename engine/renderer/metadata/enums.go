package metadata

import (
	"fmt"
	"strings"
)

/** @brief The backend family the renderer can run on. */
type RendererAPI int32

const (
	/** @brief Pick the best backend available on this platform. */
	API_AUTO RendererAPI = iota
	/** @brief OpenGL, fixed function and GLSL. */
	API_OGL
	/** @brief Direct3D9 on PC. */
	API_D3D9
	/** @brief Direct3D9 on Xenon, shader only. */
	API_XENON
	NUM_RENDERER_APIS
	API_INVALID RendererAPI = -1
)

var rendererAPINames = [NUM_RENDERER_APIS]string{"AUTO", "OGL", "D3D9", "XENON"}

func (a RendererAPI) String() string {
	if a < 0 || a >= NUM_RENDERER_APIS {
		return "BAD_API"
	}
	return rendererAPINames[a]
}

// ParseRendererAPI is case insensitive since the value usually comes from
// an options file.
func ParseRendererAPI(s string) RendererAPI {
	for i, n := range rendererAPINames {
		if strings.EqualFold(n, s) {
			return RendererAPI(i)
		}
	}
	return API_INVALID
}

func (a RendererAPI) MarshalText() ([]byte, error) {
	if a < 0 || a >= NUM_RENDERER_APIS {
		return nil, fmt.Errorf("cannot marshal renderer api %d", a)
	}
	return []byte(a.String()), nil
}

func (a *RendererAPI) UnmarshalText(text []byte) error {
	api := ParseRendererAPI(string(text))
	if api == API_INVALID {
		return fmt.Errorf("unknown renderer api %q", text)
	}
	*a = api
	return nil
}

/** @brief Pipeline stage of a shader. */
type ShaderType int32

const (
	SHADER_TYPE_VERTEX ShaderType = iota
	SHADER_TYPE_PIXEL
	SHADER_TYPE_GEOMETRY
	NUM_SHADER_TYPES
)

var shaderTypeNames = [NUM_SHADER_TYPES]string{"VS", "PS", "GS"}

func (t ShaderType) String() string {
	if t < 0 || t >= NUM_SHADER_TYPES {
		return "BAD_SHADER_TYPE"
	}
	return shaderTypeNames[t]
}

/** @brief Dialect a shader was compiled from. */
type ShadingLanguage int32

const (
	LANG_D3D_ASM ShadingLanguage = iota
	LANG_D3D_HLSL
	LANG_OGL_ARB
	LANG_OGL_GLSL
	LANG_CG
	NUM_SHADING_LANGUAGES
)

var shadingLanguageNames = [NUM_SHADING_LANGUAGES]string{"ASM", "HLSL", "ARB", "GLSL", "CG"}

func (l ShadingLanguage) String() string {
	if l < 0 || l >= NUM_SHADING_LANGUAGES {
		return "BAD_LANG"
	}
	return shadingLanguageNames[l]
}

// Bit is the language's bit in the CAP_VS_PROFILES/CAP_PS_PROFILES masks.
func (l ShadingLanguage) Bit() uint32 {
	return 1 << uint32(l)
}
