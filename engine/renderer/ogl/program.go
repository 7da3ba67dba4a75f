package ogl

import (
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/spaghettifunk/rndr/engine/core"
	"github.com/spaghettifunk/rndr/engine/renderer/metadata"
	"github.com/spaghettifunk/rndr/engine/resources"
)

type programKey [metadata.NUM_SHADER_TYPES]core.Handle

/**
 * @brief Linked GLSL programs keyed by the shader handles they were linked
 * from. Programs survive a dispose and are deleted on destroy or when one
 * of their shaders goes away.
 */
type programCache struct {
	backend  *Backend
	programs map[programKey]uint32
	// links performed, for tests and stats
	links int
}

func newProgramCache(b *Backend) *programCache {
	return &programCache{backend: b, programs: make(map[programKey]uint32)}
}

// glslKey keeps the GLSL members of shaders the context can link. The other
// stages are driven through Apply and Disable alone.
func (c *programCache) glslKey(shaders programKey) programKey {
	var key programKey
	for t, h := range shaders {
		if metadata.ShaderType(t) == metadata.SHADER_TYPE_GEOMETRY && !c.backend.caps.Has(metadata.CAP_GEOMETRY_SHADER) {
			continue
		}
		s, ok := c.backend.tables.Shaders.Get(h)
		if !ok || s.Lang() != metadata.LANG_OGL_GLSL {
			continue
		}
		if _, ok := s.(resources.GLSLShader); ok {
			key[t] = h
		}
	}
	return key
}

/**
 * @brief Returns the program linking the GLSL shaders of key, linking it on
 * first use. 0 means fixed function.
 */
func (c *programCache) get(key programKey) (uint32, error) {
	if key == (programKey{}) {
		return 0, nil
	}
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	objects := make([]uint32, 0, len(key))
	for t, h := range key {
		if h.IsNull() {
			continue
		}
		s, ok := c.backend.tables.Shader(h)
		if !ok {
			continue
		}
		glsl, ok := s.(resources.GLSLShader)
		if !ok || s.Lang() != metadata.LANG_OGL_GLSL {
			core.LogWarn("%s shader %s is not a GLSL shader, not linked", metadata.ShaderType(t), h)
			continue
		}
		objects = append(objects, glsl.GLObject())
	}
	if len(objects) == 0 {
		return 0, nil
	}
	p, err := c.backend.dev.CreateProgram(objects)
	if err != nil {
		return 0, fmt.Errorf("failed to link program %v: %w", key, err)
	}
	c.programs[key] = p
	c.links++
	core.LogDebug("linked gl program %d from %v", p, key)
	return p, nil
}

// evict deletes every program linked from h and reports whether bound was
// one of them.
func (c *programCache) evict(h core.Handle, bound uint32) bool {
	hit := false
	maps.DeleteFunc(c.programs, func(key programKey, p uint32) bool {
		for _, k := range key {
			if k == h {
				c.backend.dev.DeleteProgram(p)
				hit = hit || p == bound
				return true
			}
		}
		return false
	})
	return hit
}

func (c *programCache) len() int {
	return len(c.programs)
}

func (c *programCache) DeviceCreate() error  { return nil }
func (c *programCache) DeviceRestore() error { return nil }
func (c *programCache) DeviceDispose()       {}

func (c *programCache) DeviceDestroy() {
	if c.backend.dev == nil {
		return
	}
	for _, p := range c.programs {
		c.backend.dev.DeleteProgram(p)
	}
	maps.Clear(c.programs)
}
