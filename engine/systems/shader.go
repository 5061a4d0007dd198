package systems

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/assets"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/** @brief Resolves a shader pair to a created shader. */
type ShaderProvider interface {
	Acquire(pair metadata.ShaderPair) (*metadata.Shader, error)
}

/** @brief Configuration for the shader system. */
type ShaderSystemConfig struct {
	/** @brief The maximum number of shaders held in the system. */
	MaxShaderCount uint16
}

type ShaderSystem struct {
	// This system's configuration.
	Config *ShaderSystemConfig
	// A lookup table for shader pair -> shader
	Lookup map[metadata.ShaderPair]*metadata.Shader
	// sub systems
	assetManager *assets.AssetManager
	host         renderer.Host
}

func NewShaderSystem(config *ShaderSystemConfig, am *assets.AssetManager, host renderer.Host) (*ShaderSystem, error) {
	if config.MaxShaderCount == 0 {
		err := fmt.Errorf("NewShaderSystem - config.MaxShaderCount must be greater than 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderSystem{
		Config:       config,
		Lookup:       make(map[metadata.ShaderPair]*metadata.Shader),
		assetManager: am,
		host:         host,
	}, nil
}

func (shaderSystem *ShaderSystem) Shutdown() error {
	shaderSystem.Lookup = make(map[metadata.ShaderPair]*metadata.Shader)
	return nil
}

/**
 * @brief Loads, parses and creates the shader of a pair. Shaders are
 * immutable, a pair is loaded once and shared by every pass using it.
 * A missing stage is fatal to the caller.
 */
func (shaderSystem *ShaderSystem) Acquire(pair metadata.ShaderPair) (*metadata.Shader, error) {
	if s, ok := shaderSystem.Lookup[pair]; ok {
		return s, nil
	}
	if len(shaderSystem.Lookup) >= int(shaderSystem.Config.MaxShaderCount) {
		err := fmt.Errorf("shader system is full (%d), cannot load `%s`", shaderSystem.Config.MaxShaderCount, pair)
		core.LogError(err.Error())
		return nil, err
	}

	vertexName, fragmentName := assets.ShaderNames(pair)
	vertex, err := shaderSystem.assetManager.LoadAsset(vertexName, metadata.ResourceTypeShader, nil)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	fragment, err := shaderSystem.assetManager.LoadAsset(fragmentName, metadata.ResourceTypeShader, nil)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	vertexSource := vertex.Data.([]byte)
	fragmentSource := fragment.Data.([]byte)
	uniforms := ParseUniforms(vertexSource)
	for name, decl := range ParseUniforms(fragmentSource) {
		uniforms[name] = decl
	}

	shader := &metadata.Shader{
		ID:             uuid.New().String(),
		Pair:           pair,
		VertexSource:   vertexSource,
		FragmentSource: fragmentSource,
		Uniforms:       uniforms,
	}
	if err := shaderSystem.host.CreateShader(shader); err != nil {
		err = fmt.Errorf("failed to create shader `%s`: %w", pair, err)
		core.LogError(err.Error())
		return nil, err
	}
	shaderSystem.Lookup[pair] = shader
	core.LogDebug("shader `%s` created with %d uniforms", pair, len(uniforms))
	return shader, nil
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	uniformDecl  = regexp.MustCompile(`^uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(.+)$`)
	uniformName  = regexp.MustCompile(`^(\w+)\s*(?:\[\s*(\w*)\s*\])?$`)
	defineDecl   = regexp.MustCompile(`(?m)^\s*#define\s+(\w+)\s+(\d+)\s*$`)
)

// ParseUniforms returns the uniforms declared at the top level of a GLSL
// stage. Array sizes given by a #define are resolved.
func ParseUniforms(source []byte) map[string]metadata.UniformDecl {
	src := lineComment.ReplaceAllString(blockComment.ReplaceAllString(string(source), ""), "")

	defines := map[string]int{}
	for _, m := range defineDecl.FindAllStringSubmatch(src, -1) {
		if n, err := strconv.Atoi(m[2]); err == nil {
			defines[m[1]] = n
		}
	}

	uniforms := map[string]metadata.UniformDecl{}
	for _, statement := range strings.Split(src, ";") {
		statement = strings.TrimSpace(statement)
		// strip preprocessor lines that precede the declaration
		for strings.HasPrefix(statement, "#") {
			nl := strings.IndexByte(statement, '\n')
			if nl < 0 {
				statement = ""
				break
			}
			statement = strings.TrimSpace(statement[nl+1:])
		}
		m := uniformDecl.FindStringSubmatch(strings.Join(strings.Fields(statement), " "))
		if m == nil {
			continue
		}
		for _, part := range strings.Split(m[2], ",") {
			nm := uniformName.FindStringSubmatch(strings.TrimSpace(part))
			if nm == nil {
				continue
			}
			decl := metadata.UniformDecl{Name: nm[1], Type: m[1]}
			if nm[2] != "" {
				if n, err := strconv.Atoi(nm[2]); err == nil {
					decl.ArrayLength = n
				} else {
					decl.ArrayLength = defines[nm[2]]
				}
			}
			uniforms[decl.Name] = decl
		}
	}
	return uniforms
}
