package metadata

/** @brief A uniform declared by a shader stage. */
type UniformDecl struct {
	Name string
	/** @brief The GLSL type, e.g. sampler2D, vec2, mat4. */
	Type string
	/** @brief Array length, zero for non arrays. */
	ArrayLength int
}

/**
 * @brief A compiled shader pair and the uniforms its stages declare.
 */
type Shader struct {
	/** @brief The unique shader identifier. */
	ID string
	/** @brief The pair this shader was built from. */
	Pair ShaderPair
	/** @brief The vertex stage source. */
	VertexSource []byte
	/** @brief The fragment stage source. */
	FragmentSource []byte
	/** @brief Uniforms declared by either stage, keyed by name. */
	Uniforms map[string]UniformDecl
	/** @brief A pointer to internal, host-specific data. */
	InternalData interface{}
}
