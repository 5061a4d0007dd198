package metadata

/**
 * @brief The vertex and fragment shader names of a pass. They resolve to
 * shaders/vertex/<Vertex>.vert and shaders/fragment/<Fragment>.frag.
 */
type ShaderPair struct {
	Vertex   string
	Fragment string
}

func (sp ShaderPair) String() string {
	return sp.Vertex + "/" + sp.Fragment
}

/**
 * @brief Decides whether a tag state applies to a scene node, based on
 * the node's tags.
 */
type NodePredicate interface {
	Matches(tags map[string]string) bool
}

/** @brief Matches nodes carrying the tag, whatever its value. */
type HasTag string

func (ht HasTag) Matches(tags map[string]string) bool {
	_, ok := tags[string(ht)]
	return ok
}

/** @brief Matches nodes whose tag Key has exactly Value. */
type TagEquals struct {
	Key   string
	Value string
}

func (te TagEquals) Matches(tags map[string]string) bool {
	v, ok := tags[te.Key]
	return ok && v == te.Value
}

/**
 * @brief A per-node variant of a scene-fed pass. Nodes matching the
 * predicate render with the pass inputs overlaid by Overrides.
 */
type TagState struct {
	Name      string
	When      NodePredicate
	Overrides Inputs
}

/**
 * @brief Everything needed to wire a pass: its target, its shader and the
 * values of its inputs.
 */
type PassConfig struct {
	/** @brief The unique pass name. Defaults to the target name. */
	Name string
	/** @brief The target the pass owns exclusively. */
	Target TextureTargetConfig
	/** @brief The immutable shader pair. */
	Shader ShaderPair
	/** @brief Initial input values. */
	Inputs Inputs
	/** @brief Per-node variants, scene-fed passes only. */
	TagStates []TagState
	/**
	 * @brief The lowest sort the pass may take. Only honored when
	 * HasSortFloor is set.
	 */
	SortFloor    int
	HasSortFloor bool
}

// PassName returns Name, falling back to the target name.
func (pc *PassConfig) PassName() string {
	if pc.Name != "" {
		return pc.Name
	}
	return pc.Target.Name
}
