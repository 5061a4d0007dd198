package scene

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

type LightKind uint8

const (
	LightDirectional LightKind = iota
	LightSpot
	LightPoint
	// Lights everything evenly, needs no pivot.
	LightAmbient
)

/**
 * @brief A light hanging off a pivot node. Rotating the pivot moves the
 * light around the scene.
 */
type Light struct {
	Name  string
	Kind  LightKind
	Color math.Vec4
	/** @brief Disabled lights are skipped by the renderer. */
	Enabled      bool
	ShadowCaster bool
	ShadowSize   uint32
	Pivot        *Node
	Node         *Node
}

func NewLight(name string, kind LightKind, pivot *Node) *Light {
	l := &Light{
		Name:    name,
		Kind:    kind,
		Color:   math.NewVec4(1, 1, 1, 1),
		Enabled: true,
		Pivot:   pivot,
	}
	if pivot != nil {
		l.Node = pivot.AttachNewNode(name)
	}
	return l
}

func (l *Light) SetColor(color math.Vec4) {
	l.Color = color
}

// SetShadowCaster turns shadow casting on with a square map of size pixels,
// size 0 turns it off.
func (l *Light) SetShadowCaster(enabled bool, size uint32) {
	l.ShadowCaster = enabled
	if enabled {
		l.ShadowSize = size
	} else {
		l.ShadowSize = 0
	}
}
