package scene

import (
	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

/**
 * @brief A scene graph node. Transforms are relative to the parent, HPR is
 * heading, pitch and roll in degrees.
 */
type Node struct {
	Name     string
	Tags     map[string]string
	Position math.Vec3
	HPR      math.Vec3
	Scale    math.Vec3
	/** @brief Hides the node and its children from every camera. */
	Hidden bool
	/** @brief Camera mask bits the node and its children are hidden from. */
	HiddenMask uint32
	/** @brief The model asset drawn at this node, if any. */
	Model string
	/** @brief A pointer to internal, host-specific data, e.g. uploaded geometry. */
	InternalData interface{}

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Tags:  map[string]string{},
		Scale: math.NewVec3(1, 1, 1),
	}
}

// AttachNewNode creates a child node.
func (n *Node) AttachNewNode(name string) *Node {
	child := NewNode(name)
	n.AddChild(child)
	return child
}

func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) SetTag(key, value string) {
	n.Tags[key] = value
}

func (n *Node) Tag(key string) (string, bool) {
	v, ok := n.Tags[key]
	return v, ok
}

func (n *Node) Show() { n.Hidden = false }
func (n *Node) Hide() { n.Hidden = true }

// HideFrom hides the node from cameras whose mask shares a bit with mask.
func (n *Node) HideFrom(mask uint32) {
	n.HiddenMask |= mask
}

// VisibleTo reports whether a camera with the given mask draws the node,
// taking ancestors into account.
func (n *Node) VisibleTo(cameraMask uint32) bool {
	for c := n; c != nil; c = c.parent {
		if c.Hidden || c.HiddenMask&cameraMask != 0 {
			return false
		}
	}
	return true
}

// Find returns the first node named name in a depth-first walk.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits the node and its descendants depth first. Returning false
// from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Transform returns the local transform: translate, rotate (H about Z,
// P about X, R about Y) then scale.
func (n *Node) Transform() math.Mat4 {
	rotation := math.NewMat4RotationZ(n.HPR[0]).
		Mul4(math.NewMat4RotationX(n.HPR[1])).
		Mul4(math.NewMat4RotationY(n.HPR[2]))
	return math.NewMat4Translation(n.Position).Mul4(rotation).Mul4(math.NewMat4Scale(n.Scale))
}

// WorldTransform composes the transforms from the root down to the node.
func (n *Node) WorldTransform() math.Mat4 {
	m := n.Transform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform().Mul4(m)
	}
	return m
}

// PositionRelativeTo expresses the node origin in other's coordinate space.
func (n *Node) PositionRelativeTo(other *Node) math.Vec3 {
	world := math.TransformPoint(n.WorldTransform(), math.NewVec3Zero())
	if other == nil {
		return world
	}
	return math.TransformPoint(other.WorldTransform().Inv(), world)
}
