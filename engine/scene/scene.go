package scene

import (
	"fmt"
)

/**
 * @brief The scene handed to the host each frame: a node tree, the lights
 * and the animation controls of its actors.
 */
type Scene struct {
	Root       *Node
	lights     map[string]*Light
	lightOrder []string
	animations map[string]*AnimationControl
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("render"),
		lights:     make(map[string]*Light),
		animations: make(map[string]*AnimationControl),
	}
}

// AddLight registers a light under its name.
func (s *Scene) AddLight(light *Light) error {
	if _, ok := s.lights[light.Name]; ok {
		return fmt.Errorf("light `%s` already exists", light.Name)
	}
	s.lights[light.Name] = light
	s.lightOrder = append(s.lightOrder, light.Name)
	return nil
}

func (s *Scene) Light(name string) (*Light, bool) {
	l, ok := s.lights[name]
	return l, ok
}

// Lights returns the lights in registration order.
func (s *Scene) Lights() []*Light {
	out := make([]*Light, 0, len(s.lightOrder))
	for _, name := range s.lightOrder {
		out = append(out, s.lights[name])
	}
	return out
}

// Animation returns the named control, creating it on first use.
func (s *Scene) Animation(name string) *AnimationControl {
	ac, ok := s.animations[name]
	if !ok {
		ac = NewAnimationControl(name)
		s.animations[name] = ac
	}
	return ac
}

// Find looks a node up by name under the root.
func (s *Scene) Find(name string) (*Node, error) {
	n := s.Root.Find(name)
	if n == nil {
		return nil, fmt.Errorf("scene node `%s` not found", name)
	}
	return n, nil
}

// UndrawableModels lists the nodes naming a model that no host attached
// drawable geometry to.
func (s *Scene) UndrawableModels() []*Node {
	var out []*Node
	s.Root.Walk(func(n *Node) bool {
		if n.Model != "" && n.InternalData == nil {
			out = append(out, n)
		}
		return true
	})
	return out
}
