package scene

import (
	"testing"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/math"
)

func TestNodeVisibility(t *testing.T) {
	root := NewNode("root")
	water := root.AttachNewNode("water-lp")
	smoke := root.AttachNewNode("smoke")
	puff := smoke.AttachNewNode("puff")

	water.HideFrom(1 << 1)
	smoke.HideFrom(1<<1 | 1<<2)

	tests := []struct {
		name string
		node *Node
		mask uint32
		want bool
	}{
		{"water hidden from geometry0", water, 1 << 1, false},
		{"water visible to geometry1", water, 1 << 2, true},
		{"child inherits mask", puff, 1 << 2, false},
		{"child visible to base", puff, 1 << 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.VisibleTo(tt.mask); got != tt.want {
				t.Errorf("VisibleTo(%b) = %v, want %v", tt.mask, got, tt.want)
			}
		})
	}

	root.Hide()
	if puff.VisibleTo(1 << 6) {
		t.Error("hidden root should hide descendants")
	}
}

func TestNodeFindAndReparent(t *testing.T) {
	s := NewScene()
	env := s.Root.AttachNewNode("environment")
	wheel := env.AttachNewNode("wheel-lp")

	got, err := s.Find("wheel-lp")
	if err != nil || got != wheel {
		t.Fatalf("Find() = %v, %v", got, err)
	}
	if _, err := s.Find("missing"); err == nil {
		t.Error("Find(missing) should fail")
	}

	s.Root.AddChild(wheel)
	if len(env.Children()) != 0 || wheel.Parent() != s.Root {
		t.Error("AddChild should move the node")
	}
}

func TestNodeWorldPosition(t *testing.T) {
	root := NewNode("root")
	pivot := root.AttachNewNode("pivot")
	pivot.Position = math.NewVec3(1, 2, 3)
	pivot.HPR = math.NewVec3(90, 0, 0)
	child := pivot.AttachNewNode("child")
	child.Position = math.NewVec3(1, 0, 0)

	p := child.PositionRelativeTo(root)
	want := math.NewVec3(1, 3, 3)
	if !p.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("PositionRelativeTo() = %v, want %v", p, want)
	}
}

func TestAnimationControl(t *testing.T) {
	s := NewScene()
	shutters := s.Animation("close-shutters")
	shutters.Play()
	if !shutters.IsPlaying() || shutters.IsLooping() {
		t.Error("Play should run once")
	}
	if s.Animation("close-shutters").PlayCount() != 1 {
		t.Error("Animation should return the same control")
	}
	vane := s.Animation("weather-vane-shake")
	vane.Loop()
	vane.Stop()
	if vane.IsPlaying() {
		t.Error("Stop should stop the loop")
	}
}

func TestUndrawableModels(t *testing.T) {
	sc := NewScene()
	env := sc.Root.AttachNewNode("environment")
	env.Model = "models/mill-scene.bam"
	wheel := env.AttachNewNode("wheel-lp")
	wheel.Model = "models/wheel.bam"
	wheel.InternalData = struct{}{}
	env.AttachNewNode("pivot")

	got := sc.UndrawableModels()
	if len(got) != 1 || got[0] != env {
		t.Fatalf("UndrawableModels() = %v, want [environment]", got)
	}
}
