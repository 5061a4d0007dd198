package systems

import (
	"testing"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

func TestDisplaySelectorWraps(t *testing.T) {
	g, host := newTestGraph(t, 0, nil)
	geometry := mustAdd(t, g, scenePass("geometry", "position0", "normal0"))
	position, _ := geometry.Output("position0")
	mustAdd(t, g, quadPass("outline", metadata.Inputs{"positionTexture": metadata.TextureInput(position)}))
	mustAdd(t, g, quadPass("gammaCorrection", metadata.Inputs{"positionTexture": metadata.TextureInput(position)}))
	if err := g.Assemble(); err != nil {
		t.Fatal(err)
	}

	ds, err := NewDisplaySelector(host, g, []DisplayEntry{
		{Label: "Positions 0", Pass: "geometry", Plane: "position0"},
		{Label: "Normals 0", Pass: "geometry", Plane: "normal0"},
		{Label: "Outline", Pass: "outline", Plane: "outline", Alpha: true},
		{Label: "Gamma Correction", Pass: "gammaCorrection", Plane: "gammaCorrection"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ds.Index() != 3 {
		t.Fatalf("start index = %d, want 3", ds.Index())
	}

	e, err := ds.Next()
	if err != nil || ds.Index() != 0 || e.Label != "Positions 0" {
		t.Errorf("Next() from last = %d (%v), want 0", ds.Index(), err)
	}
	e, _ = ds.Previous()
	if ds.Index() != 3 || e.Label != "Gamma Correction" {
		t.Errorf("Previous() from 0 = %d, want 3", ds.Index())
	}

	start := ds.Index()
	for i := 0; i < ds.Len(); i++ {
		if _, err := ds.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if ds.Index() != start {
		t.Errorf("after %d cycles index = %d, want %d", ds.Len(), ds.Index(), start)
	}
	for i := 0; i < ds.Len(); i++ {
		ds.Previous()
	}
	if ds.Index() != start {
		t.Errorf("after %d backward cycles index = %d, want %d", ds.Len(), ds.Index(), start)
	}

	if err := ds.Select(2); err != nil {
		t.Fatal(err)
	}
	card, alpha := host.Card()
	if card == nil || card.Name != "outline" || !alpha {
		t.Errorf("Card() = %v, %v, want outline with alpha", card, alpha)
	}
	ds.Next()
	if _, alpha := host.Card(); alpha {
		t.Error("alpha should be off for gamma correction")
	}
}

func TestDisplaySelectorUnknownOutput(t *testing.T) {
	g, host := newTestGraph(t, 0, nil)
	mustAdd(t, g, quadPass("a", nil))
	if _, err := NewDisplaySelector(host, g, []DisplayEntry{{Label: "B", Pass: "b", Plane: "b"}}); err == nil {
		t.Error("expected an error for an unknown pass")
	}
	if _, err := NewDisplaySelector(host, g, nil); err == nil {
		t.Error("expected an error for an empty list")
	}
}
