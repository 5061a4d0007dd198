package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

func writeFile(t *testing.T, root, name string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestManager(t *testing.T) (*AssetManager, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "shaders/vertex/base.vert", []byte("#version 150\nvoid main() {}\n"))
	writeFile(t, root, "shaders/fragment/fog.frag", []byte("#version 150\nuniform vec2 enabled;\n"))
	writeFile(t, root, "sounds/wheel.ogg", []byte("OggS"))
	writeFile(t, root, "notes.txt", []byte("ignored"))

	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(root, "blank.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	am, err := NewAssetManager(root, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = am.Shutdown() })
	return am, root
}

func TestAssetManagerIndex(t *testing.T) {
	am, _ := newTestManager(t)

	if got := am.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	shaders := am.Names(metadata.ResourceTypeShader)
	want := []string{"shaders/fragment/fog.frag", "shaders/vertex/base.vert"}
	if len(shaders) != len(want) {
		t.Fatalf("Names(shader) = %v, want %v", shaders, want)
	}
	for i := range want {
		if shaders[i] != want[i] {
			t.Errorf("Names(shader)[%d] = %q, want %q", i, shaders[i], want[i])
		}
	}
	if am.Has("notes.txt") {
		t.Error("unknown extensions should not be indexed")
	}
}

func TestAssetManagerLoad(t *testing.T) {
	am, _ := newTestManager(t)

	res, err := am.LoadAsset("shaders/fragment/fog.frag", metadata.ResourceTypeShader, nil)
	if err != nil {
		t.Fatalf("LoadAsset(shader) error = %v", err)
	}
	if res.Name != "shaders/fragment/fog.frag" {
		t.Errorf("Name = %q", res.Name)
	}
	if src, ok := res.Data.([]byte); !ok || len(src) == 0 {
		t.Errorf("Data = %T, want non empty []byte", res.Data)
	}

	res, err = am.LoadAsset("blank.png", metadata.ResourceTypeImage, nil)
	if err != nil {
		t.Fatalf("LoadAsset(image) error = %v", err)
	}
	rgba, ok := res.Data.(*image.RGBA)
	if !ok {
		t.Fatalf("Data = %T, want *image.RGBA", res.Data)
	}
	if rgba.Bounds().Dx() != 2 || rgba.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v, want 2x3", rgba.Bounds())
	}
}

func TestAssetManagerErrors(t *testing.T) {
	am, _ := newTestManager(t)

	tests := []struct {
		name         string
		asset        string
		resourceType metadata.ResourceType
		notFound     bool
	}{
		{"missing file", "shaders/fragment/missing.frag", metadata.ResourceTypeShader, true},
		{"wrong type", "blank.png", metadata.ResourceTypeShader, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := am.LoadAsset(tt.asset, tt.resourceType, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.Is(err, core.ErrAssetNotFound); got != tt.notFound {
				t.Errorf("errors.Is(ErrAssetNotFound) = %v, want %v (err = %v)", got, tt.notFound, err)
			}
		})
	}
}

func TestAssetManagerMissingRoot(t *testing.T) {
	am, err := NewAssetManager(filepath.Join(t.TempDir(), "nope"), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := am.Initialize(); !errors.Is(err, core.ErrAssetNotFound) {
		t.Errorf("Initialize() error = %v, want ErrAssetNotFound", err)
	}
}

func TestShaderNames(t *testing.T) {
	v, f := ShaderNames(metadata.ShaderPair{Vertex: "base", Fragment: "ssao"})
	if v != "shaders/vertex/base.vert" || f != "shaders/fragment/ssao.frag" {
		t.Errorf("ShaderNames() = %q, %q", v, f)
	}
}

func TestDetermineAssetType(t *testing.T) {
	tests := []struct {
		path string
		want metadata.ResourceType
	}{
		{"a/b.frag", metadata.ResourceTypeShader},
		{"a/b.PNG", metadata.ResourceTypeImage},
		{"fonts/font.ttf", metadata.ResourceTypeFont},
		{"fonts/font.fnt", metadata.ResourceTypeBitmapFont},
		{"sounds/water.ogg", metadata.ResourceTypeSound},
		{"eggs/mill-scene/mill-scene.bam", metadata.ResourceTypeModel},
		{"README", metadata.ResourceTypeNone},
	}
	for _, tt := range tests {
		if got := determineAssetType(tt.path); got != tt.want {
			t.Errorf("determineAssetType(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}
