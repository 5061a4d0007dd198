package systems

import (
	"fmt"

	"github.com/lettier/3d-game-shaders-for-beginners/engine/core"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer"
	"github.com/lettier/3d-game-shaders-for-beginners/engine/renderer/metadata"
)

/** @brief A pass output worth inspecting full-screen. */
type DisplayEntry struct {
	Label string
	Pass  string
	Plane string
	/** @brief Blend the card, for outputs that are masks. */
	Alpha bool
}

/**
 * @brief Shows any pass output full-screen in place of the final image.
 * It only changes what is presented, never what is rendered.
 */
type DisplaySelector struct {
	host     renderer.Host
	entries  []DisplayEntry
	textures []*metadata.TextureHandle
	index    int
}

// NewDisplaySelector resolves every entry against the graph. The last entry
// starts selected.
func NewDisplaySelector(host renderer.Host, graph *RenderGraphSystem, entries []DisplayEntry) (*DisplaySelector, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("display selector needs at least one entry")
	}
	ds := &DisplaySelector{
		host:     host,
		entries:  append([]DisplayEntry(nil), entries...),
		textures: make([]*metadata.TextureHandle, len(entries)),
		index:    len(entries) - 1,
	}
	for i, e := range entries {
		t, err := graph.Output(e.Pass, e.Plane)
		if err != nil {
			err = fmt.Errorf("display entry `%s`: %w", e.Label, err)
			core.LogError(err.Error())
			return nil, err
		}
		ds.textures[i] = t
	}
	return ds, nil
}

// Show hides the current card, then shows the selected one.
func (ds *DisplaySelector) Show() error {
	ds.host.HideCard()
	e := ds.entries[ds.index]
	return ds.host.ShowCard(ds.textures[ds.index], e.Alpha)
}

func (ds *DisplaySelector) Next() (DisplayEntry, error) {
	return ds.step(1)
}

func (ds *DisplaySelector) Previous() (DisplayEntry, error) {
	return ds.step(-1)
}

func (ds *DisplaySelector) step(direction int) (DisplayEntry, error) {
	n := len(ds.entries)
	ds.index = ((ds.index+direction)%n + n) % n
	return ds.entries[ds.index], ds.Show()
}

// Select jumps to an entry.
func (ds *DisplaySelector) Select(index int) error {
	if index < 0 || index >= len(ds.entries) {
		return fmt.Errorf("display entry %d out of range [0, %d)", index, len(ds.entries))
	}
	ds.index = index
	return ds.Show()
}

func (ds *DisplaySelector) Index() int {
	return ds.index
}

func (ds *DisplaySelector) Len() int {
	return len(ds.entries)
}

func (ds *DisplaySelector) Current() DisplayEntry {
	return ds.entries[ds.index]
}
