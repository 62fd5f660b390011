package main

import (
	"github.com/ebitenui/ebitenui/widget"

	"github.com/milk9111/mapforge/brush"
)

// ToolBar contains the radio-group state for the tool buttons.
type ToolBar struct {
	group     *widget.RadioGroup
	buttons   []*widget.Button
	cornerBtn *widget.Button
	suppress  bool
}

func (tb *ToolBar) SetTool(t brush.Tool) {
	idx := int(t)
	if tb == nil || tb.group == nil || idx < 0 || idx >= len(tb.buttons) {
		return
	}
	tb.suppress = true
	tb.group.SetActive(tb.buttons[idx])
	tb.suppress = false
}

func (tb *ToolBar) SetCorner(c brush.Corner) {
	if tb == nil || tb.cornerBtn == nil {
		return
	}
	if text := tb.cornerBtn.Text(); text != nil {
		text.Label = c.String()
	}
}

// LayerEntry is a small value used by the UI list to represent a layer row.
type LayerEntry struct {
	Index   int
	Name    string
	Visible bool
}

// LayerPanel holds the layer list widget.
type LayerPanel struct {
	list    *widget.List
	entries []any
	// suppressEvents, when true, causes the selection handler to ignore
	// programmatic selections.
	suppressEvents bool
}

func (lp *LayerPanel) SetLayers(layers []LayerEntry) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	entries := make([]any, len(layers))
	for i, l := range layers {
		entries[i] = l
	}
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *LayerPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	if idx < 0 || idx >= len(lp.entries) {
		return
	}
	lp.suppressEvents = true
	lp.list.SetSelectedEntry(lp.entries[idx])
	lp.suppressEvents = false
}

// Selected returns the index of the selected layer, or -1.
func (lp *LayerPanel) Selected() int {
	if lp == nil || lp.list == nil {
		return -1
	}
	if e, ok := lp.list.SelectedEntry().(LayerEntry); ok {
		return e.Index
	}
	return -1
}

// Toggles holds the on/off buttons whose labels track viewer state.
type Toggles struct {
	animBtn *widget.Button
	gridBtn *widget.Button
}

func setLabel(b *widget.Button, on bool, name string) {
	if b == nil {
		return
	}
	label := name + ": Off"
	if on {
		label = name + ": On"
	}
	if text := b.Text(); text != nil {
		text.Label = label
	}
}

func (t *Toggles) SetAnimations(on bool) {
	if t != nil {
		setLabel(t.animBtn, on, "Animation")
	}
}

func (t *Toggles) SetGrid(on bool) {
	if t != nil {
		setLabel(t.gridBtn, on, "Grid")
	}
}
