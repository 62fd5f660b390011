package main

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/mapforge/brush"
)

// UICallbacks connects the widgets to viewer actions. Nil callbacks are ignored.
type UICallbacks struct {
	OnToolSelected  func(tool brush.Tool)
	OnCornerCycled  func()
	OnLayerSelected func(layerIndex int)
	OnNewLayer      func()
	OnDeleteLayer   func(layerIndex int)
	OnMoveLayerUp   func(layerIndex int)
	OnMoveLayerDown func(layerIndex int)
	OnToggleVisible func(layerIndex int)
	OnToggleAnim    func()
	OnToggleGrid    func()
}

func BuildViewerUI(cb UICallbacks) (*ebitenui.UI, *ToolBar, *LayerPanel, *Toggles) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = viewerColors.theme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(ui.PrimaryTheme, &fontFace, cb.OnToolSelected, cb.OnCornerCycled)
	leftPanel, layerPanel, toggles := buildLeftPanel(ui.PrimaryTheme, &fontFace, cb)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(leftPanel)
	root.AddChild(toolbarContainer)
	ui.Container = root

	return ui, toolBar, layerPanel, toggles
}

func buildLeftPanel(theme *widget.Theme, fontFace *text.Face, cb UICallbacks) (*widget.Container, *LayerPanel, *Toggles) {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 0),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(viewerColors.panel)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 8, Right: 8}),
			),
		),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Layers", fontFace, viewerColors.labelColor()),
	))

	lp := &LayerPanel{}
	lp.list = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			entry, ok := e.(LayerEntry)
			if !ok {
				return ""
			}
			if !entry.Visible {
				return fmt.Sprintf("%d. %s (hidden)", entry.Index+1, entry.Name)
			}
			return fmt.Sprintf("%d. %s", entry.Index+1, entry.Name)
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			entry, ok := args.Entry.(LayerEntry)
			if !ok || lp.suppressEvents || cb.OnLayerSelected == nil {
				return
			}
			cb.OnLayerSelected(entry.Index)
		}),
	)
	panel.AddChild(lp.list)

	// selected runs fn with the highlighted layer, if any.
	selected := func(fn func(int)) func(*widget.ButtonClickedEventArgs) {
		return func(*widget.ButtonClickedEventArgs) {
			if fn == nil {
				return
			}
			if i := lp.Selected(); i >= 0 {
				fn(i)
			}
		}
	}
	button := func(label string, handler func(*widget.ButtonClickedEventArgs)) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ClickedHandler(handler),
		)
	}
	row := func(buttons ...*widget.Button) *widget.Container {
		c := widget.NewContainer(
			widget.ContainerOpts.Layout(
				widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
					widget.RowLayoutOpts.Spacing(6),
				),
			),
		)
		for _, b := range buttons {
			c.AddChild(b)
		}
		return c
	}

	panel.AddChild(row(
		button("New", func(*widget.ButtonClickedEventArgs) {
			if cb.OnNewLayer != nil {
				cb.OnNewLayer()
			}
		}),
		button("Delete", selected(cb.OnDeleteLayer)),
	))
	panel.AddChild(row(
		button("Up", selected(cb.OnMoveLayerUp)),
		button("Down", selected(cb.OnMoveLayerDown)),
		button("Show", selected(cb.OnToggleVisible)),
	))

	toggles := &Toggles{
		animBtn: button("Animation: On", func(*widget.ButtonClickedEventArgs) {
			if cb.OnToggleAnim != nil {
				cb.OnToggleAnim()
			}
		}),
		gridBtn: button("Grid: On", func(*widget.ButtonClickedEventArgs) {
			if cb.OnToggleGrid != nil {
				cb.OnToggleGrid()
			}
		}),
	}
	panel.AddChild(toggles.animBtn)
	panel.AddChild(toggles.gridBtn)

	return panel, lp, toggles
}
