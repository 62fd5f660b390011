package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

// uiColors is the viewer's widget palette. The dark panel sits beside the
// map, the light surface carries the toolbar.
type uiColors struct {
	panel, surface color.Color

	buttonIdle, buttonHover, buttonPressed, buttonDisabled color.Color

	text, textActive, textMuted, label color.Color

	listSelected, listSelecting color.Color
}

var viewerColors = uiColors{
	panel:   color.RGBA{34, 38, 46, 255},
	surface: color.RGBA{220, 220, 240, 255},

	buttonIdle:     colornames.Lightsteelblue,
	buttonHover:    colornames.Lightblue,
	buttonPressed:  colornames.Steelblue,
	buttonDisabled: colornames.Gainsboro,

	text:       color.Black,
	textActive: colornames.Navy,
	textMuted:  color.Gray{Y: 128},
	label:      color.White,

	listSelected:  color.RGBA{180, 200, 255, 255},
	listSelecting: color.RGBA{200, 220, 255, 255},
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func (p uiColors) buttonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     solidNineSlice(p.buttonIdle),
		Hover:    solidNineSlice(p.buttonHover),
		Pressed:  solidNineSlice(p.buttonPressed),
		Disabled: solidNineSlice(p.buttonDisabled),
	}
}

func (p uiColors) buttonText() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     p.text,
		Hover:    p.text,
		Pressed:  p.textActive,
		Disabled: p.textMuted,
	}
}

func (p uiColors) labelColor() *widget.LabelColor {
	return &widget.LabelColor{Idle: p.label, Disabled: p.textMuted}
}

func (p uiColors) theme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          p.text,
				Selected:            p.textActive,
				DisabledUnselected:  p.textMuted,
				DisabledSelected:    p.textMuted,
				SelectingBackground: p.listSelecting,
				SelectedBackground:  p.listSelected,
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(p.surface),
				Mask: solidNineSlice(p.surface),
			},
		},
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(p.panel),
		},
		ButtonTheme: &widget.ButtonParams{
			Image:     p.buttonImage(),
			TextFace:  fontFace,
			TextColor: p.buttonText(),
		},
	}
}
