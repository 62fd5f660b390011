package main

import (
	"errors"
	"log"

	"golang.design/x/clipboard"

	"github.com/milk9111/mapforge/brush"
	"github.com/milk9111/mapforge/mapfile"
)

var errNoClipboard = errors.New("clipboard unavailable")

// Clipboard exchanges brushes with the system clipboard as YAML text.
type Clipboard struct {
	ok bool
}

func NewClipboard() *Clipboard {
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard disabled: %v", err)
		return &Clipboard{}
	}
	return &Clipboard{ok: true}
}

func (c *Clipboard) WriteBrush(b brush.Brush) error {
	if !c.ok {
		return errNoClipboard
	}
	data, err := mapfile.MarshalBrush(b)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}

func (c *Clipboard) ReadBrush() (brush.Brush, error) {
	if !c.ok {
		return brush.Brush{}, errNoClipboard
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return brush.Brush{}, errors.New("clipboard is empty")
	}
	return mapfile.UnmarshalBrush(data)
}
