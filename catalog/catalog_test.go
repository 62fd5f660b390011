package catalog

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/mapforge/mapdata"
)

const manifest = `
tilesets:
  - id: 1
    name: Outside
    image: img/outside.png
    passabilities: [0, 15]
autotiles:
  - id: 10
    name: Water
    image: img/water.png
    format: quad
    animate_speed: 16
  - id: 11
    name: Lamp
    image: img/lamp.png
    format: single
`

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want mapdata.Format
		err  bool
	}{
		{in: "", want: mapdata.FormatQuad},
		{in: "quad", want: mapdata.FormatQuad},
		{in: " Single ", want: mapdata.FormatSingle},
		{in: "hex", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.err {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "duplicate tileset", body: "tilesets: [{id: 1}, {id: 1}]"},
		{name: "duplicate autotile", body: "autotiles: [{id: 2}, {id: 2}]"},
		{name: "bad format", body: "autotiles: [{id: 2, format: hex}]"},
		{name: "negative speed", body: "autotiles: [{id: 2, animate_speed: -1}]"},
		{name: "not yaml", body: "tilesets: {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest(strings.NewReader(tt.body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := ParseManifest(strings.NewReader("")); err != nil {
		t.Fatalf("empty manifest: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "img", "outside.png"), 256, 64)
	writePNG(t, filepath.Join(dir, "img", "water.png"), 288, 128)
	writePNG(t, filepath.Join(dir, "img", "lamp.png"), 128, 32)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	ts, ok := c.Tileset(1)
	if !ok || ts.Name != "Outside" || len(ts.Passabilities) != 2 || ts.Passabilities[1] != mapdata.PassAll {
		t.Fatalf("tileset 1: %+v", ts)
	}
	if got := ts.Image.(*image.RGBA).RGBAAt(0, 0); got.R != 255 {
		t.Fatalf("tileset pixel not decoded: %+v", got)
	}
	water, ok := c.Autotile(10)
	if !ok || !water.Animated() || water.Frames() != 3 {
		t.Fatalf("water: %+v", water)
	}
	lamp, _ := c.Autotile(11)
	if lamp.Format != mapdata.FormatSingle || lamp.Frames() != 4 || lamp.Animated() {
		t.Fatalf("lamp: %+v", lamp)
	}
	if n := len(c.ImagePaths()); n != 3 {
		t.Fatalf("got %d image paths", n)
	}
}

func TestLoadMissingImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWatcherReportsImageChange(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "water.png")
	writePNG(t, target, 96, 128)

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "water.png" {
			t.Fatalf("unexpected event for %s", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", target)
	}
}
