// Package catalog loads the project's tilesets and autotiles from a YAML
// manifest and their PNG images.
package catalog

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/mapforge/mapdata"
)

var ErrUnknownFormat = errors.New("catalog: unknown autotile format")

type Manifest struct {
	Tilesets  []TilesetSpec  `yaml:"tilesets"`
	Autotiles []AutotileSpec `yaml:"autotiles"`
}

type TilesetSpec struct {
	ID            int    `yaml:"id"`
	Name          string `yaml:"name"`
	Image         string `yaml:"image"`
	Passabilities []int  `yaml:"passabilities"`
	Priorities    []int  `yaml:"priorities"`
}

type AutotileSpec struct {
	ID           int    `yaml:"id"`
	Name         string `yaml:"name"`
	Image        string `yaml:"image"`
	Format       string `yaml:"format"`
	AnimateSpeed int    `yaml:"animate_speed"`
	Passability  int    `yaml:"passability"`
}

// ParseFormat accepts "single" or "quad". An empty string means quad.
func ParseFormat(s string) (mapdata.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quad":
		return mapdata.FormatQuad, nil
	case "single":
		return mapdata.FormatSingle, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// ParseManifest decodes and checks a manifest.
func ParseManifest(r io.Reader) (Manifest, error) {
	var man Manifest
	if err := yaml.NewDecoder(r).Decode(&man); err != nil && !errors.Is(err, io.EOF) {
		return man, fmt.Errorf("catalog: unmarshal manifest: %w", err)
	}
	seen := make(map[int]bool)
	for _, ts := range man.Tilesets {
		if seen[ts.ID] {
			return man, fmt.Errorf("catalog: duplicate tileset id %d", ts.ID)
		}
		seen[ts.ID] = true
	}
	clear(seen)
	for _, at := range man.Autotiles {
		if seen[at.ID] {
			return man, fmt.Errorf("catalog: duplicate autotile id %d", at.ID)
		}
		seen[at.ID] = true
		if _, err := ParseFormat(at.Format); err != nil {
			return man, fmt.Errorf("catalog: autotile %d: %w", at.ID, err)
		}
		if at.AnimateSpeed < 0 {
			return man, fmt.Errorf("catalog: autotile %d: negative animate_speed", at.ID)
		}
	}
	return man, nil
}

// Catalog is a loaded manifest. It implements mapdata.Catalog.
type Catalog struct {
	*mapdata.MemCatalog
	Manifest Manifest
	// Dir is the directory image paths are relative to.
	Dir string
}

// Load reads the manifest at path and decodes every image it names.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	man, err := ParseManifest(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Build(man, filepath.Dir(path))
}

// Build decodes the images of man relative to dir.
func Build(man Manifest, dir string) (*Catalog, error) {
	c := &Catalog{MemCatalog: mapdata.NewMemCatalog(), Manifest: man, Dir: dir}
	for _, spec := range man.Tilesets {
		img, err := LoadPNG(c.resolve(spec.Image))
		if err != nil {
			return nil, fmt.Errorf("catalog: tileset %d: %w", spec.ID, err)
		}
		ts := &mapdata.Tileset{
			ID:         spec.ID,
			Name:       spec.Name,
			Image:      img,
			Priorities: spec.Priorities,
		}
		for _, p := range spec.Passabilities {
			ts.Passabilities = append(ts.Passabilities, mapdata.Passability(p))
		}
		c.AddTileset(ts)
	}
	for _, spec := range man.Autotiles {
		format, err := ParseFormat(spec.Format)
		if err != nil {
			return nil, fmt.Errorf("catalog: autotile %d: %w", spec.ID, err)
		}
		img, err := LoadPNG(c.resolve(spec.Image))
		if err != nil {
			return nil, fmt.Errorf("catalog: autotile %d: %w", spec.ID, err)
		}
		c.AddAutotile(&mapdata.Autotile{
			ID:           spec.ID,
			Name:         spec.Name,
			Format:       format,
			AnimateSpeed: spec.AnimateSpeed,
			Image:        img,
			Passability:  mapdata.Passability(spec.Passability),
		})
	}
	return c, nil
}

// ImagePaths lists every image file the catalog was built from.
func (c *Catalog) ImagePaths() []string {
	var out []string
	for _, ts := range c.Manifest.Tilesets {
		out = append(out, c.resolve(ts.Image))
	}
	for _, at := range c.Manifest.Autotiles {
		out = append(out, c.resolve(at.Image))
	}
	return out
}

func (c *Catalog) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// LoadPNG decodes a PNG file into an RGBA image with origin (0, 0).
func LoadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(src), nil
}

func toRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
