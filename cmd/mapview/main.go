package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/mapforge/catalog"
	"github.com/milk9111/mapforge/config"
	"github.com/milk9111/mapforge/mapdata"
	"github.com/milk9111/mapforge/mapfile"
)

func main() {
	cfgPath := flag.String("config", "", "Settings file (YAML)")
	catalogPath := flag.String("catalog", "", "Asset catalog manifest, overrides the settings file")
	mapPath := flag.String("map", "", "Map file to open, overrides the settings file")
	width := flag.Int("width", 20, "Width of a new map when -map does not exist")
	height := flag.Int("height", 15, "Height of a new map when -map does not exist")
	zoom := flag.Float64("zoom", 0, "Initial zoom, overrides the settings file")
	noAnim := flag.Bool("no-anim", false, "Start with autotile animation off")
	flag.Parse()

	log.Println("Map viewer starting...")
	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		cfg = c
	}
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	if *mapPath != "" {
		cfg.Map = *mapPath
	}
	if *zoom > 0 {
		cfg.Zoom = *zoom
	}
	if *noAnim {
		cfg.ShowAnimations = false
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	m, err := openMap(cfg.Map, *width, *height, cat)
	if err != nil {
		log.Fatalf("Failed to open map: %v", err)
	}

	if err := m.CheckCatalog(cat); err != nil {
		log.Fatalf("Map %s does not fit the catalog: %v", m, err)
	}

	v := NewViewer(cfg, cat, m)
	if cfg.WatchAssets {
		w, err := catalog.WatchCatalog(cfg.Catalog, cat)
		if err != nil {
			log.Printf("Asset watching disabled: %v", err)
		} else {
			v.watcher = w
		}
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Map Viewer - " + m.String())
	ebiten.SetTPS(cfg.TickRate)

	runErr := ebiten.RunGame(v)
	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			log.Printf("Failed to stop asset watcher: %v", err)
		}
	}
	if *cfgPath != "" {
		if err := config.Save(*cfgPath, v.Settings()); err != nil {
			log.Printf("Failed to save settings: %v", err)
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

// openMap loads path, or creates a new map using every catalog entry when
// path is empty or does not exist yet.
func openMap(path string, width, height int, cat *catalog.Catalog) (*mapdata.Map, error) {
	if path != "" {
		m, err := mapfile.LoadFile(path)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		log.Printf("%s does not exist, creating a %dx%d map", path, width, height)
	}
	m := mapdata.New(1, width, height)
	m.TilesetIDs = nil
	for _, ts := range cat.Manifest.Tilesets {
		m.TilesetIDs = append(m.TilesetIDs, ts.ID)
	}
	for _, at := range cat.Manifest.Autotiles {
		m.AutotileIDs = append(m.AutotileIDs, at.ID)
	}
	return m, nil
}
