package mapdata

import "fmt"

// RemapTilesets moves the map from the oldIDs tileset list to newIDs. Every
// tileset tile gets the local index of its catalog ID in newIDs; tiles whose
// tileset was dropped become empty. It returns the number of cells emptied.
func (m *Map) RemapTilesets(oldIDs, newIDs []int) int {
	n := m.remap(KindTileset, oldIDs, newIDs)
	m.TilesetIDs = append([]int(nil), newIDs...)
	return n
}

// RemapAutotiles is RemapTilesets for autotile references. Shapes are left
// as they were; callers re-resolve the grid afterwards since emptied cells
// change their neighbours' borders.
func (m *Map) RemapAutotiles(oldIDs, newIDs []int) int {
	n := m.remap(KindAutotile, oldIDs, newIDs)
	m.AutotileIDs = append([]int(nil), newIDs...)
	return n
}

// RemovedInUse reports whether switching from oldIDs to newIDs would empty
// at least one cell of the given kind.
func (m *Map) RemovedInUse(kind Kind, oldIDs, newIDs []int) bool {
	keep := indexOf(newIDs)
	for _, l := range m.Layers {
		for _, t := range l.Tiles {
			if t.Kind != kind {
				continue
			}
			if _, ok := keep[globalID(kind, oldIDs, t.Index)]; !ok {
				return true
			}
		}
	}
	return false
}

func (m *Map) remap(kind Kind, oldIDs, newIDs []int) int {
	keep := indexOf(newIDs)
	removed := 0
	for _, l := range m.Layers {
		for i, t := range l.Tiles {
			if t.Kind != kind {
				continue
			}
			idx, ok := keep[globalID(kind, oldIDs, t.Index)]
			if !ok {
				l.Tiles[i] = Tile{}
				removed++
				continue
			}
			l.Tiles[i].Index = idx
		}
	}
	return removed
}

func globalID(kind Kind, ids []int, local int) int {
	if local < 0 || local >= len(ids) {
		panic(fmt.Sprintf("mapdata: %s index %d out of range (list has %d)", kind, local, len(ids)))
	}
	return ids[local]
}

func indexOf(ids []int) map[int]int {
	out := make(map[int]int, len(ids))
	for i, id := range ids {
		if _, dup := out[id]; !dup {
			out[id] = i
		}
	}
	return out
}
