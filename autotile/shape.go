// Package autotile picks which of the 47 border shapes a quadrant-format
// autotile cell draws, from the same-group occupancy of its 8 neighbours.
package autotile

// Mask holds one bit per neighbour that belongs to the same autotile group.
type Mask uint8

const (
	N Mask = 1 << iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

const edges = N | E | S | W

// ShapeCount is the number of distinct quadrant-format shapes.
const ShapeCount = 47

const (
	// ShapeFull is drawn when all eight neighbours connect.
	ShapeFull = 0
	// ShapeIsolated is drawn when no neighbour connects.
	ShapeIsolated = 46
)

// Neighbour is one of the eight surrounding cells.
type Neighbour struct {
	DX, DY int
	Bit    Mask
}

// Neighbours lists the 8-neighbourhood, row by row from the top left.
var Neighbours = [8]Neighbour{
	{-1, -1, NW}, {0, -1, N}, {1, -1, NE},
	{-1, 0, W}, {1, 0, E},
	{-1, 1, SW}, {0, 1, S}, {1, 1, SE},
}

type rule struct {
	set   Mask
	clear Mask
}

func (r rule) match(m Mask) bool {
	return m&r.set == r.set && m&r.clear == 0
}

// shapeRules is the precedence table: shape i is the first rule matching
// the mask. Order matters; a corner only counts while both of its edges are
// connected, which the edge bits of earlier rules enforce.
var shapeRules = [ShapeCount]rule{
	// Surrounded on all four edges; corners cut or not.
	{edges | NW | NE | SE | SW, 0},
	{edges | NE | SE | SW, NW},
	{edges | NW | SE | SW, NE},
	{edges | SE | SW, NW | NE},
	{edges | NW | NE | SW, SE},
	{edges | NE | SW, NW | SE},
	{edges | NW | SW, NE | SE},
	{edges | SW, NW | NE | SE},
	{edges | NW | NE | SE, SW},
	{edges | NE | SE, NW | SW},
	{edges | NW | SE, NE | SW},
	{edges | SE, NW | NE | SW},
	{edges | NW | NE, SE | SW},
	{edges | NE, NW | SE | SW},
	{edges | NW, NE | SE | SW},
	{edges, NW | NE | SE | SW},
	// One edge open.
	{N | E | S | NE | SE, W},
	{N | E | S | SE, W | NE},
	{N | E | S | NE, W | SE},
	{N | E | S, W | NE | SE},
	{E | S | W | SE | SW, N},
	{E | S | W | SW, N | SE},
	{E | S | W | SE, N | SW},
	{E | S | W, N | SE | SW},
	{N | S | W | NW | SW, E},
	{N | S | W | NW, E | SW},
	{N | S | W | SW, E | NW},
	{N | S | W, E | NW | SW},
	{N | E | W | NW | NE, S},
	{N | E | W | NE, S | NW},
	{N | E | W | NW, S | NE},
	{N | E | W, S | NW | NE},
	// Bars and corners.
	{N | S, W | E},
	{E | W, N | S},
	{E | S | SE, W | N},
	{E | S, W | N | SE},
	{W | S | SW, N | E},
	{W | S, N | E | SW},
	{W | N | NW, E | S},
	{W | N, E | S | NW},
	{N | E | NE, W | S},
	{N | E, W | S | NE},
	// End caps and the lone tile.
	{S, W | N | E},
	{E, W | N | S},
	{N, W | E | S},
	{W, N | E | S},
	{0, edges},
}

var maskToShape = initMaskToShape()

func initMaskToShape() [256]uint8 {
	var lookup [256]uint8
	for m := 0; m < 256; m++ {
		shape := -1
		for i, r := range shapeRules {
			if r.match(Mask(m)) {
				shape = i
				break
			}
		}
		if shape < 0 {
			panic("autotile: precedence table does not cover mask")
		}
		lookup[m] = uint8(shape)
	}
	return lookup
}

// Shape returns the shape ID for a neighbour mask.
func Shape(m Mask) int {
	return int(maskToShape[m])
}

// quadrants gives, per shape, the source sub-tiles for the top-left,
// top-right, bottom-left and bottom-right 16px quarter of a cell. Sub-tiles
// are numbered row-major in a 6-column grid of 16px blocks.
var quadrants = [ShapeCount][4]int{
	{26, 27, 32, 33}, {4, 27, 32, 33}, {26, 5, 32, 33}, {4, 5, 32, 33},
	{26, 27, 32, 11}, {4, 27, 32, 11}, {26, 5, 32, 11}, {4, 5, 32, 11},
	{26, 27, 10, 33}, {4, 27, 10, 33}, {26, 5, 10, 33}, {4, 5, 10, 33},
	{26, 27, 10, 11}, {4, 27, 10, 11}, {26, 5, 10, 11}, {4, 5, 10, 11},
	{24, 25, 30, 31}, {24, 5, 30, 31}, {24, 25, 30, 11}, {24, 5, 30, 11},
	{14, 15, 20, 21}, {14, 15, 20, 11}, {14, 15, 10, 21}, {14, 15, 10, 11},
	{28, 29, 34, 35}, {28, 29, 10, 35}, {4, 29, 34, 35}, {4, 29, 10, 35},
	{38, 39, 44, 45}, {4, 39, 44, 45}, {38, 5, 44, 45}, {4, 5, 44, 45},
	{24, 29, 30, 35}, {14, 15, 44, 45}, {12, 13, 18, 19}, {12, 13, 18, 11},
	{16, 17, 22, 23}, {16, 17, 10, 23}, {40, 41, 46, 47}, {4, 41, 46, 47},
	{36, 37, 42, 43}, {36, 5, 42, 43}, {12, 17, 18, 23}, {12, 13, 42, 43},
	{36, 41, 42, 47}, {16, 17, 46, 47}, {12, 17, 42, 47},
}

// QuadrantColumns is the width of the sub-tile grid in 16px blocks.
const QuadrantColumns = 6

// Quadrants returns the four source sub-tiles of shape.
func Quadrants(shape int) [4]int {
	if shape < 0 || shape >= ShapeCount {
		return quadrants[ShapeIsolated]
	}
	return quadrants[shape]
}
