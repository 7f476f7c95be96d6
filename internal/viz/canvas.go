package viz

import (
	"math"
	"strings"
)

const brailleBlank = 0x2800

// Each terminal cell holds a 2x4 braille dot matrix:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid of Width x Height cells, addressed in dots
// (2*Width by 4*Height) with the origin at the top left.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= dotMask[y%4][x%2]
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.grid[y/4][x/2]&dotMask[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line between two dots with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Frame maps world coordinates (x right, y up) onto a canvas.
type Frame struct {
	c                      *Canvas
	xMin, xMax, yMin, yMax float64
}

func NewFrame(c *Canvas, xMin, xMax, yMin, yMax float64) Frame {
	return Frame{c: c, xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
}

func (f Frame) dot(x, y float64) (int, int) {
	w := float64(f.c.Width*2 - 1)
	h := float64(f.c.Height*4 - 1)
	px := (x - f.xMin) / (f.xMax - f.xMin) * w
	py := (f.yMax - y) / (f.yMax - f.yMin) * h
	return int(math.Round(px)), int(math.Round(py))
}

// Line draws a world-space segment.
func (f Frame) Line(x0, y0, x1, y1 float64) {
	ax, ay := f.dot(x0, y0)
	bx, by := f.dot(x1, y1)
	f.c.DrawLine(ax, ay, bx, by)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
