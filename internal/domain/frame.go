package domain

import "image"

// ModuleMatrix is a square two-tone grid indexed [y][x].
// True marks a main (foreground) module.
type ModuleMatrix [][]bool

// Size returns the side length of the matrix.
func (m ModuleMatrix) Size() int {
	return len(m)
}

// Square reports whether every row has as many modules as there are rows.
func (m ModuleMatrix) Square() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

// Module returns the module at (x, y). Coordinates outside the matrix
// read as background.
func (m ModuleMatrix) Module(x, y int) bool {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return false
	}
	return m[y][x]
}

// Delay is a frame display time of Numerator/Denominator seconds.
type Delay struct {
	Numerator   uint16
	Denominator uint16
}

// Frame is one grayscale image of the animation.
type Frame struct {
	// Image holds one 8-bit gray sample per pixel.
	Image *image.Gray

	// Delay is how long the frame stays on screen.
	Delay Delay
}
