package domain

import "fmt"

// Constants holds the validated settings that drive one run of the pipeline.
type Constants struct {
	// SymbolSize is the byte length of every erasure-coded symbol.
	SymbolSize uint16

	// MainColor is the gray level of foreground (dark) modules.
	MainColor uint8

	// BackColor is the gray level of background modules and the border.
	BackColor uint8

	// Scaling is the number of pixels per module side.
	Scaling int32

	// DelayNum and DelayDen form the per-frame display delay as a fraction
	// of a second. The legacy constants file calls them FPS_NOM and FPS_DEN
	// but they are used as a delay, not as a rate.
	DelayNum uint16
	DelayDen uint16

	// Border is the width of the quiet zone in modules.
	Border int32
}

// DefaultConstants returns Constants with sensible defaults.
func DefaultConstants() Constants {
	return Constants{
		SymbolSize: 500,
		MainColor:  0x00,
		BackColor:  0xFF,
		Scaling:    4,
		DelayNum:   1,
		DelayDen:   10,
		Border:     4,
	}
}

// Validate checks the constants for errors.
func (c Constants) Validate() error {
	if c.SymbolSize == 0 {
		return fmt.Errorf("%w: symbol size must be positive", ErrInvalidConfig)
	}
	if c.MainColor == c.BackColor {
		return fmt.Errorf("%w: 0x%02x, qr code generation not possible", ErrIdenticalColors, c.MainColor)
	}
	if c.Scaling <= 0 {
		return fmt.Errorf("%w: scaling must be positive", ErrInvalidConfig)
	}
	if c.Border < 0 {
		return fmt.Errorf("%w: border must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Delay returns the per-frame display delay.
func (c Constants) Delay() Delay {
	return Delay{Numerator: c.DelayNum, Denominator: c.DelayDen}
}

// BorderPixels returns the border width in pixels.
func (c Constants) BorderPixels() int {
	return int(c.Border) * int(c.Scaling)
}

// CanvasSize returns the side length in pixels of a frame rendered from a
// matrix of the given dimension.
func (c Constants) CanvasSize(dim int) int {
	return dim*int(c.Scaling) + 2*c.BorderPixels()
}
