package app

import (
	"fmt"
	"image"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// Compositor scales module matrices into grayscale frames and streams them
// to an animation writer. It holds one frame at a time.
type Compositor struct {
	constants domain.Constants
	logger    ports.Logger
}

// NewCompositor creates a Compositor for the given constants.
func NewCompositor(c domain.Constants, logger ports.Logger) *Compositor {
	return &Compositor{constants: c, logger: logger}
}

// Composite writes one frame per matrix, in order, and finishes the
// animation. All matrices must share one dimension.
func (c *Compositor) Composite(matrices []domain.ModuleMatrix, w ports.AnimationWriter) error {
	if len(matrices) == 0 {
		return domain.ErrNoFrames
	}
	dim := matrices[0].Size()
	for i, m := range matrices {
		if m.Size() != dim || !m.Square() {
			return fmt.Errorf("%w: matrix %d is %d modules, matrix 0 is %d",
				domain.ErrInconsistentFrameSize, i, m.Size(), dim)
		}
	}

	size := c.constants.CanvasSize(dim)
	if err := w.Begin(size, size, len(matrices)); err != nil {
		return fmt.Errorf("begin animation: %w", err)
	}
	for i, m := range matrices {
		frame := domain.Frame{
			Image: c.RenderFrame(m),
			Delay: c.constants.Delay(),
		}
		if err := w.WriteFrame(frame); err != nil {
			return fmt.Errorf("write frame %d: %w", i, err)
		}
	}
	if err := w.Finish(); err != nil {
		return fmt.Errorf("finish animation: %w", err)
	}

	c.logger.Debug("animation composited",
		ports.Int("frames", len(matrices)),
		ports.Int("matrix_modules", dim),
		ports.Int("canvas_pixels", size),
		ports.Any("delay", c.constants.Delay()),
	)
	return nil
}

// RenderFrame draws a single matrix with its border. Border pixels and
// false modules use the back color, true modules the main color.
func (c *Compositor) RenderFrame(m domain.ModuleMatrix) *image.Gray {
	scaling := int(c.constants.Scaling)
	border := int(c.constants.Border)
	size := c.constants.CanvasSize(m.Size())

	img := image.NewGray(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		row := img.Pix[py*img.Stride : py*img.Stride+size]
		my := py/scaling - border
		for px := range row {
			if m.Module(px/scaling-border, my) {
				row[px] = c.constants.MainColor
			} else {
				row[px] = c.constants.BackColor
			}
		}
	}
	return img
}
