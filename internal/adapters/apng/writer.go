// Package apng implements ports.AnimationWriter with github.com/kettek/apng.
package apng

import (
	"fmt"
	"io"

	"github.com/kettek/apng"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// State represents the lifecycle state of a Writer.
type State int

const (
	StateEmpty State = iota
	StateBuilding
	StateFinalized
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateBuilding:
		return "Building"
	case StateFinalized:
		return "Finalized"
	default:
		return "Unknown"
	}
}

// Writer collects grayscale frames and encodes them as an endlessly looping
// APNG on Finish. The container needs the frame count up front, so frames
// are held until Finish.
type Writer struct {
	out    io.Writer
	state  State
	width  int
	height int
	anim   apng.APNG
}

// NewWriter creates a Writer that encodes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// State returns the current lifecycle state.
func (w *Writer) State() State {
	return w.state
}

// Begin declares the geometry and frame count. It panics unless the writer is Empty.
func (w *Writer) Begin(width, height, frames int) error {
	if w.state != StateEmpty {
		panic(fmt.Sprintf("apng: Begin in state %s", w.state))
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("apng: invalid frame size %dx%d", width, height)
	}
	w.width, w.height = width, height
	w.anim = apng.APNG{Frames: make([]apng.Frame, 0, frames)}
	w.state = StateBuilding
	return nil
}

// WriteFrame appends one frame. It panics unless the writer is Building.
func (w *Writer) WriteFrame(frame domain.Frame) error {
	if w.state != StateBuilding {
		panic(fmt.Sprintf("apng: WriteFrame in state %s", w.state))
	}
	b := frame.Image.Bounds()
	if b.Dx() != w.width || b.Dy() != w.height {
		return fmt.Errorf("%w: frame %d is %dx%d, want %dx%d",
			domain.ErrInconsistentFrameSize, len(w.anim.Frames), b.Dx(), b.Dy(), w.width, w.height)
	}
	w.anim.Frames = append(w.anim.Frames, apng.Frame{
		Image:            frame.Image,
		DelayNumerator:   frame.Delay.Numerator,
		DelayDenominator: frame.Delay.Denominator,
	})
	return nil
}

// Finish encodes all frames to the output. It panics unless the writer is Building.
func (w *Writer) Finish() error {
	if w.state != StateBuilding {
		panic(fmt.Sprintf("apng: Finish in state %s", w.state))
	}
	w.state = StateFinalized
	if len(w.anim.Frames) == 0 {
		return fmt.Errorf("apng: %w", domain.ErrNoFrames)
	}
	if err := apng.Encode(w.out, w.anim); err != nil {
		return fmt.Errorf("apng: encode %d frames: %w", len(w.anim.Frames), err)
	}
	w.anim = apng.APNG{}
	return nil
}

var _ ports.AnimationWriter = (*Writer)(nil)
