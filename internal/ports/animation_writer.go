package ports

import "github.com/bft-labs/qrfountain/internal/domain"

// AnimationWriter receives frames of a fixed size and encodes them into an
// animated image.
//
// Implementations move through Empty, Building and Finalized. Calling
// WriteFrame before Begin or after Finish is a programming error and may panic.
type AnimationWriter interface {
	// Begin declares the frame geometry and count.
	Begin(width, height, frames int) error

	// WriteFrame appends one frame. Frames must match the declared size.
	WriteFrame(frame domain.Frame) error

	// Finish flushes the animation to its destination.
	Finish() error
}
