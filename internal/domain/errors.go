package domain

import "errors"

// Domain errors represent error conditions in the qrfountain pipeline.
// These errors are returned wrapped with context and can be checked with errors.Is.
var (
	// ErrPayloadTooLarge is returned when the payload length does not fit in 31 bits.
	ErrPayloadTooLarge = errors.New("qrfountain: payload too large")

	// ErrUnequalPacketLength is returned when the erasure coder produced
	// symbols of different sizes. It indicates a coder contract breach.
	ErrUnequalPacketLength = errors.New("qrfountain: packets have unequal length")

	// ErrSymbolCount is returned when the erasure coder produced a different
	// number of symbols than the source and repair counts require.
	ErrSymbolCount = errors.New("qrfountain: unexpected symbol count")

	// ErrPacketTooLargeForMatrix is returned when a packet exceeds the byte
	// capacity of the largest QR code at the lowest correction level.
	// Choose a smaller symbol size.
	ErrPacketTooLargeForMatrix = errors.New("qrfountain: packet too large for QR code")

	// ErrRenderInvariant is returned when the matrix encoder rejects a packet
	// that passed the capacity check.
	ErrRenderInvariant = errors.New("qrfountain: matrix encoder rejected a checked packet")

	// ErrInconsistentFrameSize is returned when matrices of one run differ in dimension.
	ErrInconsistentFrameSize = errors.New("qrfountain: inconsistent frame size")

	// ErrNoFrames is returned when the compositor receives no matrices.
	ErrNoFrames = errors.New("qrfountain: no frames to composite")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("qrfountain: invalid configuration")

	// ErrIdenticalColors is returned when main and back color are equal.
	ErrIdenticalColors = errors.New("qrfountain: main and back color are identical")

	// ErrMalformedPacket is returned when a packet cannot be parsed.
	ErrMalformedPacket = errors.New("qrfountain: malformed packet")

	// ErrInsufficientSymbols is returned when too few symbols of a block
	// were received to reconstruct it.
	ErrInsufficientSymbols = errors.New("qrfountain: insufficient symbols")
)
