package domain

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the byte length of the length header.
	HeaderSize = 4

	// HeaderMarker is the bit set in every length header.
	HeaderMarker uint32 = 0x80000000

	// MaxPayloadSize is the largest payload length the header can carry.
	MaxPayloadSize = 1<<31 - 1
)

// LengthHeader is the 4-byte prefix shared by every packet of a run.
type LengthHeader [HeaderSize]byte

// EncodeLengthHeader builds the header for a payload of n bytes.
func EncodeLengthHeader(n int) (LengthHeader, error) {
	var h LengthHeader
	if n < 0 || n > MaxPayloadSize {
		return h, fmt.Errorf("%w: %d bytes (limit %d)", ErrPayloadTooLarge, n, MaxPayloadSize)
	}
	binary.BigEndian.PutUint32(h[:], HeaderMarker|uint32(n))
	return h, nil
}

// DecodeLengthHeader returns the payload length carried by the first four
// bytes of b.
func DecodeLengthHeader(b []byte) (int, error) {
	if len(b) < HeaderSize {
		return 0, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformedPacket, len(b))
	}
	v := binary.BigEndian.Uint32(b)
	if v&HeaderMarker == 0 {
		return 0, fmt.Errorf("%w: header marker bit not set", ErrMalformedPacket)
	}
	return int(v &^ HeaderMarker), nil
}
