package domain

import "fmt"

// MaxPacketSize is the binary-mode capacity of a version 40 QR code at the
// lowest error correction level.
const MaxPacketSize = 2953

// Packet is a length header followed by a serialized symbol.
// It is the unit rendered into one QR code.
type Packet []byte

// NewPacket builds a packet from a header and a symbol.
func NewPacket(h LengthHeader, s Symbol) Packet {
	p := make([]byte, 0, HeaderSize+s.Size())
	p = append(p, h[:]...)
	return s.AppendBinary(p)
}

// PayloadLen returns the payload length carried by the packet header.
func (p Packet) PayloadLen() (int, error) {
	return DecodeLengthHeader(p)
}

// Symbol returns the symbol carried after the header.
func (p Packet) Symbol() (Symbol, error) {
	if len(p) < HeaderSize {
		return Symbol{}, fmt.Errorf("%w: packet of %d bytes", ErrMalformedPacket, len(p))
	}
	return ParseSymbol(p[HeaderSize:])
}

// PacketSet is the ordered output of the packetizer.
// All packets in a set have the same length.
type PacketSet struct {
	// Packets holds source packets first, then repair packets.
	Packets []Packet

	// PayloadLen is the length of the original payload.
	PayloadLen int

	// SourceCount is the number of source symbols.
	SourceCount int

	// RepairCount is the number of repair symbols.
	RepairCount int
}

// Len returns the number of packets in the set.
func (s PacketSet) Len() int {
	return len(s.Packets)
}

// PacketSize returns the common packet length, or 0 for an empty set.
func (s PacketSet) PacketSize() int {
	if len(s.Packets) == 0 {
		return 0
	}
	return len(s.Packets[0])
}

// SourceCount returns the number of source symbols for a payload of n bytes
// split into symbols of the given size. An empty payload still yields one
// zero-padded symbol.
func SourceCount(n, symbolSize int) int {
	if n <= symbolSize {
		return 1
	}
	return (n + symbolSize - 1) / symbolSize
}

// RepairCount returns the number of repair symbols generated for a payload
// of n bytes: none when the payload fits in one symbol, otherwise one per
// full symbol of payload.
func RepairCount(n, symbolSize int) int {
	if n <= symbolSize {
		return 0
	}
	return n / symbolSize
}
