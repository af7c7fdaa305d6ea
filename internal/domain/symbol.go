package domain

import "fmt"

const (
	// PayloadIDSize is the byte length of the serialized block number and index.
	PayloadIDSize = 4

	// MaxBlocks is the number of source blocks a 24-bit block number can address.
	MaxBlocks = 1 << 24
)

// Symbol is one erasure-coded unit produced from the payload.
// Source symbols carry payload bytes; repair symbols carry parity.
type Symbol struct {
	// Block is the source block number. Only the low 24 bits are serialized.
	Block uint32

	// Index is the encoding symbol index within the block. Indexes below the
	// block's source count are source symbols, the rest are repair symbols.
	Index uint8

	// Data is the symbol content.
	Data []byte
}

// Size returns the serialized length of the symbol.
func (s Symbol) Size() int {
	return PayloadIDSize + len(s.Data)
}

// AppendBinary appends the serialized symbol to dst.
func (s Symbol) AppendBinary(dst []byte) []byte {
	dst = append(dst, byte(s.Block>>16), byte(s.Block>>8), byte(s.Block), s.Index)
	return append(dst, s.Data...)
}

// ParseSymbol decodes a serialized symbol. The returned Data aliases b.
func ParseSymbol(b []byte) (Symbol, error) {
	if len(b) < PayloadIDSize {
		return Symbol{}, fmt.Errorf("%w: symbol of %d bytes has no payload id", ErrMalformedPacket, len(b))
	}
	return Symbol{
		Block: uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]),
		Index: b[3],
		Data:  b[PayloadIDSize:],
	}, nil
}
