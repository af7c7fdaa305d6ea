// Package erasure implements the symbol coding ports with Reed-Solomon
// codes from github.com/klauspost/reedsolomon.
//
// The payload is zero-padded to a whole number of symbols and split into
// source blocks of at most 128 symbols. Each block gets its share of the
// repair symbols. Within a block any subset of symbols as large as the
// block's source count reconstructs it.
//
// Symbols are emitted round-robin across blocks, sources first and then
// repairs, so a run of consecutive lost frames costs every block about the
// same number of symbols.
package erasure

import (
	"fmt"

	"github.com/klauspost/reedsolomon"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// Codec implements ports.SymbolEncoder and ports.SymbolDecoder.
// A Codec is not safe for concurrent use.
type Codec struct {
	coders map[[2]int]reedsolomon.Encoder
}

// New creates a Codec.
func New() *Codec {
	return &Codec{coders: make(map[[2]int]reedsolomon.Encoder)}
}

// coder returns a cached Reed-Solomon coder for the block shape.
func (c *Codec) coder(source, repair int) (reedsolomon.Encoder, error) {
	key := [2]int{source, repair}
	if enc, ok := c.coders[key]; ok {
		return enc, nil
	}
	enc, err := reedsolomon.New(source, repair)
	if err != nil {
		return nil, fmt.Errorf("erasure: new coder %d+%d: %w", source, repair, err)
	}
	c.coders[key] = enc
	return enc, nil
}

// Encode splits payload into symbols of symbolSize bytes and appends repair
// symbols. All source symbols are returned first, then all repair symbols,
// each group interleaved across blocks by symbol index.
func (c *Codec) Encode(payload []byte, symbolSize int, repair int) ([]domain.Symbol, error) {
	if symbolSize <= 0 {
		return nil, fmt.Errorf("erasure: symbol size %d", symbolSize)
	}
	k := domain.SourceCount(len(payload), symbolSize)
	blocks, err := partition(k, repair)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, k*symbolSize)
	copy(padded, payload)

	sources := make([][]domain.Symbol, len(blocks))
	repairs := make([][]domain.Symbol, len(blocks))
	for b, blk := range blocks {
		shards := make([][]byte, blk.source+blk.repair)
		for i := 0; i < blk.source; i++ {
			off := (blk.first + i) * symbolSize
			shards[i] = padded[off : off+symbolSize : off+symbolSize]
			sources[b] = append(sources[b], domain.Symbol{Block: uint32(b), Index: uint8(i), Data: shards[i]})
		}
		if blk.repair == 0 {
			continue
		}
		for i := blk.source; i < len(shards); i++ {
			shards[i] = make([]byte, symbolSize)
		}
		enc, err := c.coder(blk.source, blk.repair)
		if err != nil {
			return nil, err
		}
		if err := enc.Encode(shards); err != nil {
			return nil, fmt.Errorf("erasure: encode block %d: %w", b, err)
		}
		for i := blk.source; i < len(shards); i++ {
			repairs[b] = append(repairs[b], domain.Symbol{Block: uint32(b), Index: uint8(i), Data: shards[i]})
		}
	}

	out := make([]domain.Symbol, 0, k+repair)
	out = interleave(out, sources)
	return interleave(out, repairs), nil
}

// interleave appends the i-th symbol of every block before any (i+1)-th one.
// Blocks differ in length by at most one, larger blocks first.
func interleave(dst []domain.Symbol, perBlock [][]domain.Symbol) []domain.Symbol {
	if len(perBlock) == 0 {
		return dst
	}
	for i := 0; i < len(perBlock[0]); i++ {
		for _, syms := range perBlock {
			if i < len(syms) {
				dst = append(dst, syms[i])
			}
		}
	}
	return dst
}

var (
	_ ports.SymbolEncoder = (*Codec)(nil)
	_ ports.SymbolDecoder = (*Codec)(nil)
)
