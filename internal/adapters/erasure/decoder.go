package erasure

import (
	"fmt"

	"github.com/bft-labs/qrfountain/internal/domain"
)

// Decode reconstructs the payload from any sufficient subset of symbols.
// Symbols are matched to blocks by their payload id; unknown ids and
// duplicates are ignored.
func (c *Codec) Decode(symbols []domain.Symbol, payloadLen, symbolSize, repair int) ([]byte, error) {
	if symbolSize <= 0 {
		return nil, fmt.Errorf("erasure: symbol size %d", symbolSize)
	}
	k := domain.SourceCount(payloadLen, symbolSize)
	blocks, err := partition(k, repair)
	if err != nil {
		return nil, err
	}

	shards := make([][][]byte, len(blocks))
	for b, blk := range blocks {
		shards[b] = make([][]byte, blk.source+blk.repair)
	}
	for _, s := range symbols {
		if int(s.Block) >= len(blocks) || int(s.Index) >= len(shards[s.Block]) {
			continue
		}
		if len(s.Data) != symbolSize {
			return nil, fmt.Errorf("%w: symbol %d/%d has %d bytes, want %d",
				domain.ErrMalformedPacket, s.Block, s.Index, len(s.Data), symbolSize)
		}
		if shards[s.Block][s.Index] == nil {
			shards[s.Block][s.Index] = append([]byte(nil), s.Data...)
		}
	}

	out := make([]byte, 0, k*symbolSize)
	for b, blk := range blocks {
		have, complete := 0, true
		for i, sh := range shards[b] {
			if sh != nil {
				have++
			} else if i < blk.source {
				complete = false
			}
		}
		if !complete {
			if have < blk.source {
				return nil, fmt.Errorf("%w: block %d has %d of %d needed",
					domain.ErrInsufficientSymbols, b, have, blk.source)
			}
			enc, err := c.coder(blk.source, blk.repair)
			if err != nil {
				return nil, err
			}
			if err := enc.ReconstructData(shards[b]); err != nil {
				return nil, fmt.Errorf("erasure: reconstruct block %d: %w", b, err)
			}
		}
		for i := 0; i < blk.source; i++ {
			out = append(out, shards[b][i]...)
		}
	}
	return out[:payloadLen], nil
}
