package erasure

import (
	"fmt"

	"github.com/bft-labs/qrfountain/internal/domain"
)

// maxSourcePerBlock bounds the source symbols of one block. Repair symbols
// never outnumber source symbols, so a block holds at most 256 shards and
// stays within the GF(2^8) Reed-Solomon limit.
const maxSourcePerBlock = 128

// block describes one source block: a run of consecutive source symbols
// and the number of repair symbols computed over them.
type block struct {
	first  int // index of the first source symbol in the payload
	source int
	repair int
}

// partition splits k source symbols and r repair symbols into as few blocks
// as the shard limit allows. Sizes differ by at most one between blocks,
// with the larger blocks first.
func partition(k, r int) ([]block, error) {
	if k <= 0 {
		return nil, fmt.Errorf("erasure: %d source symbols", k)
	}
	if r < 0 || r > k {
		return nil, fmt.Errorf("erasure: %d repair symbols for %d source symbols", r, k)
	}
	z := (k + maxSourcePerBlock - 1) / maxSourcePerBlock
	if z > domain.MaxBlocks {
		return nil, fmt.Errorf("erasure: %d blocks exceed the %d addressable", z, domain.MaxBlocks)
	}

	blocks := make([]block, z)
	first := 0
	for i := range blocks {
		blocks[i] = block{
			first:  first,
			source: share(k, z, i),
			repair: share(r, z, i),
		}
		first += blocks[i].source
	}
	return blocks, nil
}

// share returns the part of n assigned to block i of z.
func share(n, z, i int) int {
	s := n / z
	if i < n%z {
		s++
	}
	return s
}
