package app

import (
	"fmt"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// Reassemble rebuilds a payload from any sufficient subset of packets of one
// run, in any order. The payload length comes from the packet headers and
// the symbol size from the packet length.
func Reassemble(packets []domain.Packet, decoder ports.SymbolDecoder) ([]byte, error) {
	if len(packets) == 0 {
		return nil, fmt.Errorf("%w: no packets", domain.ErrInsufficientSymbols)
	}
	payloadLen, err := packets[0].PayloadLen()
	if err != nil {
		return nil, err
	}
	size := len(packets[0])
	symbolSize := size - domain.HeaderSize - domain.PayloadIDSize
	if symbolSize <= 0 {
		return nil, fmt.Errorf("%w: packet of %d bytes carries no data", domain.ErrMalformedPacket, size)
	}

	symbols := make([]domain.Symbol, 0, len(packets))
	for i, pkt := range packets {
		if len(pkt) != size {
			return nil, fmt.Errorf("%w: packet %d has %d bytes, packet 0 has %d",
				domain.ErrUnequalPacketLength, i, len(pkt), size)
		}
		n, err := pkt.PayloadLen()
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		if n != payloadLen {
			return nil, fmt.Errorf("%w: packet %d announces %d bytes, packet 0 announces %d",
				domain.ErrMalformedPacket, i, n, payloadLen)
		}
		s, err := pkt.Symbol()
		if err != nil {
			return nil, fmt.Errorf("packet %d: %w", i, err)
		}
		symbols = append(symbols, s)
	}

	repair := domain.RepairCount(payloadLen, symbolSize)
	return decoder.Decode(symbols, payloadLen, symbolSize, repair)
}
