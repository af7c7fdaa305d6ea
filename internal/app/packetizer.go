package app

import (
	"fmt"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// Packetizer frames a payload into equal-length, self-describing packets.
type Packetizer struct {
	symbolSize int
	encoder    ports.SymbolEncoder
	logger     ports.Logger
}

// NewPacketizer creates a Packetizer producing symbols of symbolSize bytes.
func NewPacketizer(symbolSize uint16, encoder ports.SymbolEncoder, logger ports.Logger) *Packetizer {
	return &Packetizer{
		symbolSize: int(symbolSize),
		encoder:    encoder,
		logger:     logger,
	}
}

// Packetize encodes payload into source and repair symbols and prefixes each
// with the payload length header.
//
// The result is checked after assembly: the coder must return exactly the
// source and repair symbols asked for, every packet must have the same
// length, and that length must fit in a QR code at the lowest correction
// level. Failures are deterministic; retrying with the same input repeats them.
func (p *Packetizer) Packetize(payload []byte) (domain.PacketSet, error) {
	header, err := domain.EncodeLengthHeader(len(payload))
	if err != nil {
		return domain.PacketSet{}, err
	}
	if p.symbolSize <= 0 {
		return domain.PacketSet{}, fmt.Errorf("%w: symbol size must be positive", domain.ErrInvalidConfig)
	}

	repair := domain.RepairCount(len(payload), p.symbolSize)
	symbols, err := p.encoder.Encode(payload, p.symbolSize, repair)
	if err != nil {
		return domain.PacketSet{}, fmt.Errorf("encode symbols: %w", err)
	}
	source := domain.SourceCount(len(payload), p.symbolSize)
	if len(symbols) != source+repair {
		return domain.PacketSet{}, fmt.Errorf("%w: got %d, want %d source and %d repair",
			domain.ErrSymbolCount, len(symbols), source, repair)
	}

	set := domain.PacketSet{
		Packets:     make([]domain.Packet, 0, len(symbols)),
		PayloadLen:  len(payload),
		SourceCount: source,
		RepairCount: repair,
	}
	for _, s := range symbols {
		set.Packets = append(set.Packets, domain.NewPacket(header, s))
	}

	if err := checkPacketSet(set); err != nil {
		return domain.PacketSet{}, err
	}

	p.logger.Debug("payload packetized",
		ports.Int("payload_bytes", len(payload)),
		ports.Int("source_symbols", set.SourceCount),
		ports.Int("repair_symbols", set.RepairCount),
		ports.Int("packet_bytes", set.PacketSize()),
	)
	return set, nil
}

// checkPacketSet verifies the packet invariants the renderer relies on.
func checkPacketSet(set domain.PacketSet) error {
	if len(set.Packets) == 0 {
		return fmt.Errorf("%w: encoder returned no symbols", domain.ErrNoFrames)
	}
	size := len(set.Packets[0])
	for i, pkt := range set.Packets {
		if len(pkt) != size {
			return fmt.Errorf("%w: packet %d has %d bytes, packet 0 has %d",
				domain.ErrUnequalPacketLength, i, len(pkt), size)
		}
	}
	if size > domain.MaxPacketSize {
		return fmt.Errorf("%w: %d bytes exceeds limit %d, use a smaller symbol size",
			domain.ErrPacketTooLargeForMatrix, size, domain.MaxPacketSize)
	}
	return nil
}
