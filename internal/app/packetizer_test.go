package app

import (
	"encoding/binary"
	"errors"
	"strconv"
	"testing"
	"unsafe"

	"github.com/bft-labs/qrfountain/internal/adapters/erasure"
	"github.com/bft-labs/qrfountain/internal/domain"
)

func TestPacketize_HeaderAndEqualLength(t *testing.T) {
	sizes := []int{0, 1, 99, 100, 101, 1000, 12345}

	for _, n := range sizes {
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(i * 7)
		}
		p := NewPacketizer(100, erasure.New(), mockLogger{})

		set, err := p.Packetize(payload)
		if err != nil {
			t.Fatalf("Packetize(%d bytes): %v", n, err)
		}
		if set.Len() == 0 {
			t.Fatalf("Packetize(%d bytes) produced no packets", n)
		}
		for i, pkt := range set.Packets {
			if len(pkt) != set.PacketSize() {
				t.Fatalf("%d bytes: packet %d has %d bytes, want %d", n, i, len(pkt), set.PacketSize())
			}
			h := binary.BigEndian.Uint32(pkt)
			if h>>31 != 1 {
				t.Fatalf("%d bytes: packet %d marker bit not set", n, i)
			}
			if int(h&0x7fffffff) != n {
				t.Fatalf("%d bytes: packet %d announces %d", n, i, h&0x7fffffff)
			}
		}
	}
}

func TestPacketize_RedundancyLaw(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		symbolSize uint16
		wantSource int
		wantRepair int
	}{
		{name: "empty payload", size: 0, symbolSize: 10, wantSource: 1, wantRepair: 0},
		{name: "smaller than symbol", size: 7, symbolSize: 10, wantSource: 1, wantRepair: 0},
		{name: "exactly one symbol", size: 10, symbolSize: 10, wantSource: 1, wantRepair: 0},
		{name: "one byte over", size: 11, symbolSize: 10, wantSource: 2, wantRepair: 1},
		{name: "exact multiple", size: 500, symbolSize: 50, wantSource: 10, wantRepair: 10},
		{name: "partial tail", size: 1234, symbolSize: 100, wantSource: 13, wantRepair: 12},
		{name: "several blocks", size: 3000, symbolSize: 10, wantSource: 300, wantRepair: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewPacketizer(tt.symbolSize, erasure.New(), mockLogger{}).Packetize(make([]byte, tt.size))
			if err != nil {
				t.Fatalf("Packetize: %v", err)
			}
			if set.SourceCount != tt.wantSource || set.RepairCount != tt.wantRepair {
				t.Errorf("counts = %d+%d, want %d+%d", set.SourceCount, set.RepairCount, tt.wantSource, tt.wantRepair)
			}
			if set.Len() != tt.wantSource+tt.wantRepair {
				t.Errorf("packets = %d, want %d", set.Len(), tt.wantSource+tt.wantRepair)
			}
			if set.PacketSize() != int(tt.symbolSize)+domain.HeaderSize+domain.PayloadIDSize {
				t.Errorf("packet size = %d", set.PacketSize())
			}
		})
	}
}

func TestPacketize_CapacityLimit(t *testing.T) {
	overhead := domain.HeaderSize + domain.PayloadIDSize
	payload := make([]byte, 6000)

	fits := uint16(domain.MaxPacketSize - overhead)
	if _, err := NewPacketizer(fits, erasure.New(), mockLogger{}).Packetize(payload); err != nil {
		t.Fatalf("symbol size %d: unexpected error %v", fits, err)
	}

	tooBig := fits + 1
	_, err := NewPacketizer(tooBig, erasure.New(), mockLogger{}).Packetize(payload)
	if !errors.Is(err, domain.ErrPacketTooLargeForMatrix) {
		t.Fatalf("symbol size %d: error = %v, want ErrPacketTooLargeForMatrix", tooBig, err)
	}
}

func TestPacketize_UnequalLength(t *testing.T) {
	p := NewPacketizer(10, &chunkEncoder{shortLast: true}, mockLogger{})
	_, err := p.Packetize(make([]byte, 35))
	if !errors.Is(err, domain.ErrUnequalPacketLength) {
		t.Fatalf("error = %v, want ErrUnequalPacketLength", err)
	}
}

func TestPacketize_SymbolCountMismatch(t *testing.T) {
	// 35 bytes in 10 byte symbols: 4 source and 3 repair symbols.
	for _, drop := range []int{1, 3, 4, 7} {
		_, err := NewPacketizer(10, &chunkEncoder{drop: drop}, mockLogger{}).Packetize(make([]byte, 35))
		if !errors.Is(err, domain.ErrSymbolCount) {
			t.Fatalf("drop=%d: error = %v, want ErrSymbolCount", drop, err)
		}
	}
}

func TestPacketize_PayloadTooLarge(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("needs 64-bit int")
	}
	// Only the length is inspected before rejection, so the slice need not
	// be backed by 2 GiB of memory.
	n := domain.MaxPayloadSize
	n++
	var b byte
	payload := unsafe.Slice(&b, n)

	enc := &chunkEncoder{}
	_, err := NewPacketizer(500, enc, mockLogger{}).Packetize(payload)
	if !errors.Is(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("error = %v, want ErrPayloadTooLarge", err)
	}
	if enc.calls != 0 {
		t.Fatalf("encoder called %d times before the size check", enc.calls)
	}
}

func TestPacketize_EncoderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPacketizer(10, &chunkEncoder{err: boom}, mockLogger{}).Packetize([]byte("x"))
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped boom", err)
	}
}

func TestPacketize_ZeroSymbolSize(t *testing.T) {
	_, err := NewPacketizer(0, &chunkEncoder{}, mockLogger{}).Packetize([]byte("x"))
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestPacketize_Deterministic(t *testing.T) {
	payload := []byte("the same payload twice, the same packets twice")
	a, err := NewPacketizer(8, erasure.New(), mockLogger{}).Packetize(payload)
	if err != nil {
		t.Fatalf("Packetize: %v", err)
	}
	b, err := NewPacketizer(8, erasure.New(), mockLogger{}).Packetize(payload)
	if err != nil {
		t.Fatalf("Packetize: %v", err)
	}
	if a.Len() != b.Len() {
		t.Fatalf("packet counts differ: %d vs %d", a.Len(), b.Len())
	}
	for i := range a.Packets {
		if string(a.Packets[i]) != string(b.Packets[i]) {
			t.Fatalf("packet %d differs between runs", i)
		}
	}
}

func TestCheckPacketSet_Empty(t *testing.T) {
	if err := checkPacketSet(domain.PacketSet{}); !errors.Is(err, domain.ErrNoFrames) {
		t.Fatalf("error = %v, want ErrNoFrames", err)
	}
}
