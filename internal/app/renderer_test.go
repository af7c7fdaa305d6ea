package app

import (
	"context"
	"errors"
	"testing"

	"github.com/bft-labs/qrfountain/internal/adapters/erasure"
	"github.com/bft-labs/qrfountain/internal/adapters/qr"
	"github.com/bft-labs/qrfountain/internal/domain"
)

func packetSet(t *testing.T, size int, symbolSize uint16) domain.PacketSet {
	t.Helper()
	payload := make([]byte, size)
	for i := range payload {
		payload[i] = byte(i)
	}
	set, err := NewPacketizer(symbolSize, erasure.New(), mockLogger{}).Packetize(payload)
	if err != nil {
		t.Fatalf("Packetize: %v", err)
	}
	return set
}

func TestRender_WrapsEncoderFailure(t *testing.T) {
	r := NewRenderer(&sizeMatrixEncoder{failAt: 1}, 1)
	_, err := r.Render(domain.Packet{0x80, 0, 0, 1, 0, 0, 0, 0, 42})
	if !errors.Is(err, domain.ErrRenderInvariant) {
		t.Fatalf("error = %v, want ErrRenderInvariant", err)
	}
}

func TestRenderAll_PreservesOrder(t *testing.T) {
	set := packetSet(t, 2000, 40)

	for _, workers := range []int{0, 1, 4, 32} {
		enc := qr.NewEncoder()
		matrices, err := NewRenderer(enc, workers).RenderAll(context.Background(), set)
		if err != nil {
			t.Fatalf("workers=%d: RenderAll: %v", workers, err)
		}
		if len(matrices) != set.Len() {
			t.Fatalf("workers=%d: got %d matrices, want %d", workers, len(matrices), set.Len())
		}
		for i, pkt := range set.Packets {
			want, err := enc.Encode(pkt)
			if err != nil {
				t.Fatalf("Encode packet %d: %v", i, err)
			}
			if !equalMatrix(matrices[i], want) {
				t.Fatalf("workers=%d: matrix %d does not belong to packet %d", workers, i, i)
			}
		}
	}
}

func TestRenderAll_SameDimensionForAllPackets(t *testing.T) {
	set := packetSet(t, 5000, 300)
	matrices, err := NewRenderer(qr.NewEncoder(), 4).RenderAll(context.Background(), set)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	v, _ := qr.Version(set.PacketSize())
	for i, m := range matrices {
		if m.Size() != qr.Dimension(v) {
			t.Fatalf("matrix %d has %d modules, want %d", i, m.Size(), qr.Dimension(v))
		}
	}
}

func TestRenderAll_StopsOnFailure(t *testing.T) {
	set := packetSet(t, 300, 10)
	for _, workers := range []int{1, 3} {
		_, err := NewRenderer(&sizeMatrixEncoder{failAt: 5}, workers).RenderAll(context.Background(), set)
		if !errors.Is(err, domain.ErrRenderInvariant) {
			t.Fatalf("workers=%d: error = %v, want ErrRenderInvariant", workers, err)
		}
	}
}

func TestRenderAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRenderer(&sizeMatrixEncoder{}, 1).RenderAll(ctx, packetSet(t, 100, 10))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func equalMatrix(a, b domain.ModuleMatrix) bool {
	if a.Size() != b.Size() {
		return false
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}
