package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// Renderer turns packets into QR module matrices.
type Renderer struct {
	encoder ports.MatrixEncoder
	workers int
}

// NewRenderer creates a Renderer. With workers > 1 packets are rendered in
// parallel; the output order always matches the input order.
func NewRenderer(encoder ports.MatrixEncoder, workers int) *Renderer {
	if workers < 1 {
		workers = 1
	}
	return &Renderer{encoder: encoder, workers: workers}
}

// Render returns the module matrix for one packet.
// Packets that passed the packetizer checks always fit, so an encoder
// failure means the capacity limit and the encoder disagree.
func (r *Renderer) Render(packet domain.Packet) (domain.ModuleMatrix, error) {
	m, err := r.encoder.Encode(packet)
	if err != nil {
		return nil, fmt.Errorf("%w: %d byte packet: %v", domain.ErrRenderInvariant, len(packet), err)
	}
	return m, nil
}

// RenderAll renders every packet of the set in order.
func (r *Renderer) RenderAll(ctx context.Context, set domain.PacketSet) ([]domain.ModuleMatrix, error) {
	out := make([]domain.ModuleMatrix, len(set.Packets))

	if r.workers == 1 {
		for i, pkt := range set.Packets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			m, err := r.Render(pkt)
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, pkt := range set.Packets {
		i, pkt := i, pkt
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := r.Render(pkt)
			if err != nil {
				return err
			}
			out[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
