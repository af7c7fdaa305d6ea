package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// PipelineConfig holds the settings for a Pipeline.
type PipelineConfig struct {
	Constants domain.Constants

	// Workers bounds parallel QR rendering. Values below 1 render sequentially.
	Workers int

	// Verify decodes the packet set after a worst-case loss before rendering.
	Verify bool
}

// Result summarizes one pipeline run.
type Result struct {
	PayloadBytes  int
	SourceSymbols int
	RepairSymbols int
	PacketBytes   int
	Frames        int
	MatrixModules int
	CanvasPixels  int
	Verified      bool
	Elapsed       time.Duration
}

// Pipeline runs packetize, render and composite in sequence.
type Pipeline struct {
	cfg        PipelineConfig
	packetizer *Packetizer
	renderer   *Renderer
	compositor *Compositor
	decoder    ports.SymbolDecoder
	logger     ports.Logger
}

// NewPipeline wires the stages around the given capabilities.
func NewPipeline(
	cfg PipelineConfig,
	symbols ports.SymbolEncoder,
	decoder ports.SymbolDecoder,
	matrices ports.MatrixEncoder,
	logger ports.Logger,
) (*Pipeline, error) {
	if err := cfg.Constants.Validate(); err != nil {
		return nil, err
	}
	if cfg.Verify && decoder == nil {
		return nil, fmt.Errorf("%w: verify requires a symbol decoder", domain.ErrInvalidConfig)
	}
	return &Pipeline{
		cfg:        cfg,
		packetizer: NewPacketizer(cfg.Constants.SymbolSize, symbols, logger),
		renderer:   NewRenderer(matrices, cfg.Workers),
		compositor: NewCompositor(cfg.Constants, logger),
		decoder:    decoder,
		logger:     logger,
	}, nil
}

// Run turns payload into an animation written to w. Nothing is written
// when packetizing, verifying or rendering fails.
func (p *Pipeline) Run(ctx context.Context, payload []byte, w ports.AnimationWriter) (Result, error) {
	start := time.Now()

	set, err := p.packetizer.Packetize(payload)
	if err != nil {
		return Result{}, fmt.Errorf("packetize: %w", err)
	}

	res := Result{
		PayloadBytes:  set.PayloadLen,
		SourceSymbols: set.SourceCount,
		RepairSymbols: set.RepairCount,
		PacketBytes:   set.PacketSize(),
		Frames:        set.Len(),
	}

	if p.cfg.Verify {
		if err := p.verify(set, payload); err != nil {
			return Result{}, err
		}
		res.Verified = true
	}

	matrices, err := p.renderer.RenderAll(ctx, set)
	if err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}
	res.MatrixModules = matrices[0].Size()
	res.CanvasPixels = p.cfg.Constants.CanvasSize(res.MatrixModules)

	if err := p.compositor.Composite(matrices, w); err != nil {
		return Result{}, fmt.Errorf("composite: %w", err)
	}

	res.Elapsed = time.Since(start)
	p.logger.Info("animation built",
		ports.Int("frames", res.Frames),
		ports.Int("packet_bytes", res.PacketBytes),
		ports.Int("canvas_pixels", res.CanvasPixels),
		ports.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// verify checks that the payload survives the loss of as many packets as
// each block can tolerate.
func (p *Pipeline) verify(set domain.PacketSet, payload []byte) error {
	kept, err := dropRecoverable(set)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	got, err := Reassemble(kept, p.decoder)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if string(got) != string(payload) {
		return fmt.Errorf("verify: reassembled payload differs from input")
	}
	p.logger.Debug("packet set verified",
		ports.Int("packets_dropped", set.Len()-len(kept)),
		ports.Int("packets_used", len(kept)),
	)
	return nil
}

// dropRecoverable removes, within every block, as many source packets as
// the block has repair packets.
func dropRecoverable(set domain.PacketSet) ([]domain.Packet, error) {
	repairs := make(map[uint32]int)
	for _, pkt := range set.Packets[set.SourceCount:] {
		s, err := pkt.Symbol()
		if err != nil {
			return nil, err
		}
		repairs[s.Block]++
	}

	kept := make([]domain.Packet, 0, set.Len())
	for _, pkt := range set.Packets[:set.SourceCount] {
		s, err := pkt.Symbol()
		if err != nil {
			return nil, err
		}
		if repairs[s.Block] > 0 {
			repairs[s.Block]--
			continue
		}
		kept = append(kept, pkt)
	}
	return append(kept, set.Packets[set.SourceCount:]...), nil
}
