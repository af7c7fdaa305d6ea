package qrfountain

import (
	"context"
	"io"

	"github.com/bft-labs/qrfountain/internal/adapters/apng"
	"github.com/bft-labs/qrfountain/internal/adapters/erasure"
	"github.com/bft-labs/qrfountain/internal/adapters/qr"
	"github.com/bft-labs/qrfountain/internal/app"
	"github.com/bft-labs/qrfountain/internal/domain"
)

// Constants are the rendering parameters of an animation.
type Constants = domain.Constants

// Result summarizes a Generate call.
type Result = app.Result

// Errors returned by Generate and Reassemble. Compare with errors.Is.
var (
	ErrPayloadTooLarge         = domain.ErrPayloadTooLarge
	ErrPacketTooLargeForMatrix = domain.ErrPacketTooLargeForMatrix
	ErrIdenticalColors         = domain.ErrIdenticalColors
	ErrInvalidConfig           = domain.ErrInvalidConfig
	ErrInsufficientSymbols     = domain.ErrInsufficientSymbols
	ErrMalformedPacket         = domain.ErrMalformedPacket
)

// DefaultConstants returns 500 byte symbols drawn black on white at four
// pixels per module with a four module border and a 1/10 s frame delay.
func DefaultConstants() Constants {
	return domain.DefaultConstants()
}

// Generator builds animations for a fixed set of constants.
// It is not safe for concurrent use.
type Generator struct {
	packetizer *app.Packetizer
	pipeline   *app.Pipeline
}

// New creates a Generator. It returns an error if c is invalid.
func New(c Constants, opts ...Option) (*Generator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	codec := erasure.New()
	p, err := app.NewPipeline(app.PipelineConfig{
		Constants: c,
		Workers:   o.workers,
		Verify:    o.verify,
	}, codec, codec, qr.NewEncoder(), o.logger)
	if err != nil {
		return nil, err
	}
	return &Generator{
		packetizer: app.NewPacketizer(c.SymbolSize, codec, o.logger),
		pipeline:   p,
	}, nil
}

// Generate encodes payload and writes the APNG to out. Nothing is written
// to out unless every packet rendered.
func (g *Generator) Generate(ctx context.Context, payload []byte, out io.Writer) (Result, error) {
	return g.pipeline.Run(ctx, payload, apng.NewWriter(out))
}

// Packets returns the packets Generate would draw, one per frame and in
// frame order.
func (g *Generator) Packets(payload []byte) ([][]byte, error) {
	set, err := g.packetizer.Packetize(payload)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(set.Packets))
	for i, p := range set.Packets {
		out[i] = p
	}
	return out, nil
}

// Reassemble rebuilds a payload from packets of a single animation.
// Packets may be in any order and may repeat.
func Reassemble(packets [][]byte) ([]byte, error) {
	in := make([]domain.Packet, len(packets))
	for i, p := range packets {
		in[i] = p
	}
	return app.Reassemble(in, erasure.New())
}
