// Package qrfountain encodes a payload as an animated PNG of QR codes.
//
// Example usage:
//
//	f, err := os.Create("payload.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	if _, err := qrfountain.Generate(ctx, payload, qrfountain.DefaultConstants(), f); err != nil {
//	    log.Fatal(err)
//	}
//
// For options such as logging or verification use
// github.com/bft-labs/qrfountain/pkg/qrfountain directly.
package qrfountain

import (
	"context"
	"io"

	"github.com/bft-labs/qrfountain/pkg/qrfountain"
)

// Constants are the rendering parameters of an animation.
type Constants = qrfountain.Constants

// Result summarizes a Generate call.
type Result = qrfountain.Result

// DefaultConstants returns the default rendering parameters.
func DefaultConstants() Constants {
	return qrfountain.DefaultConstants()
}

// Generate encodes payload with constants c and writes the APNG to out.
func Generate(ctx context.Context, payload []byte, c Constants, out io.Writer) (Result, error) {
	g, err := qrfountain.New(c)
	if err != nil {
		return Result{}, err
	}
	return g.Generate(ctx, payload, out)
}

// Reassemble rebuilds a payload from packets of a single animation.
func Reassemble(packets [][]byte) ([]byte, error) {
	return qrfountain.Reassemble(packets)
}
