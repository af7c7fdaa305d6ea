// Package qrfountain turns a byte payload into an animated PNG of QR codes.
//
// The payload is split into equal-length, erasure-coded packets, so a
// receiver filming the animation can rebuild the payload even when some
// frames are missed. Use New to build a Generator, then Generate to write
// the animation:
//
//	g, err := qrfountain.New(qrfountain.DefaultConstants(),
//	    qrfountain.WithLogger(logger),
//	    qrfountain.WithVerify(true),
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := g.Generate(ctx, payload, out)
//
// Reassemble is the inverse for any sufficient subset of packets.
package qrfountain
