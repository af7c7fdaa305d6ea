// Package ports defines the interfaces (ports) that connect the pipeline to
// infrastructure adapters.
//
// The pipeline needs three heavy capabilities it does not implement itself:
// erasure coding, QR matrix generation and animated image encoding. Each is
// described here as a narrow contract so that the application layer
// (internal/app) can be tested with deterministic fakes, while
// internal/adapters provides implementations backed by real libraries.
//
// # Port Interfaces
//
//   - [SymbolEncoder]: splits a payload into source and repair symbols
//   - [SymbolDecoder]: rebuilds a payload from a subset of symbols
//   - [MatrixEncoder]: turns bytes into a square QR module matrix
//   - [AnimationWriter]: appends grayscale frames to an animation
//   - [PayloadLoader]: reads the payload to transmit
//   - [Logger]: structured logging abstraction
package ports
