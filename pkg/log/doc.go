// Package log provides a logging abstraction for qrfountain components.
//
// The pipeline logs through the Logger interface so that embedding
// applications can route messages into their own logging stack. A zerolog
// adapter and a no-op logger are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter()
//
// Or discard everything in tests:
//
//	logger := log.NewNoopLogger()
package log
