package app

import (
	"errors"
	"image"
	"sync"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

// recordingLogger keeps debug entries keyed by message.
type recordingLogger struct {
	mockLogger
	debug map[string][]ports.Field
}

func (l *recordingLogger) Debug(msg string, fields ...ports.Field) {
	if l.debug == nil {
		l.debug = make(map[string][]ports.Field)
	}
	l.debug[msg] = fields
}

// chunkEncoder is a deterministic stand-in for the erasure coder. Source
// symbols are padded payload chunks, repair symbols repeat them in reverse.
type chunkEncoder struct {
	// shortLast shortens the last symbol to break the equal-length contract.
	shortLast bool
	// drop removes symbols from the end of the output.
	drop  int
	err   error
	calls int
}

func (e *chunkEncoder) Encode(payload []byte, symbolSize int, repair int) ([]domain.Symbol, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	k := domain.SourceCount(len(payload), symbolSize)
	padded := make([]byte, k*symbolSize)
	copy(padded, payload)

	out := make([]domain.Symbol, 0, k+repair)
	for i := 0; i < k; i++ {
		out = append(out, domain.Symbol{Index: uint8(i), Data: padded[i*symbolSize : (i+1)*symbolSize]})
	}
	for i := 0; i < repair; i++ {
		out = append(out, domain.Symbol{Index: uint8(k + i), Data: out[k-1-i%k].Data})
	}
	if e.shortLast {
		last := &out[len(out)-1]
		last.Data = last.Data[:len(last.Data)-1]
	}
	return out[:len(out)-e.drop], nil
}

// sizeMatrixEncoder returns an all-false matrix whose dimension grows with
// the data length, or a fixed dimension when dim is set.
type sizeMatrixEncoder struct {
	mu      sync.Mutex
	dim     int
	failAt  int
	calls   int
	lengths []int
}

var errMatrix = errors.New("matrix encoder failed")

func (e *sizeMatrixEncoder) Encode(data []byte) (domain.ModuleMatrix, error) {
	e.mu.Lock()
	e.calls++
	e.lengths = append(e.lengths, len(data))
	fail := e.failAt > 0 && e.calls == e.failAt
	e.mu.Unlock()
	if fail {
		return nil, errMatrix
	}
	dim := e.dim
	if dim == 0 {
		dim = 21 + len(data)/100
	}
	return squareMatrix(dim, func(x, y int) bool { return (x+y+int(data[len(data)-1]))%2 == 0 }), nil
}

func squareMatrix(dim int, set func(x, y int) bool) domain.ModuleMatrix {
	m := make(domain.ModuleMatrix, dim)
	for y := range m {
		m[y] = make([]bool, dim)
		for x := range m[y] {
			m[y][x] = set(x, y)
		}
	}
	return m
}

// recordingWriter implements ports.AnimationWriter and keeps every call.
type recordingWriter struct {
	width, height, declared int
	frames                  []domain.Frame
	begun, finished         int
}

func (w *recordingWriter) Begin(width, height, frames int) error {
	w.begun++
	w.width, w.height, w.declared = width, height, frames
	return nil
}

func (w *recordingWriter) WriteFrame(frame domain.Frame) error {
	img := image.NewGray(frame.Image.Bounds())
	copy(img.Pix, frame.Image.Pix)
	w.frames = append(w.frames, domain.Frame{Image: img, Delay: frame.Delay})
	return nil
}

func (w *recordingWriter) Finish() error {
	w.finished++
	return nil
}
