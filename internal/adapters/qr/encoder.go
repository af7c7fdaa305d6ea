// Package qr implements ports.MatrixEncoder with github.com/skip2/go-qrcode.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/bft-labs/qrfountain/internal/domain"
	"github.com/bft-labs/qrfountain/internal/ports"
)

// byteCapacityLow lists the byte-mode capacity of QR versions 1 to 40 at
// error correction level L.
var byteCapacityLow = [40]int{
	17, 32, 53, 78, 106, 134, 154, 192, 230, 271,
	321, 367, 425, 458, 520, 586, 644, 718, 792, 858,
	929, 1003, 1091, 1171, 1273, 1367, 1465, 1528, 1628, 1732,
	1840, 1952, 2068, 2188, 2303, 2431, 2563, 2699, 2809, 2953,
}

// Version returns the smallest QR version whose byte-mode capacity at level
// L holds n bytes.
func Version(n int) (int, bool) {
	for i, c := range byteCapacityLow {
		if n <= c {
			return i + 1, true
		}
	}
	return 0, false
}

// Dimension returns the module count per side of a QR code of the given version.
func Dimension(version int) int {
	return 17 + 4*version
}

// Encoder renders packets as QR codes at the lowest error correction level.
//
// The library would pick the smallest version for the optimized segment
// encoding, which depends on content. Forcing the byte-mode version keeps
// every packet of one length on the same matrix size.
type Encoder struct{}

// NewEncoder creates an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode returns the module matrix for data without a quiet zone.
func (e *Encoder) Encode(data []byte) (domain.ModuleMatrix, error) {
	v, ok := Version(len(data))
	if !ok {
		return nil, fmt.Errorf("qr: %d bytes exceed capacity %d", len(data), domain.MaxPacketSize)
	}
	q, err := qrcode.NewWithForcedVersion(string(data), v, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("qr: encode %d bytes at version %d: %w", len(data), v, err)
	}
	q.DisableBorder = true
	return domain.ModuleMatrix(q.Bitmap()), nil
}

var _ ports.MatrixEncoder = (*Encoder)(nil)
