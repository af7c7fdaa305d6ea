package ports

import "github.com/bft-labs/qrfountain/internal/domain"

// MatrixEncoder renders bytes as a QR module matrix at the lowest error
// correction level. The matrix dimension must depend only on len(data).
type MatrixEncoder interface {
	Encode(data []byte) (domain.ModuleMatrix, error)
}
