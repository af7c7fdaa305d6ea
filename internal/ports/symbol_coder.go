package ports

import "github.com/bft-labs/qrfountain/internal/domain"

// SymbolEncoder produces erasure-coded symbols from a payload.
type SymbolEncoder interface {
	// Encode splits payload into symbols of exactly symbolSize bytes and
	// appends repair symbols. Source symbols come first. The output must be
	// deterministic for a given input.
	Encode(payload []byte, symbolSize int, repair int) ([]domain.Symbol, error)
}

// SymbolDecoder rebuilds a payload from received symbols.
type SymbolDecoder interface {
	// Decode reconstructs a payload of payloadLen bytes that was encoded with
	// the given symbol size and repair count. Symbols may arrive in any order
	// and duplicates are ignored. Returns domain.ErrInsufficientSymbols when
	// some block cannot be recovered.
	Decode(symbols []domain.Symbol, payloadLen, symbolSize, repair int) ([]byte, error)
}
