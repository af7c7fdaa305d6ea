package fs

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bft-labs/qrfountain/internal/ports"
)

// Payload formats accepted by PayloadLoader.
const (
	FormatHex  = "hex"
	FormatText = "text"
	FormatRaw  = "raw"
)

// PayloadLoader implements ports.PayloadLoader for files on disk.
type PayloadLoader struct {
	format string
}

// NewPayloadLoader creates a loader for the given format.
func NewPayloadLoader(format string) (*PayloadLoader, error) {
	switch format {
	case FormatHex, FormatText, FormatRaw:
		return &PayloadLoader{format: format}, nil
	default:
		return nil, fmt.Errorf("unknown input format %q (want hex, text or raw)", format)
	}
}

// Load reads the file at path and decodes it according to the loader format.
// Hex input may be surrounded by whitespace; text input must be valid UTF-8.
func (l *PayloadLoader) Load(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch l.format {
	case FormatHex:
		data, err := hex.DecodeString(string(bytes.TrimSpace(b)))
		if err != nil {
			return nil, fmt.Errorf("decode hex %s: %w", path, err)
		}
		return data, nil
	case FormatText:
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("%s is not valid UTF-8 text", path)
		}
		return b, nil
	default:
		return b, nil
	}
}

var _ ports.PayloadLoader = (*PayloadLoader)(nil)
