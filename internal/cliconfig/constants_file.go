package cliconfig

import (
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/bft-labs/qrfountain/internal/domain"
)

// DefaultConstantsFile is read from the working directory when no constants
// file is configured and it exists.
const DefaultConstantsFile = "default_constants"

// Constants file entries look like `const CHUNK_SIZE: u16 = 500;` or
// `MAIN_COLOR = 0x00;`. Keys are case-insensitive and anything between the
// key and " = " is ignored.
var (
	reChunkSize = regexp.MustCompile(`(?i)CHUNK_SIZE.*= (?P<v>[0-9]+);`)
	reMainColor = regexp.MustCompile(`(?i)MAIN_COLOR.*= (0x)?(?P<v>[0-9a-f]{2});`)
	reBackColor = regexp.MustCompile(`(?i)BACK_COLOR.*= (0x)?(?P<v>[0-9a-f]{2});`)
	reScaling   = regexp.MustCompile(`(?i)SCALING.*= (?P<v>[0-9]+);`)
	reFPSNom    = regexp.MustCompile(`(?i)FPS_NOM.*= (?P<v>[0-9]+);`)
	reFPSDen    = regexp.MustCompile(`(?i)FPS_DEN.*= (?P<v>[0-9]+);`)
	reBorder    = regexp.MustCompile(`(?i)BORDER.*= (?P<v>[0-9]+);`)
)

// LoadConstantsFile reads a constants file. Every key must be present.
func LoadConstantsFile(path string) (domain.Constants, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Constants{}, err
	}
	return ParseConstants(string(b), path)
}

// ParseConstants extracts the rendering constants from the contents of a
// constants file. name is used in error messages only.
func ParseConstants(contents, name string) (domain.Constants, error) {
	var c domain.Constants

	find := func(re *regexp.Regexp, key string) (string, error) {
		m := re.FindStringSubmatch(contents)
		if m == nil {
			return "", fmt.Errorf("%w: no %s value found in %s", domain.ErrInvalidConfig, key, name)
		}
		return m[re.SubexpIndex("v")], nil
	}
	parseUint := func(re *regexp.Regexp, key string, bits int) (uint64, error) {
		s, err := find(re, key)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %s in %s: %v", domain.ErrInvalidConfig, key, name, err)
		}
		return v, nil
	}
	parseColor := func(re *regexp.Regexp, key string) (uint8, error) {
		s, err := find(re, key)
		if err != nil {
			return 0, err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %s in %s: %v", domain.ErrInvalidConfig, key, name, err)
		}
		return b[0], nil
	}

	v, err := parseUint(reChunkSize, "chunk_size", 16)
	if err != nil {
		return c, err
	}
	c.SymbolSize = uint16(v)

	if c.MainColor, err = parseColor(reMainColor, "main_color"); err != nil {
		return c, err
	}
	if c.BackColor, err = parseColor(reBackColor, "back_color"); err != nil {
		return c, err
	}

	if v, err = parseUint(reScaling, "scaling", 31); err != nil {
		return c, err
	}
	c.Scaling = int32(v)

	if v, err = parseUint(reFPSNom, "fps_nom", 16); err != nil {
		return c, err
	}
	c.DelayNum = uint16(v)

	if v, err = parseUint(reFPSDen, "fps_den", 16); err != nil {
		return c, err
	}
	c.DelayDen = uint16(v)

	if v, err = parseUint(reBorder, "border", 31); err != nil {
		return c, err
	}
	c.Border = int32(v)

	if c.MainColor == c.BackColor {
		return c, fmt.Errorf("%w: 0x%02x, qr code generation not possible", domain.ErrIdenticalColors, c.MainColor)
	}
	return c, nil
}

// ApplyConstants applies constants file values to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyConstants(cfg *Config, c domain.Constants, changed map[string]bool) {
	s := newConfigSetter(changed)

	setValue(s, "symbol-size", &c.SymbolSize, &cfg.SymbolSize)
	setValue(s, "main-color", &c.MainColor, &cfg.MainColor)
	setValue(s, "back-color", &c.BackColor, &cfg.BackColor)
	setValue(s, "scaling", &c.Scaling, &cfg.Scaling)
	setValue(s, "delay-num", &c.DelayNum, &cfg.DelayNum)
	setValue(s, "delay-den", &c.DelayDen, &cfg.DelayDen)
	setValue(s, "border", &c.Border, &cfg.Border)
}
