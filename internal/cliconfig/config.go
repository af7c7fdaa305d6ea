package cliconfig

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/bft-labs/qrfountain/internal/adapters/fs"
	"github.com/bft-labs/qrfountain/internal/domain"
)

// Config holds CLI configuration for qrfountain.
type Config struct {
	PayloadPath   string
	OutputPath    string
	InputFormat   string
	ConstantsPath string

	SymbolSize uint16
	MainColor  uint8
	BackColor  uint8
	Scaling    int32
	DelayNum   uint16
	DelayDen   uint16
	Border     int32

	Workers  int
	Verify   bool
	Watch    bool
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	c := domain.DefaultConstants()
	return Config{
		InputFormat: fs.FormatHex,
		SymbolSize:  c.SymbolSize,
		MainColor:   c.MainColor,
		BackColor:   c.BackColor,
		Scaling:     c.Scaling,
		DelayNum:    c.DelayNum,
		DelayDen:    c.DelayDen,
		Border:      c.Border,
		Workers:     runtime.NumCPU(),
		LogLevel:    "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.PayloadPath == "" {
		return fmt.Errorf("payload file is required")
	}
	if c.OutputPath == "" {
		c.OutputPath = c.PayloadPath + ".png"
	}
	switch c.InputFormat {
	case fs.FormatHex, fs.FormatText, fs.FormatRaw:
	default:
		return fmt.Errorf("input-format must be hex, text or raw, got %q", c.InputFormat)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c.Constants().Validate()
}

// Constants returns the pipeline constants carried by the config.
func (c Config) Constants() domain.Constants {
	return domain.Constants{
		SymbolSize: c.SymbolSize,
		MainColor:  c.MainColor,
		BackColor:  c.BackColor,
		Scaling:    c.Scaling,
		DelayNum:   c.DelayNum,
		DelayDen:   c.DelayDen,
		Border:     c.Border,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setValue sets any value from a pointer if not nil and flag not changed.
// Zero is a meaningful color, so presence is tracked by the pointer.
func setValue[T any](s *configSetter, flag string, value *T, dst *T) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setUintFromString parses an unsigned integer of the given bit size.
// Hex values with a 0x prefix are accepted.
func (s *configSetter) setUintFromString(flag, value string, bits int, dst func(uint64)) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	u, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	dst(u)
	return nil
}

// setIntFromString parses a signed integer of the given bit size.
func (s *configSetter) setIntFromString(flag, value string, bits int, dst func(int64)) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 0, bits)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	dst(i)
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
