package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for TOML files. Pointer fields distinguish an
// explicit zero from an absent key.
type FileConfig struct {
	Payload     string  `toml:"payload"`
	Output      string  `toml:"output"`
	InputFormat string  `toml:"input_format"`
	Constants   string  `toml:"constants_file"`
	SymbolSize  *uint16 `toml:"symbol_size"`
	MainColor   *uint8  `toml:"main_color"`
	BackColor   *uint8  `toml:"back_color"`
	Scaling     *int32  `toml:"scaling"`
	DelayNum    *uint16 `toml:"delay_num"`
	DelayDen    *uint16 `toml:"delay_den"`
	Border      *int32  `toml:"border"`
	Workers     int     `toml:"workers"`
	Verify      *bool   `toml:"verify"`
	Watch       *bool   `toml:"watch"`
	LogLevel    string  `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.qrfountain/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".qrfountain", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("payload", fc.Payload, &cfg.PayloadPath)
	s.setString("out", fc.Output, &cfg.OutputPath)
	s.setString("input-format", fc.InputFormat, &cfg.InputFormat)
	s.setString("constants", fc.Constants, &cfg.ConstantsPath)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	setValue(s, "symbol-size", fc.SymbolSize, &cfg.SymbolSize)
	setValue(s, "main-color", fc.MainColor, &cfg.MainColor)
	setValue(s, "back-color", fc.BackColor, &cfg.BackColor)
	setValue(s, "scaling", fc.Scaling, &cfg.Scaling)
	setValue(s, "delay-num", fc.DelayNum, &cfg.DelayNum)
	setValue(s, "delay-den", fc.DelayDen, &cfg.DelayDen)
	setValue(s, "border", fc.Border, &cfg.Border)

	s.setInt("workers", fc.Workers, &cfg.Workers)

	s.setBool("verify", fc.Verify, &cfg.Verify)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
