package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (QRFOUNTAIN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("out", os.Getenv("QRFOUNTAIN_OUTPUT"), &cfg.OutputPath)
	s.setString("input-format", os.Getenv("QRFOUNTAIN_INPUT_FORMAT"), &cfg.InputFormat)
	s.setString("constants", os.Getenv("QRFOUNTAIN_CONSTANTS_FILE"), &cfg.ConstantsPath)
	s.setString("log-level", os.Getenv("QRFOUNTAIN_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setUintFromString("symbol-size", os.Getenv("QRFOUNTAIN_SYMBOL_SIZE"), 16,
		func(v uint64) { cfg.SymbolSize = uint16(v) }); err != nil {
		return err
	}
	if err := s.setUintFromString("main-color", os.Getenv("QRFOUNTAIN_MAIN_COLOR"), 8,
		func(v uint64) { cfg.MainColor = uint8(v) }); err != nil {
		return err
	}
	if err := s.setUintFromString("back-color", os.Getenv("QRFOUNTAIN_BACK_COLOR"), 8,
		func(v uint64) { cfg.BackColor = uint8(v) }); err != nil {
		return err
	}
	if err := s.setIntFromString("scaling", os.Getenv("QRFOUNTAIN_SCALING"), 32,
		func(v int64) { cfg.Scaling = int32(v) }); err != nil {
		return err
	}
	if err := s.setUintFromString("delay-num", os.Getenv("QRFOUNTAIN_DELAY_NUM"), 16,
		func(v uint64) { cfg.DelayNum = uint16(v) }); err != nil {
		return err
	}
	if err := s.setUintFromString("delay-den", os.Getenv("QRFOUNTAIN_DELAY_DEN"), 16,
		func(v uint64) { cfg.DelayDen = uint16(v) }); err != nil {
		return err
	}
	if err := s.setIntFromString("border", os.Getenv("QRFOUNTAIN_BORDER"), 32,
		func(v int64) { cfg.Border = int32(v) }); err != nil {
		return err
	}
	if err := s.setIntFromString("workers", os.Getenv("QRFOUNTAIN_WORKERS"), 0,
		func(v int64) {
			if v > 0 {
				cfg.Workers = int(v)
			}
		}); err != nil {
		return err
	}

	s.setBoolFromString("verify", os.Getenv("QRFOUNTAIN_VERIFY"), &cfg.Verify)
	s.setBoolFromString("watch", os.Getenv("QRFOUNTAIN_WATCH"), &cfg.Watch)

	return nil
}
