package cliconfig

import "fmt"

// Load layers configuration sources onto cfg in increasing precedence:
// the legacy constants file, the TOML file at cfgFile, QRFOUNTAIN_*
// environment variables and finally explicitly set flags (changed).
// cfgFile may be empty or point to a missing file.
func Load(cfg *Config, cfgFile string, changed map[string]bool) error {
	var fc FileConfig
	if cfgFile != "" && FileExists(cfgFile) {
		var err error
		if fc, err = LoadFileConfig(cfgFile); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// The constants file path may itself come from the file or env.
	layered := *cfg
	if err := ApplyFileConfig(&layered, fc, changed); err != nil {
		return err
	}
	if err := ApplyEnvConfig(&layered, changed); err != nil {
		return err
	}
	path := layered.ConstantsPath
	if path == "" && FileExists(DefaultConstantsFile) {
		path = DefaultConstantsFile
	}
	if path != "" {
		c, err := LoadConstantsFile(path)
		if err != nil {
			return fmt.Errorf("load constants: %w", err)
		}
		ApplyConstants(cfg, c, changed)
		cfg.ConstantsPath = path
	}

	if err := ApplyFileConfig(cfg, fc, changed); err != nil {
		return err
	}
	return ApplyEnvConfig(cfg, changed)
}
