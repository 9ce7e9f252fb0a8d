package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the standard Boomtris configuration.
func Load(customPath string) (BoomtrisConfig, error) {
	return LoadVariant(VariantStandard, customPath)
}

// LoadVariant loads and validates a variant's configuration.
// Search order: customPath -> ~/.boomtris/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hardcoded default.
// Keys missing from a file keep their default values.
//
// A custom path that cannot be read or parsed is an error; broken files in
// the other locations are skipped.
func LoadVariant(variant, customPath string) (BoomtrisConfig, error) {
	filename := variant + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BoomtrisConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(variant, data)
		if err != nil {
			return BoomtrisConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return BoomtrisConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(variant, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	if data, ok := embeddedDefaults[variant]; ok {
		if cfg, err := decode(variant, data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}
	return defaultFor(variant), nil
}

// decode parses YAML on top of the variant's hardcoded defaults.
func decode(variant string, data []byte) (BoomtrisConfig, error) {
	cfg := defaultFor(variant)
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BoomtrisConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boomtris", "configs", filename)
}

// Marshal renders a config as YAML, for `boomtris config` style dumps and tests.
func Marshal(cfg BoomtrisConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
