package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgonek/lark-block-converter/mdconverter"
	"gopkg.in/yaml.v3"
)

const (
	presetBalanced = "balanced"
	presetCompact  = "compact"
	presetFaithful = "faithful"
	presetStrict   = "strict"
)

func presetConfig(preset string) (mdconverter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return mdconverter.Config{}, nil
	case presetCompact:
		return mdconverter.Config{
			BlankLines: mdconverter.BlankLinesNone,
		}, nil
	case presetFaithful:
		return mdconverter.Config{
			Emphasis:   mdconverter.EmphasisCompose,
			BlankLines: mdconverter.BlankLinesAll,
		}, nil
	case presetStrict:
		return mdconverter.Config{
			ResolutionMode: mdconverter.ResolutionStrict,
		}, nil
	default:
		return mdconverter.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, compact, faithful, strict)", preset)
	}
}

// configOverrides carries explicitly set command-line values. Empty fields
// leave the preset or file value alone.
type configOverrides struct {
	emphasis   string
	blankLines string
	blockIDs   string
	strict     bool
}

// resolveConfig layers a preset, an optional YAML file and flag overrides,
// in that order.
func resolveConfig(preset, configPath string, overrides configOverrides) (mdconverter.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return mdconverter.Config{}, err
	}

	if strings.TrimSpace(configPath) != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return mdconverter.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return mdconverter.Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if overrides.emphasis != "" {
		cfg.Emphasis = mdconverter.EmphasisMode(overrides.emphasis)
	}
	if overrides.blankLines != "" {
		cfg.BlankLines = mdconverter.BlankLineMode(overrides.blankLines)
	}
	if overrides.blockIDs != "" {
		cfg.BlockIDs = mdconverter.BlockIDMode(overrides.blockIDs)
	}
	if overrides.strict {
		cfg.ResolutionMode = mdconverter.ResolutionStrict
	}

	return cfg, nil
}
