package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"go.uber.org/zap"
)

// EmphasisMode controls how nested inline styles are combined.
type EmphasisMode string

const (
	// EmphasisOutermost lets the outermost marker decide the run style and
	// flattens everything inside it to that style.
	EmphasisOutermost EmphasisMode = "outermost"
	// EmphasisCompose merges the styles of nested markers into one run.
	EmphasisCompose EmphasisMode = "compose"
)

// BlankLineMode controls when blank lines between top-level blocks become
// empty paragraphs.
type BlankLineMode string

const (
	// BlankLinesExtra emits an empty paragraph for gaps of two or more blank lines.
	BlankLinesExtra BlankLineMode = "extra"
	// BlankLinesAll emits an empty paragraph for every gap that contains a blank line.
	BlankLinesAll BlankLineMode = "all"
	// BlankLinesNone never emits blank-line paragraphs.
	BlankLinesNone BlankLineMode = "none"
)

// BlockIDMode selects the block ID allocator.
type BlockIDMode string

const (
	// BlockIDSequential issues "1", "2", ... restarting for every conversion.
	BlockIDSequential BlockIDMode = "sequential"
	// BlockIDUUID issues random 22 character identifiers.
	BlockIDUUID BlockIDMode = "uuid"
)

// Config configures Markdown to block conversion.
type Config struct {
	Emphasis       EmphasisMode                   `json:"emphasis,omitempty" yaml:"emphasis,omitempty"`
	BlankLines     BlankLineMode                  `json:"blankLines,omitempty" yaml:"blankLines,omitempty"`
	BlockIDs       BlockIDMode                    `json:"blockIDs,omitempty" yaml:"blockIDs,omitempty"`
	LanguageMap    map[string]blocks.CodeLanguage `json:"languageMap,omitempty" yaml:"languageMap,omitempty"`
	ResolutionMode ResolutionMode                 `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	LinkHook       LinkHook                       `json:"-" yaml:"-"`
	Logger         *zap.Logger                    `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Emphasis == "" {
		c.Emphasis = EmphasisOutermost
	}
	if c.BlankLines == "" {
		c.BlankLines = BlankLinesExtra
	}
	if c.BlockIDs == "" {
		c.BlockIDs = BlockIDSequential
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.LanguageMap = cloneLanguageMap(c.LanguageMap)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Emphasis != EmphasisOutermost && c.Emphasis != EmphasisCompose {
		return fmt.Errorf("invalid emphasis %q", c.Emphasis)
	}

	if c.BlankLines != BlankLinesExtra &&
		c.BlankLines != BlankLinesAll &&
		c.BlankLines != BlankLinesNone {
		return fmt.Errorf("invalid blankLines %q", c.BlankLines)
	}

	if c.BlockIDs != BlockIDSequential && c.BlockIDs != BlockIDUUID {
		return fmt.Errorf("invalid blockIDs %q", c.BlockIDs)
	}

	for name, code := range c.LanguageMap {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("languageMap keys must be non-empty")
		}
		if code <= 0 {
			return fmt.Errorf("languageMap code for %q must be positive, got %d", name, code)
		}
	}

	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}

func cloneLanguageMap(src map[string]blocks.CodeLanguage) map[string]blocks.CodeLanguage {
	if src == nil {
		return nil
	}

	dst := make(map[string]blocks.CodeLanguage, len(src))
	for name, code := range src {
		dst[strings.ToLower(strings.TrimSpace(name))] = code
	}

	return dst
}
