package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgonek/lark-block-converter/mdconverter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetConfig(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		cfg, err := presetConfig(presetBalanced)
		require.NoError(t, err)
		assert.Equal(t, mdconverter.Config{}, cfg)
	})

	t.Run("empty defaults to balanced", func(t *testing.T) {
		cfg, err := presetConfig("")
		require.NoError(t, err)
		assert.Equal(t, mdconverter.Config{}, cfg)
	})

	t.Run("compact", func(t *testing.T) {
		cfg, err := presetConfig(presetCompact)
		require.NoError(t, err)
		assert.Equal(t, mdconverter.BlankLinesNone, cfg.BlankLines)
	})

	t.Run("faithful", func(t *testing.T) {
		cfg, err := presetConfig(" Faithful ")
		require.NoError(t, err)
		assert.Equal(t, mdconverter.EmphasisCompose, cfg.Emphasis)
		assert.Equal(t, mdconverter.BlankLinesAll, cfg.BlankLines)
	})

	t.Run("strict", func(t *testing.T) {
		cfg, err := presetConfig(presetStrict)
		require.NoError(t, err)
		assert.Equal(t, mdconverter.ResolutionStrict, cfg.ResolutionMode)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := presetConfig("fancy")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown preset "fancy"`)
	})
}

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mdlark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("emphasis: compose\nblankLines: none\nlanguageMap:\n  tf: 7\n"), 0o644))

	t.Run("file overrides preset", func(t *testing.T) {
		cfg, err := resolveConfig(presetFaithful, path, configOverrides{})
		require.NoError(t, err)
		assert.Equal(t, mdconverter.EmphasisCompose, cfg.Emphasis)
		assert.Equal(t, mdconverter.BlankLinesNone, cfg.BlankLines)
		assert.Contains(t, cfg.LanguageMap, "tf")
	})

	t.Run("flags override file", func(t *testing.T) {
		cfg, err := resolveConfig("", path, configOverrides{
			emphasis:   "outermost",
			blankLines: "all",
			blockIDs:   "uuid",
			strict:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, mdconverter.EmphasisOutermost, cfg.Emphasis)
		assert.Equal(t, mdconverter.BlankLinesAll, cfg.BlankLines)
		assert.Equal(t, mdconverter.BlockIDUUID, cfg.BlockIDs)
		assert.Equal(t, mdconverter.ResolutionStrict, cfg.ResolutionMode)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := resolveConfig("", filepath.Join(dir, "missing.yaml"), configOverrides{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("emphasis: [\n"), 0o644))
		_, err := resolveConfig("", bad, configOverrides{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestLinkBaseHook(t *testing.T) {
	hook, err := linkBaseHook("https://example.com/docs/")
	require.NoError(t, err)

	t.Run("relative destination", func(t *testing.T) {
		out, err := hook(context.Background(), mdconverter.LinkInput{Destination: "guide/intro.md"})
		require.NoError(t, err)
		assert.True(t, out.Handled)
		assert.Equal(t, "https://example.com/docs/guide/intro.md", out.Destination)
	})

	t.Run("absolute destination is left alone", func(t *testing.T) {
		out, err := hook(context.Background(), mdconverter.LinkInput{Destination: "https://other.org"})
		require.NoError(t, err)
		assert.False(t, out.Handled)
	})

	t.Run("fragment and autolink are left alone", func(t *testing.T) {
		out, err := hook(context.Background(), mdconverter.LinkInput{Destination: "#top"})
		require.NoError(t, err)
		assert.False(t, out.Handled)

		out, err = hook(context.Background(), mdconverter.LinkInput{Destination: "x", AutoLink: true})
		require.NoError(t, err)
		assert.False(t, out.Handled)
	})

	t.Run("unparsable destination is unresolved", func(t *testing.T) {
		_, err := hook(context.Background(), mdconverter.LinkInput{Destination: "http://[::1"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, mdconverter.ErrUnresolved))
	})

	t.Run("relative base is rejected", func(t *testing.T) {
		_, err := linkBaseHook("docs/")
		require.Error(t, err)
	})
}
