package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{envConfig, envPreset, envLogLevel, envLinkBase} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeContent(t *testing.T, data string) blocks.Content {
	t.Helper()
	var content blocks.Content
	require.NoError(t, json.Unmarshal([]byte(data), &content))
	return content
}

func TestConvertFromStdin(t *testing.T) {
	stdout, _, err := executeRoot(t, "# Title\n\nbody\n", "convert")
	require.NoError(t, err)

	content := decodeContent(t, stdout)
	require.NotEmpty(t, content.Descendants)
	assert.Equal(t, blocks.TypeHeading1, content.Descendants[0].BlockType)
	assert.Equal(t, "Title", content.Descendants[0].PlainText())
	assert.Equal(t, "body", content.Descendants[len(content.Descendants)-1].PlainText())
	assert.Len(t, content.ChildrenID, len(content.Descendants))
}

func TestConvertFileToOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	output := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(input, []byte("hello *world*\n"), 0o644))

	stdout, _, err := executeRoot(t, "", "convert", "--pretty", "-o", output, input)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"children_id\"")

	content := decodeContent(t, string(data))
	require.Len(t, content.Descendants, 1)
	assert.Equal(t, "hello world", content.Descendants[0].PlainText())
}

func TestConvertUUIDBlockIDs(t *testing.T) {
	stdout, _, err := executeRoot(t, "a\n\nb\n", "convert", "--ids", "uuid")
	require.NoError(t, err)

	content := decodeContent(t, stdout)
	require.Len(t, content.Descendants, 2)
	for _, block := range content.Descendants {
		assert.Len(t, block.BlockID, 22)
	}
}

func TestConvertLinkBase(t *testing.T) {
	stdout, _, err := executeRoot(t, "[guide](intro.md)\n", "convert", "--link-base", "https://example.com/docs/")
	require.NoError(t, err)
	assert.Contains(t, stdout, "https%3A%2F%2Fexample.com%2Fdocs%2Fintro.md")
}

func TestConvertWarningsAreLogged(t *testing.T) {
	stdout, stderr, err := executeRoot(t, "![logo](logo.png)\n", "convert")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
	assert.Contains(t, stderr, "image")
}

func TestConvertStrictFailsOnWarnings(t *testing.T) {
	stdout, _, err := executeRoot(t, "![logo](logo.png)\n", "convert", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "produced 1 warnings")
	assert.Empty(t, stdout)
}

func TestConvertRejectsInvalidFlags(t *testing.T) {
	_, _, err := executeRoot(t, "x", "convert", "--emphasis", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid emphasis")

	_, _, err = executeRoot(t, "x", "convert", "--preset", "fancy")
	require.Error(t, err)

	_, _, err = executeRoot(t, "x", "--log-level", "chatty", "convert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConvertMissingFile(t *testing.T) {
	_, _, err := executeRoot(t, "", "convert", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestConvertPresetFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(envPreset+"=compact\n"), 0o644))

	t.Setenv(envPreset, "")
	require.NoError(t, os.Unsetenv(envPreset))

	var stdout bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader("a\n\n\n\nb\n"))
	root.SetOut(&stdout)
	root.SetArgs([]string{"--env", envFile, "convert"})
	require.NoError(t, root.Execute())

	content := decodeContent(t, stdout.String())
	assert.Len(t, content.Descendants, 2)
}

func TestLanguagesCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "", "languages")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, stdout, "golang")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "mdlark dev\n", stdout)
}
