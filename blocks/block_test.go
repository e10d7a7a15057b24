package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockJSONFieldOrder(t *testing.T) {
	block := NewTextBlock(TypeBullet, []TextElement{NewRun("item", TextElementStyle{})}, DefaultTextStyle())
	block.BlockID = "7"
	block.Children = []string{"8"}

	data, err := json.Marshal(block)
	require.NoError(t, err)

	assert.Equal(t,
		`{"block_type":12,"block_id":"7","bullet":{"elements":[{"text_run":{"content":"item",`+
			`"text_element_style":{"bold":false,"italic":false,"inline_code":false,"strikethrough":false,"underline":false}}}],`+
			`"style":{"align":1,"folded":false}},"children":["8"]}`,
		string(data))
}

func TestTodoStyleAlwaysCarriesDone(t *testing.T) {
	done := false
	style := DefaultTextStyle()
	style.Done = &done

	block := NewTextBlock(TypeTodo, nil, style)
	data, err := json.Marshal(block)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"todo":{"elements":[],"style":{"align":1,"folded":false,"done":false}}`)
}

func TestQuoteContainerSerializesEmptyObject(t *testing.T) {
	block := NewQuoteBlock()
	block.BlockID = "1"
	block.Children = []string{"2"}

	data, err := json.Marshal(block)
	require.NoError(t, err)
	assert.Equal(t, `{"block_type":34,"block_id":"1","quote_container":{},"children":["2"]}`, string(data))
}

func TestNewTextBlockFallsBackToText(t *testing.T) {
	block := NewTextBlock(TypeTable, nil, DefaultTextStyle())
	assert.Equal(t, TypeText, block.BlockType)
	require.NotNil(t, block.Text)
	assert.Empty(t, block.Text.Elements)
	assert.Nil(t, block.Table)
}

func TestNewCodeBlock(t *testing.T) {
	block := NewCodeBlock([]string{"a := 1", "", "b := 2"}, LanguageGo)
	require.NotNil(t, block.Code)
	assert.Len(t, block.Code.Elements, 3)
	assert.Equal(t, LanguageGo, block.Code.Style.Language)
	assert.False(t, block.Code.Style.Wrap)
	assert.Equal(t, "a := 1b := 2", block.PlainText())
}

func TestNewTableBlock(t *testing.T) {
	block := NewTableBlock([][]string{{"A", "B"}, {"1", "2"}})
	data, err := json.Marshal(block.Table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cells":[[{"text":"A"},{"text":"B"}],[{"text":"1"},{"text":"2"}]]}`, string(data))
}

func TestBlockTypeHelpers(t *testing.T) {
	assert.Equal(t, "quote_container", TypeQuoteContainer.String())
	assert.Equal(t, "heading3", TypeHeading3.String())
	assert.Equal(t, "unknown", BlockType(99).String())
	assert.True(t, TypeTodo.IsContainer())
	assert.False(t, TypeCode.IsContainer())
}

func TestLookupLanguage(t *testing.T) {
	tests := []struct {
		name string
		want CodeLanguage
		ok   bool
	}{
		{name: "python", want: 49, ok: true},
		{name: "Python", want: 49, ok: true},
		{name: "JS", want: 30, ok: true},
		{name: "shell", want: 53, ok: true},
		{name: "bash", want: 4, ok: true},
		{name: "yaml", want: 66, ok: true},
		{name: "c++", want: 11, ok: true},
		{name: "brainfuck", want: 1, ok: false},
		{name: "", want: 1, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupLanguage(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLanguagesReturnsCopy(t *testing.T) {
	table := Languages()
	table["python"] = 0

	code, ok := LookupLanguage("python")
	assert.True(t, ok)
	assert.Equal(t, LanguagePython, code)
}
