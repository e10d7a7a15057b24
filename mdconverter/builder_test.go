package mdconverter

import (
	"testing"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentBuilderEmitsPreOrder(t *testing.T) {
	b := newContentBuilder(newIDAllocator(BlockIDSequential))

	quoteID := b.emit("", blocks.NewQuoteBlock())
	childID := b.emit(quoteID, blocks.NewEmptyParagraph())
	rootID := b.emit("", blocks.NewEmptyParagraph())

	content := b.content()
	assert.Equal(t, []string{"1", "3"}, content.ChildrenID)
	assert.Equal(t, "1", quoteID)
	assert.Equal(t, "2", childID)
	assert.Equal(t, "3", rootID)
	assert.Equal(t, []string{"2"}, content.Descendants[0].Children)
	assert.Equal(t, 1, b.childCount(quoteID))
	assert.Equal(t, 2, b.childCount(""))
}

func TestContentBuilderRollback(t *testing.T) {
	b := newContentBuilder(newIDAllocator(BlockIDSequential))
	quoteID := b.emit("", blocks.NewQuoteBlock())

	cp := b.checkpoint(quoteID)
	nestedID := b.emit(quoteID, blocks.NewQuoteBlock())
	b.emit(nestedID, blocks.NewEmptyParagraph())
	b.rollback(cp)

	content := b.content()
	require.Len(t, content.Descendants, 1)
	assert.Nil(t, content.Descendants[0].Children)
	assert.Equal(t, []string{"1"}, content.ChildrenID)

	// IDs are reissued so the sequence stays gap free.
	assert.Equal(t, "2", b.emit(quoteID, blocks.NewEmptyParagraph()))
}

func TestContentBuilderRootRollback(t *testing.T) {
	b := newContentBuilder(newIDAllocator(BlockIDSequential))
	b.emit("", blocks.NewEmptyParagraph())

	cp := b.checkpoint("")
	b.emit("", blocks.NewEmptyParagraph())
	b.emit("", blocks.NewEmptyParagraph())
	b.rollback(cp)

	content := b.content()
	assert.Equal(t, []string{"1"}, content.ChildrenID)
	assert.Len(t, content.Descendants, 1)
}

func TestUUIDAllocator(t *testing.T) {
	ids := newIDAllocator(BlockIDUUID)
	first := ids.next()
	second := ids.next()

	assert.Len(t, first, 22)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, ids.position())

	ids.rewind(0)
	assert.NotEqual(t, first, ids.next())
}
