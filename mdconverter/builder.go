package mdconverter

import (
	"encoding/base64"
	"strconv"

	"github.com/google/uuid"
	"github.com/rgonek/lark-block-converter/blocks"
)

type idAllocator interface {
	next() string
	position() int
	rewind(position int)
}

func newIDAllocator(mode BlockIDMode) idAllocator {
	if mode == BlockIDUUID {
		return &uuidIDs{}
	}
	return &sequentialIDs{}
}

// sequentialIDs issues "1", "2", ... in emission order.
type sequentialIDs struct {
	counter int
}

func (a *sequentialIDs) next() string {
	a.counter++
	return strconv.Itoa(a.counter)
}

func (a *sequentialIDs) position() int {
	return a.counter
}

func (a *sequentialIDs) rewind(position int) {
	a.counter = position
}

// uuidIDs issues unpadded URL-safe base64 encodings of random UUIDs.
type uuidIDs struct {
	issued int
}

func (a *uuidIDs) next() string {
	a.issued++
	id := uuid.New()
	return base64.RawURLEncoding.EncodeToString(id[:])
}

func (a *uuidIDs) position() int {
	return a.issued
}

// rewind never reuses random IDs.
func (a *uuidIDs) rewind(int) {}

// contentBuilder owns the flat descendants table while a document is walked.
// Blocks are appended in pre-order, so a parent always precedes its children.
type contentBuilder struct {
	ids         idAllocator
	childrenID  []string
	descendants []blocks.Block
	index       map[string]int
}

type checkpoint struct {
	descendants    int
	rootChildren   int
	parentID       string
	parentChildren int
	ids            int
}

func newContentBuilder(ids idAllocator) *contentBuilder {
	return &contentBuilder{
		ids:         ids,
		childrenID:  []string{},
		descendants: []blocks.Block{},
		index:       map[string]int{},
	}
}

// emit assigns an ID to block, appends it and links it under parentID.
// An empty parentID attaches the block to the document root.
func (b *contentBuilder) emit(parentID string, block blocks.Block) string {
	id := b.ids.next()
	block.BlockID = id
	b.index[id] = len(b.descendants)
	b.descendants = append(b.descendants, block)

	if idx, ok := b.index[parentID]; ok {
		parent := &b.descendants[idx]
		parent.Children = append(parent.Children, id)
	} else {
		b.childrenID = append(b.childrenID, id)
	}

	return id
}

func (b *contentBuilder) checkpoint(parentID string) checkpoint {
	cp := checkpoint{
		descendants:  len(b.descendants),
		rootChildren: len(b.childrenID),
		parentID:     parentID,
		ids:          b.ids.position(),
	}
	if idx, ok := b.index[parentID]; ok {
		cp.parentChildren = len(b.descendants[idx].Children)
	}
	return cp
}

// rollback discards every block emitted since cp was taken.
func (b *contentBuilder) rollback(cp checkpoint) {
	for _, block := range b.descendants[cp.descendants:] {
		delete(b.index, block.BlockID)
	}
	b.descendants = b.descendants[:cp.descendants]
	b.childrenID = b.childrenID[:cp.rootChildren]

	if idx, ok := b.index[cp.parentID]; ok {
		parent := &b.descendants[idx]
		parent.Children = parent.Children[:cp.parentChildren]
		if len(parent.Children) == 0 {
			parent.Children = nil
		}
	}

	b.ids.rewind(cp.ids)
}

func (b *contentBuilder) childCount(parentID string) int {
	if idx, ok := b.index[parentID]; ok {
		return len(b.descendants[idx].Children)
	}
	return len(b.childrenID)
}

func (b *contentBuilder) content() blocks.Content {
	return blocks.Content{
		ChildrenID:  b.childrenID,
		Descendants: b.descendants,
	}
}
