package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// convertListNode emits one block per item. A spacer follows a top-level
// unordered list unless it closes the document.
func (s *state) convertListNode(node *ast.List, parentID string, isLast bool) error {
	if err := s.convertListItems(node, parentID); err != nil {
		return err
	}

	if parentID == "" && !node.IsOrdered() && !isLast {
		s.builder.emit(parentID, blocks.NewEmptyParagraph())
	}
	return nil
}

func (s *state) convertListItems(node *ast.List, parentID string) error {
	firstOrdered := true

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			return fmt.Errorf("list contains %s instead of a list item: %w", child.Kind().String(), errMalformedNode)
		}

		block, nested, err := s.convertListItemNode(item, node.IsOrdered(), &firstOrdered)
		if err != nil {
			return err
		}

		itemID := s.builder.emit(parentID, block)
		for _, list := range nested {
			if err := s.convertListItems(list, itemID); err != nil {
				return err
			}
		}
	}

	return nil
}

// convertListItemNode builds the block for one item and returns the nested
// lists that become its children. The first paragraph of the item is its
// content; other block children are dropped.
func (s *state) convertListItemNode(item *ast.ListItem, ordered bool, firstOrdered *bool) (blocks.Block, []*ast.List, error) {
	var (
		runs    []inlineRun
		nested  []*ast.List
		checked *bool
		hasText bool
	)

	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if hasText {
				s.addWarning(
					blocks.WarningDroppedFeature,
					typed.Kind().String(),
					"list items keep only their first paragraph",
				)
				continue
			}
			hasText = true
			checked = taskState(typed)

			converted, err := s.convertInlineChildren(typed, newMarkStack())
			if err != nil {
				return blocks.Block{}, nil, err
			}
			runs = converted
		case *ast.List:
			nested = append(nested, typed)
		default:
			nodeKind := typed.Kind().String()
			s.addWarning(
				blocks.WarningDroppedFeature,
				nodeKind,
				fmt.Sprintf("%s inside a list item is not supported", nodeKind),
			)
		}
	}

	// Only the first item of a list may restart numbering, whatever its type.
	first := *firstOrdered
	*firstOrdered = false

	style := blocks.DefaultTextStyle()
	blockType := blocks.TypeBullet
	switch {
	case checked != nil:
		blockType = blocks.TypeTodo
		style.Done = checked
		runs = trimLeadingSpace(runs)
	case ordered:
		blockType = blocks.TypeOrdered
		style.Sequence = "auto"
		if first {
			style.Sequence = "1"
		}
	}

	return blocks.NewTextBlock(blockType, runElements(runs), style), nested, nil
}

// taskState returns the checkbox state of a task item, or nil.
func taskState(paragraph ast.Node) *bool {
	for child := paragraph.FirstChild(); child != nil; child = child.NextSibling() {
		if box, ok := child.(*extast.TaskCheckBox); ok {
			checked := box.IsChecked
			return &checked
		}
	}
	return nil
}

func trimLeadingSpace(runs []inlineRun) []inlineRun {
	if len(runs) == 0 || runs[0].lineBreak {
		return runs
	}
	runs[0].content = strings.TrimLeft(runs[0].content, " \t")
	if runs[0].content == "" {
		return runs[1:]
	}
	return runs
}
