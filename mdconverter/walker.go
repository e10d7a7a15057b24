package mdconverter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"go.uber.org/zap"
)

// errMalformedNode marks a node whose partial output must be discarded.
var errMalformedNode = errors.New("malformed node")

// sequenceEntry is one slot of a block sequence: a markdown node or a
// synthetic blank-line paragraph.
type sequenceEntry struct {
	node  ast.Node
	blank bool
}

func (s *state) convertDocument(root ast.Node) error {
	if err := s.checkContext(); err != nil {
		return err
	}
	return s.convertSequence(childNodes(root), "", true)
}

// convertSequence converts sibling block nodes under parentID. Every entry
// knows whether it is the last node of the sequence, which drives spacer
// decisions for headings and lists. Skipped nodes still count as following
// nodes.
func (s *state) convertSequence(nodes []ast.Node, parentID string, topLevel bool) error {
	entries, skippedTail := s.sequenceEntries(nodes, topLevel)

	for idx, entry := range entries {
		isLast := idx == len(entries)-1 && !skippedTail
		if entry.blank {
			s.builder.emit(parentID, blocks.NewEmptyParagraph())
			continue
		}

		cp := s.builder.checkpoint(parentID)
		if err := s.convertBlockNode(entry.node, parentID, isLast); err != nil {
			if !errors.Is(err, errMalformedNode) {
				return err
			}
			s.builder.rollback(cp)
			nodeKind := entry.node.Kind().String()
			s.addWarning(
				blocks.WarningMalformedNode,
				nodeKind,
				fmt.Sprintf("dropped %s: %v", nodeKind, err),
			)
		}
	}

	return nil
}

// sequenceEntries filters out nodes that produce no blocks and inserts
// blank-line entries between the remaining ones. Blank entries never lead
// or trail a sequence. skippedTail reports whether skipped nodes follow the
// last entry.
func (s *state) sequenceEntries(nodes []ast.Node, topLevel bool) (entries []sequenceEntry, skippedTail bool) {
	entries = make([]sequenceEntry, 0, len(nodes))
	pendingBlank := false

	for idx, node := range nodes {
		if topLevel && idx > 0 && s.blankLineBefore(nodes[idx-1], node) {
			pendingBlank = true
		}

		if !s.supportedBlock(node) {
			skippedTail = true
			continue
		}

		if pendingBlank && len(entries) > 0 {
			entries = append(entries, sequenceEntry{blank: true})
		}
		pendingBlank = false
		skippedTail = false
		entries = append(entries, sequenceEntry{node: node})
	}

	return entries, skippedTail
}

func (s *state) supportedBlock(node ast.Node) bool {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading, *ast.Blockquote,
		*ast.FencedCodeBlock, *ast.CodeBlock, *ast.List, *extast.Table:
		return true
	case *ast.ThematicBreak:
		s.addWarning(blocks.WarningDroppedFeature, "ThematicBreak", "thematic breaks have no block equivalent")
	case *ast.HTMLBlock:
		if s.isHTMLTable(typed) {
			return true
		}
		s.addWarning(blocks.WarningDroppedFeature, "HTMLBlock", "raw HTML blocks other than tables are skipped")
	default:
		nodeKind := node.Kind().String()
		s.logger.Debug("skipping block node", zap.String("kind", nodeKind))
		s.addWarning(
			blocks.WarningUnknownNode,
			nodeKind,
			fmt.Sprintf("unsupported markdown block node: %s", nodeKind),
		)
	}
	return false
}

func (s *state) convertBlockNode(node ast.Node, parentID string, isLast bool) error {
	switch typed := node.(type) {
	case *ast.Paragraph:
		return s.convertParagraphNode(typed, parentID)
	case *ast.TextBlock:
		return s.convertParagraphNode(typed, parentID)
	case *ast.Heading:
		return s.convertHeadingNode(typed, parentID, isLast)
	case *ast.Blockquote:
		return s.convertBlockquoteNode(typed, parentID)
	case *ast.FencedCodeBlock:
		return s.convertFencedCodeBlockNode(typed, parentID)
	case *ast.CodeBlock:
		return s.convertCodeBlockNode(typed, parentID)
	case *ast.List:
		return s.convertListNode(typed, parentID, isLast)
	case *extast.Table:
		return s.convertTableNode(typed, parentID)
	case *ast.HTMLBlock:
		return s.convertHTMLBlockNode(typed, parentID)
	default:
		return fmt.Errorf("unexpected block node %s: %w", node.Kind().String(), errMalformedNode)
	}
}

// blankLineBefore reports whether the source between prev and next holds
// enough blank lines to become an empty paragraph.
func (s *state) blankLineBefore(prev, next ast.Node) bool {
	threshold := 0
	switch s.config.BlankLines {
	case BlankLinesAll:
		threshold = 1
	case BlankLinesExtra:
		threshold = 2
	default:
		return false
	}

	_, prevStop, prevOK := sourceSpan(prev)
	nextStart, _, nextOK := sourceSpan(next)
	if !prevOK || !nextOK || nextStart <= prevStop || nextStart > len(s.source) {
		if threshold == 1 {
			return next.HasBlankPreviousLines()
		}
		return false
	}

	return countBlankLines(s.source, prevStop, nextStart) >= threshold
}

// countBlankLines counts whitespace-only lines that lie completely between
// two source offsets.
func countBlankLines(source []byte, from, to int) int {
	pieces := strings.Split(string(source[from:to]), "\n")
	// The last piece is the indentation or marker of the next node's line.
	pieces = pieces[:len(pieces)-1]
	if from > 0 && source[from-1] != '\n' && len(pieces) > 0 {
		// The first piece is the tail of the previous node's line.
		pieces = pieces[1:]
	}

	blank := 0
	for _, piece := range pieces {
		if strings.TrimSpace(piece) == "" {
			blank++
		}
	}
	return blank
}

// sourceSpan returns the smallest and largest source offsets covered by the
// block lines of node and its descendants.
func sourceSpan(node ast.Node) (int, int, bool) {
	start, stop := -1, -1
	_ = ast.Walk(node, func(current ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || current.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := current.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			if start == -1 || segment.Start < start {
				start = segment.Start
			}
			if segment.Stop > stop {
				stop = segment.Stop
			}
		}
		return ast.WalkContinue, nil
	})

	return start, stop, start != -1
}

func childNodes(parent ast.Node) []ast.Node {
	children := make([]ast.Node, 0, parent.ChildCount())
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		children = append(children, child)
	}
	return children
}
