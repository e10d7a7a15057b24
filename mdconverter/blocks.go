package mdconverter

import (
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	"go.uber.org/zap"
)

func (s *state) convertParagraphNode(node ast.Node, parentID string) error {
	runs, err := s.convertInlineChildren(node, newMarkStack())
	if err != nil {
		return err
	}

	s.builder.emit(parentID, blocks.NewTextBlock(blocks.TypeText, runElements(runs), blocks.DefaultTextStyle()))
	return nil
}

// convertHeadingNode maps levels 1-3 to heading blocks and deeper levels to
// plain text. Heading content is always unstyled. A spacer paragraph follows
// every heading except a level 3 heading closing its sequence.
func (s *state) convertHeadingNode(node *ast.Heading, parentID string, isLast bool) error {
	blockType := blocks.TypeText
	switch node.Level {
	case 1:
		blockType = blocks.TypeHeading1
	case 2:
		blockType = blocks.TypeHeading2
	case 3:
		blockType = blocks.TypeHeading3
	}

	content := s.plainText(node)
	elements := []blocks.TextElement{blocks.NewRun(content, blocks.TextElementStyle{})}
	s.builder.emit(parentID, blocks.NewTextBlock(blockType, elements, blocks.DefaultTextStyle()))

	if !(isLast && node.Level == 3) {
		s.builder.emit(parentID, blocks.NewEmptyParagraph())
	}
	return nil
}

func (s *state) convertBlockquoteNode(node *ast.Blockquote, parentID string) error {
	quoteID := s.builder.emit(parentID, blocks.NewQuoteBlock())

	if err := s.convertSequence(childNodes(node), quoteID, false); err != nil {
		return err
	}

	if s.builder.childCount(quoteID) == 0 {
		s.builder.emit(quoteID, blocks.NewEmptyParagraph())
	}
	return nil
}

func (s *state) convertFencedCodeBlockNode(node *ast.FencedCodeBlock, parentID string) error {
	name := ""
	if fields := strings.Fields(string(node.Language(s.source))); len(fields) > 0 {
		name = fields[0]
	}

	lines := codeLines(s.blockText(node))
	s.builder.emit(parentID, blocks.NewCodeBlock(lines, s.resolveLanguage(name)))
	return nil
}

func (s *state) convertCodeBlockNode(node *ast.CodeBlock, parentID string) error {
	lines := codeLines(s.blockText(node))
	s.builder.emit(parentID, blocks.NewCodeBlock(lines, blocks.LanguagePlainText))
	return nil
}

func (s *state) resolveLanguage(name string) blocks.CodeLanguage {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return blocks.LanguagePlainText
	}

	if code, ok := s.config.LanguageMap[key]; ok {
		return code
	}

	code, ok := blocks.LookupLanguage(key)
	if !ok {
		s.logger.Debug("unknown code language", zap.String("language", name))
	}
	return code
}

// blockText joins the raw lines of a block, restoring tab padding.
func (s *state) blockText(node ast.Node) string {
	var b strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		if segment.Padding > 0 {
			b.WriteString(strings.Repeat(" ", segment.Padding))
		}
		b.Write(segment.Value(s.source))
	}
	return b.String()
}

// codeLines splits code on line breaks after dropping trailing newlines.
// Empty code has no lines.
func codeLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
