package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"go.uber.org/zap"
)

func (s *state) convertInlineChildren(parent ast.Node, stack *markStack) ([]inlineRun, error) {
	var content []inlineRun

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		converted, err := s.convertInlineNode(child, stack)
		if err != nil {
			return nil, err
		}
		for _, run := range converted {
			content = appendRun(content, run)
		}
	}

	return content, nil
}

func (s *state) convertInlineNode(node ast.Node, stack *markStack) ([]inlineRun, error) {
	switch typed := node.(type) {
	case *ast.Text:
		var content []inlineRun
		textValue := s.textValue(typed)
		if textValue != "" {
			content = append(content, newRun(textValue, stack.current()))
		}

		if typed.HardLineBreak() {
			content = append(content, lineBreakRun())
		} else if typed.SoftLineBreak() {
			content = append(content, newRun(" ", stack.current()))
		}

		return content, nil

	case *ast.String:
		return []inlineRun{
			newRun(string(typed.Value), stack.current()),
		}, nil

	case *ast.Emphasis:
		kind := markItalic
		if typed.Level >= 2 {
			kind = markBold
		}
		return s.convertMarkedNode(typed, stack, mark{kind: kind})

	case *extast.Strikethrough:
		return s.convertMarkedNode(typed, stack, mark{kind: markStrike})

	case *ast.CodeSpan:
		return []inlineRun{
			newRun(s.codeSpanText(typed), stack.with(mark{kind: markCode})),
		}, nil

	case *ast.Link:
		destination := strings.TrimSpace(string(typed.Destination))
		if destination == "" {
			return s.convertInlineChildren(typed, stack)
		}

		url, err := s.resolveLinkURL(LinkInput{
			Destination: destination,
			Title:       strings.TrimSpace(string(typed.Title)),
			Text:        s.plainText(typed),
		})
		if err != nil {
			return nil, err
		}
		return s.convertMarkedNode(typed, stack, mark{kind: markLink, url: url})

	case *ast.AutoLink:
		label := string(typed.Label(s.source))
		url, err := s.resolveLinkURL(LinkInput{
			Destination: string(typed.URL(s.source)),
			Text:        label,
			AutoLink:    true,
		})
		if err != nil {
			return nil, err
		}
		return []inlineRun{
			newRun(label, stack.with(mark{kind: markLink, url: url})),
		}, nil

	case *extast.TaskCheckBox:
		return nil, nil

	case *ast.Image:
		s.addWarning(
			blocks.WarningDroppedFeature,
			typed.Kind().String(),
			fmt.Sprintf("image %q is skipped", string(typed.Destination)),
		)
		return nil, nil

	case *ast.RawHTML:
		return s.convertRawHTML(typed, stack), nil

	default:
		if node.HasChildren() {
			return s.convertInlineChildren(node, stack)
		}
		s.warnUnknownInline(node)
		return nil, nil
	}
}

// convertMarkedNode applies m to the content of node. With outermost
// emphasis the node's whole text becomes a single run carrying m and the
// marks opened by enclosing HTML tags; with composed emphasis m also joins
// the marks of enclosing markdown nodes.
func (s *state) convertMarkedNode(node ast.Node, stack *markStack, m mark) ([]inlineRun, error) {
	if s.config.Emphasis == EmphasisOutermost {
		// Outermost mode never pushes markdown marks, so stack only holds
		// HTML marks here.
		return []inlineRun{
			newRun(s.plainText(node), stack.with(m)),
		}, nil
	}

	stack.push(m)
	content, err := s.convertInlineChildren(node, stack)
	stack.popByType(m.kind)
	return content, err
}

func (s *state) warnUnknownInline(node ast.Node) {
	nodeKind := node.Kind().String()
	s.logger.Debug("skipping inline node", zap.String("kind", nodeKind))
	s.addWarning(
		blocks.WarningUnknownNode,
		nodeKind,
		fmt.Sprintf("unsupported markdown inline node: %s", nodeKind),
	)
}

// textValue returns the literal text of a text node with backslash escapes
// resolved.
func (s *state) textValue(node *ast.Text) string {
	value := string(node.Value(s.source))
	if node.IsRaw() {
		return value
	}
	if node.HardLineBreak() {
		value = strings.TrimRight(value, " ")
		value = strings.TrimSuffix(value, `\`)
	}
	return unescapeMarkdown(value)
}

func (s *state) codeSpanText(node *ast.CodeSpan) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		var value string
		switch typed := child.(type) {
		case *ast.Text:
			value = string(typed.Value(s.source))
		case *ast.String:
			value = string(typed.Value)
		default:
			continue
		}
		if strings.HasSuffix(value, "\n") {
			value = strings.TrimSuffix(value, "\n") + " "
		}
		b.WriteString(value)
	}
	return b.String()
}

// plainText flattens the inline content of node to literal text. Soft breaks
// become spaces and hard breaks become newlines.
func (s *state) plainText(node ast.Node) string {
	var b strings.Builder
	s.writePlainText(&b, node)
	return b.String()
}

func (s *state) writePlainText(b *strings.Builder, node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			b.WriteString(s.textValue(typed))
			if typed.HardLineBreak() {
				b.WriteString("\n")
			} else if typed.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(typed.Value)
		case *ast.CodeSpan:
			b.WriteString(s.codeSpanText(typed))
		case *ast.AutoLink:
			b.Write(typed.Label(s.source))
		case *ast.Image, *ast.RawHTML, *extast.TaskCheckBox:
		default:
			s.writePlainText(b, child)
		}
	}
}

// unescapeMarkdown resolves backslash escapes of the characters that carry
// inline meaning. Any other backslash is kept literally.
func unescapeMarkdown(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) && isEscapable(value[i+1]) {
			b.WriteByte(value[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isEscapable(c byte) bool {
	switch c {
	case '\\', '*', '_', '`', '#':
		return true
	default:
		return false
	}
}

// encodeURL percent-encodes every byte outside the unreserved set
// A-Z a-z 0-9 - . _ ~, including "/", ":", "?", "=" and "&".
func encodeURL(raw string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	default:
		return false
	}
}
