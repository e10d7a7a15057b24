package mdconverter

import "github.com/rgonek/lark-block-converter/blocks"

type markType int

const (
	markBold markType = iota
	markItalic
	markStrike
	markCode
	markLink
	// markUnderline only comes from inline HTML.
	markUnderline
)

type mark struct {
	kind markType
	url  string
}

// markStack holds the inline markers that enclose the node being converted.
type markStack struct {
	items []mark
}

func newMarkStack() *markStack {
	return &markStack{}
}

func (s *markStack) push(m mark) {
	s.items = append(s.items, m)
}

func (s *markStack) popByType(kind markType) bool {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].kind != kind {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}

	return false
}

// current folds the stack into one run style. The innermost link wins.
func (s *markStack) current() blocks.TextElementStyle {
	return s.with()
}

func (s *markStack) with(extra ...mark) blocks.TextElementStyle {
	var style blocks.TextElementStyle
	for _, m := range append(append([]mark(nil), s.items...), extra...) {
		switch m.kind {
		case markBold:
			style.Bold = true
		case markItalic:
			style.Italic = true
		case markStrike:
			style.Strikethrough = true
		case markCode:
			style.InlineCode = true
		case markUnderline:
			style.Underline = true
		case markLink:
			style.Link = &blocks.Link{URL: m.url}
		}
	}
	return style
}

// inlineRun is a run under construction. Line breaks are kept apart so that
// they never merge with neighbouring text.
type inlineRun struct {
	content   string
	style     blocks.TextElementStyle
	lineBreak bool
}

func newRun(content string, style blocks.TextElementStyle) inlineRun {
	return inlineRun{content: content, style: style}
}

func lineBreakRun() inlineRun {
	return inlineRun{content: "\n", lineBreak: true}
}

func stylesEqual(left, right blocks.TextElementStyle) bool {
	if left.Bold != right.Bold ||
		left.Italic != right.Italic ||
		left.InlineCode != right.InlineCode ||
		left.Strikethrough != right.Strikethrough ||
		left.Underline != right.Underline {
		return false
	}
	if left.Link == nil || right.Link == nil {
		return left.Link == nil && right.Link == nil
	}
	return left.Link.URL == right.Link.URL
}

func appendRun(content []inlineRun, next inlineRun) []inlineRun {
	if next.content == "" {
		return content
	}

	if len(content) == 0 {
		return append(content, next)
	}

	last := &content[len(content)-1]
	if !last.lineBreak && !next.lineBreak && stylesEqual(last.style, next.style) {
		last.content += next.content
		return content
	}

	return append(content, next)
}

// runElements converts finished runs to text elements. A block without
// runs still carries one empty run.
func runElements(runs []inlineRun) []blocks.TextElement {
	if len(runs) == 0 {
		return []blocks.TextElement{blocks.NewRun("", blocks.TextElementStyle{})}
	}

	elements := make([]blocks.TextElement, 0, len(runs))
	for _, run := range runs {
		elements = append(elements, blocks.NewRun(run.content, run.style))
	}
	return elements
}
