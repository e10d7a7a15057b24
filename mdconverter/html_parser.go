package mdconverter

import (
	"fmt"
	"io"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	xhtml "golang.org/x/net/html"
)

// htmlInlineMarks maps inline formatting tags to the mark they toggle.
var htmlInlineMarks = map[string]markType{
	"b":      markBold,
	"strong": markBold,
	"i":      markItalic,
	"em":     markItalic,
	"s":      markStrike,
	"del":    markStrike,
	"strike": markStrike,
	"code":   markCode,
	"u":      markUnderline,
	"ins":    markUnderline,
}

// convertRawHTML handles one inline HTML tag. Formatting tags open or close
// a mark for the text that follows them, <br> becomes a line break and
// every other tag is skipped.
func (s *state) convertRawHTML(node *ast.RawHTML, stack *markStack) []inlineRun {
	var raw strings.Builder
	segments := node.Segments
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		raw.Write(segment.Value(s.source))
	}

	var content []inlineRun
	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw.String()))
	for {
		tokenType := tokenizer.Next()
		if tokenType == xhtml.ErrorToken {
			if err := tokenizer.Err(); err != nil && err != io.EOF {
				s.addWarning(blocks.WarningMalformedNode, "RawHTML", fmt.Sprintf("unreadable inline HTML: %v", err))
			}
			return content
		}

		name, _ := tokenizer.TagName()
		tag := strings.ToLower(string(name))

		switch tokenType {
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			if tag == "br" {
				content = append(content, lineBreakRun())
				continue
			}
			if kind, ok := htmlInlineMarks[tag]; ok && tokenType == xhtml.StartTagToken {
				stack.push(mark{kind: kind})
				continue
			}
			s.warnSkippedHTML(tag)
		case xhtml.EndTagToken:
			if kind, ok := htmlInlineMarks[tag]; ok {
				stack.popByType(kind)
				continue
			}
			if tag != "br" {
				s.warnSkippedHTML(tag)
			}
		}
	}
}

func (s *state) warnSkippedHTML(tag string) {
	s.addWarning(
		blocks.WarningDroppedFeature,
		"RawHTML",
		fmt.Sprintf("inline HTML <%s> is skipped", tag),
	)
}
