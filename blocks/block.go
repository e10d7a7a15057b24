package blocks

// BlockType is the numeric block kind of the Lark docx block schema.
type BlockType int

const (
	TypeText           BlockType = 2
	TypeHeading1       BlockType = 3
	TypeHeading2       BlockType = 4
	TypeHeading3       BlockType = 5
	TypeBullet         BlockType = 12
	TypeOrdered        BlockType = 13
	TypeCode           BlockType = 14
	TypeTodo           BlockType = 17
	TypeTable          BlockType = 31
	TypeQuoteContainer BlockType = 34
)

// String returns the payload key used for the block type.
func (t BlockType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeHeading1:
		return "heading1"
	case TypeHeading2:
		return "heading2"
	case TypeHeading3:
		return "heading3"
	case TypeBullet:
		return "bullet"
	case TypeOrdered:
		return "ordered"
	case TypeCode:
		return "code"
	case TypeTodo:
		return "todo"
	case TypeTable:
		return "table"
	case TypeQuoteContainer:
		return "quote_container"
	default:
		return "unknown"
	}
}

// IsContainer reports whether blocks of this type may own child blocks.
func (t BlockType) IsContainer() bool {
	switch t {
	case TypeBullet, TypeOrdered, TypeTodo, TypeQuoteContainer:
		return true
	default:
		return false
	}
}

// Content is the result of one conversion: the IDs directly under the
// document root and a flat table of every emitted block.
type Content struct {
	ChildrenID  []string `json:"children_id"`
	Descendants []Block  `json:"descendants"`
}

// Block is one node of the document. Exactly one payload field is set,
// matching BlockType. Field order is the serialisation order.
type Block struct {
	BlockType      BlockType       `json:"block_type"`
	BlockID        string          `json:"block_id"`
	Text           *TextPayload    `json:"text,omitempty"`
	Heading1       *TextPayload    `json:"heading1,omitempty"`
	Heading2       *TextPayload    `json:"heading2,omitempty"`
	Heading3       *TextPayload    `json:"heading3,omitempty"`
	Bullet         *TextPayload    `json:"bullet,omitempty"`
	Ordered        *TextPayload    `json:"ordered,omitempty"`
	Code           *CodePayload    `json:"code,omitempty"`
	Todo           *TextPayload    `json:"todo,omitempty"`
	Table          *TablePayload   `json:"table,omitempty"`
	QuoteContainer *QuoteContainer `json:"quote_container,omitempty"`
	Children       []string        `json:"children,omitempty"`
}

// TextPayload carries the runs and block style of every text-like block.
type TextPayload struct {
	Elements []TextElement `json:"elements"`
	Style    TextStyle     `json:"style"`
}

// TextStyle is the block-level style of text-like blocks.
type TextStyle struct {
	Align    int    `json:"align"`
	Folded   bool   `json:"folded"`
	Sequence string `json:"sequence,omitempty"`
	Done     *bool  `json:"done,omitempty"`
}

// CodePayload carries one run per source line.
type CodePayload struct {
	Elements []TextElement `json:"elements"`
	Style    CodeStyle     `json:"style"`
}

// CodeStyle holds the resolved language code of a code block.
type CodeStyle struct {
	Language CodeLanguage `json:"language"`
	Wrap     bool         `json:"wrap"`
}

// TablePayload stores plain cell text, header row first.
type TablePayload struct {
	Cells [][]TableCell `json:"cells"`
}

// TableCell is a single table cell.
type TableCell struct {
	Text string `json:"text"`
}

// QuoteContainer has no payload of its own; its content lives in Children.
type QuoteContainer struct{}

// TextElement wraps a text run the way the platform expects it.
type TextElement struct {
	TextRun *TextRun `json:"text_run,omitempty"`
}

// TextRun is a span of inline content with uniform styling.
type TextRun struct {
	Content          string           `json:"content"`
	TextElementStyle TextElementStyle `json:"text_element_style"`
}

// TextElementStyle holds the inline style flags of a run.
type TextElementStyle struct {
	Bold          bool  `json:"bold"`
	Italic        bool  `json:"italic"`
	InlineCode    bool  `json:"inline_code"`
	Strikethrough bool  `json:"strikethrough"`
	Underline     bool  `json:"underline"`
	Link          *Link `json:"link,omitempty"`
}

// Link is the link target of a run. URL is already percent-encoded.
type Link struct {
	URL string `json:"url"`
}

// DefaultTextStyle returns the style every text-like block starts with.
func DefaultTextStyle() TextStyle {
	return TextStyle{Align: 1}
}

// NewTextBlock builds a text-like block of the given type. Types without a
// text payload fall back to a plain text block.
func NewTextBlock(blockType BlockType, elements []TextElement, style TextStyle) Block {
	if elements == nil {
		elements = []TextElement{}
	}
	payload := &TextPayload{
		Elements: elements,
		Style:    style,
	}

	block := Block{BlockType: blockType}
	switch blockType {
	case TypeHeading1:
		block.Heading1 = payload
	case TypeHeading2:
		block.Heading2 = payload
	case TypeHeading3:
		block.Heading3 = payload
	case TypeBullet:
		block.Bullet = payload
	case TypeOrdered:
		block.Ordered = payload
	case TypeTodo:
		block.Todo = payload
	default:
		block.BlockType = TypeText
		block.Text = payload
	}

	return block
}

// NewEmptyParagraph builds the empty paragraph used for spacers and blank lines.
func NewEmptyParagraph() Block {
	return NewTextBlock(TypeText, []TextElement{NewRun("", TextElementStyle{})}, DefaultTextStyle())
}

// NewCodeBlock builds a code block from its lines.
func NewCodeBlock(lines []string, language CodeLanguage) Block {
	elements := make([]TextElement, 0, len(lines))
	for _, line := range lines {
		elements = append(elements, NewRun(line, TextElementStyle{}))
	}

	return Block{
		BlockType: TypeCode,
		Code: &CodePayload{
			Elements: elements,
			Style: CodeStyle{
				Language: language,
			},
		},
	}
}

// NewTableBlock builds a table block from trimmed cell text.
func NewTableBlock(rows [][]string) Block {
	cells := make([][]TableCell, 0, len(rows))
	for _, row := range rows {
		converted := make([]TableCell, 0, len(row))
		for _, text := range row {
			converted = append(converted, TableCell{Text: text})
		}
		cells = append(cells, converted)
	}

	return Block{
		BlockType: TypeTable,
		Table:     &TablePayload{Cells: cells},
	}
}

// NewQuoteBlock builds an empty quote container.
func NewQuoteBlock() Block {
	return Block{
		BlockType:      TypeQuoteContainer,
		QuoteContainer: &QuoteContainer{},
	}
}

// NewRun wraps content and style into a text element.
func NewRun(content string, style TextElementStyle) TextElement {
	return TextElement{
		TextRun: &TextRun{
			Content:          content,
			TextElementStyle: style,
		},
	}
}

// TextPayload returns the text-like payload of the block, if any.
func (b Block) TextPayload() *TextPayload {
	switch {
	case b.Text != nil:
		return b.Text
	case b.Heading1 != nil:
		return b.Heading1
	case b.Heading2 != nil:
		return b.Heading2
	case b.Heading3 != nil:
		return b.Heading3
	case b.Bullet != nil:
		return b.Bullet
	case b.Ordered != nil:
		return b.Ordered
	case b.Todo != nil:
		return b.Todo
	default:
		return nil
	}
}

// PlainText concatenates the content of every run in the block.
func (b Block) PlainText() string {
	var elements []TextElement
	if payload := b.TextPayload(); payload != nil {
		elements = payload.Elements
	} else if b.Code != nil {
		elements = b.Code.Elements
	}

	text := ""
	for _, element := range elements {
		if element.TextRun != nil {
			text += element.TextRun.Content
		}
	}
	return text
}
