package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	xhtml "golang.org/x/net/html"
)

func (s *state) isHTMLTable(node *ast.HTMLBlock) bool {
	raw := strings.ToLower(strings.TrimSpace(s.blockText(node)))
	return strings.HasPrefix(raw, "<table")
}

// convertHTMLBlockNode turns a raw HTML <table> into a table block. The
// first row is the header; the first row with a different cell count ends
// the table, matching markdown tables.
func (s *state) convertHTMLBlockNode(node *ast.HTMLBlock, parentID string) error {
	raw := s.blockText(node)
	if node.HasClosure() {
		raw += string(node.ClosureLine.Value(s.source))
	}

	document, err := xhtml.Parse(strings.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse html table: %v: %w", err, errMalformedNode)
	}

	tableElement := findHTMLElement(document, "table")
	if tableElement == nil {
		return fmt.Errorf("html block has no table element: %w", errMalformedNode)
	}

	rows := collectHTMLTableRows(tableElement)
	if len(rows) == 0 {
		return fmt.Errorf("html table has no rows: %w", errMalformedNode)
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			s.addWarning(
				blocks.WarningDroppedFeature,
				"HTMLBlock",
				fmt.Sprintf("html table truncated after %d data rows at a row with %d cells", len(data), len(row)),
			)
			break
		}
		data = append(data, row)
	}

	return s.emitTable(parentID, header, data)
}

func findHTMLElement(node *xhtml.Node, tag string) *xhtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == xhtml.ElementNode && strings.EqualFold(node.Data, tag) {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findHTMLElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectHTMLTableRows returns the cell text of every row in document order,
// looking through thead, tbody and tfoot sections.
func collectHTMLTableRows(table *xhtml.Node) [][]string {
	rows := make([][]string, 0, 4)

	for child := table.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xhtml.ElementNode {
			continue
		}

		switch strings.ToLower(child.Data) {
		case "thead", "tbody", "tfoot":
			rows = append(rows, collectHTMLTableRows(child)...)
		case "tr":
			if row := collectHTMLTableCells(child); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}

	return rows
}

func collectHTMLTableCells(row *xhtml.Node) []string {
	var cells []string
	for cell := row.FirstChild; cell != nil; cell = cell.NextSibling {
		if cell.Type != xhtml.ElementNode {
			continue
		}
		tag := strings.ToLower(cell.Data)
		if tag != "td" && tag != "th" {
			continue
		}
		cells = append(cells, normalizeHTMLCellText(extractHTMLNodeText(cell)))
	}
	return cells
}

func extractHTMLNodeText(node *xhtml.Node) string {
	var builder strings.Builder

	var walk func(current *xhtml.Node)
	walk = func(current *xhtml.Node) {
		switch current.Type {
		case xhtml.TextNode:
			builder.WriteString(current.Data)
		case xhtml.ElementNode:
			if strings.EqualFold(current.Data, "br") {
				builder.WriteString("\n")
				return
			}
			for child := current.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
			switch strings.ToLower(current.Data) {
			case "p", "div", "li":
				builder.WriteString("\n")
			}
		default:
			for child := current.FirstChild; child != nil; child = child.NextSibling {
				walk(child)
			}
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}

	return builder.String()
}

// normalizeHTMLCellText collapses the lines of a cell into one trimmed line.
func normalizeHTMLCellText(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	lines := strings.Split(value, "\n")

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}
