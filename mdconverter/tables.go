package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// convertTableNode stores the header row followed by every well-formed data
// row. The first data row that is not pipe-delimited or whose cell count
// differs from the header ends the table.
func (s *state) convertTableNode(node *extast.Table, parentID string) error {
	var (
		header []string
		rows   [][]string
	)

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *extast.TableHeader:
			header = s.tableRowCells(typed)
		case *extast.TableRow:
			if header == nil {
				return fmt.Errorf("table row before header: %w", errMalformedNode)
			}
			cells, ok := s.tableRowCells(typed), s.isPipeRow(typed)
			if !ok || len(cells) != len(header) {
				s.addWarning(
					blocks.WarningDroppedFeature,
					"TableRow",
					fmt.Sprintf("table truncated after %d data rows at a malformed row", len(rows)),
				)
				return s.emitTable(parentID, header, rows)
			}
			rows = append(rows, cells)
		}
	}

	if header == nil {
		return fmt.Errorf("table without header row: %w", errMalformedNode)
	}
	return s.emitTable(parentID, header, rows)
}

func (s *state) emitTable(parentID string, header []string, rows [][]string) error {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)
	s.builder.emit(parentID, blocks.NewTableBlock(all))
	return nil
}

// tableRowCells splits the source line of a row into trimmed cell text.
// Rows without source positions fall back to the parsed cells.
func (s *state) tableRowCells(row ast.Node) []string {
	if line, ok := s.rowSourceLine(row); ok {
		return splitTableRow(line)
	}

	cells := []string{}
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, strings.TrimSpace(s.plainText(cell)))
	}
	return cells
}

func (s *state) isPipeRow(row ast.Node) bool {
	line, ok := s.rowSourceLine(row)
	if !ok {
		return true
	}
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "|") && strings.Contains(line[1:], "|")
}

// rowSourceLine finds the full source line a row was parsed from.
func (s *state) rowSourceLine(row ast.Node) (string, bool) {
	offset := -1
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Type() != ast.TypeBlock || cell.Lines().Len() == 0 {
			continue
		}
		offset = cell.Lines().At(0).Start
		break
	}
	if offset < 0 || offset > len(s.source) {
		return "", false
	}

	start := offset
	for start > 0 && s.source[start-1] != '\n' {
		start--
	}
	// Skip quote markers and indentation of enclosing containers.
	for start < offset && strings.IndexByte(" \t>", s.source[start]) >= 0 {
		start++
	}
	stop := offset
	for stop < len(s.source) && s.source[stop] != '\n' {
		stop++
	}
	return strings.TrimRight(string(s.source[start:stop]), "\r"), true
}

// splitTableRow strips the outer pipes and splits on unescaped pipes.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = strings.TrimSuffix(line, "|")
	}

	cells := []string{}
	var cell strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '\\' && i+1 < len(line) && line[i+1] == '|' {
			cell.WriteByte('|')
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
			continue
		}
		cell.WriteByte(c)
	}
	return append(cells, strings.TrimSpace(cell.String()))
}
