package codec

import (
	"html"
	"strings"

	"github.com/dshills/inkstorm/internal/editor/block"
	"github.com/dshills/inkstorm/internal/editor/document"
)

// PlainText concatenates all cell text with no separators. Block
// boundaries produce no whitespace unless inherent in the text; this is
// the documented contract, not an oversight to fix.
func PlainText(d document.Document) string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// HTML wraps each block in a tag named after its type and each cell in
// a generic inline wrapper, concatenated with no inter-block
// whitespace. Table rows emit their strings as inline wrappers too;
// code blocks emit their escaped source as the tag body.
func HTML(d document.Document) string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		tag := string(b.Type)
		sb.WriteString("<")
		sb.WriteString(tag)
		sb.WriteString(">")
		switch b.Type {
		case block.TypeCode:
			sb.WriteString(html.EscapeString(b.Code.Content))
		case block.TypeTable:
			writeRowSpans(&sb, b.Table.HeaderRows)
			writeRowSpans(&sb, b.Table.Rows)
		default:
			for _, c := range b.Cells {
				sb.WriteString("<span>")
				sb.WriteString(html.EscapeString(c.Text))
				sb.WriteString("</span>")
			}
		}
		sb.WriteString("</")
		sb.WriteString(tag)
		sb.WriteString(">")
	}
	return sb.String()
}

func writeRowSpans(sb *strings.Builder, rows [][]string) {
	for _, row := range rows {
		for _, s := range row {
			sb.WriteString("<span>")
			sb.WriteString(html.EscapeString(s))
			sb.WriteString("</span>")
		}
	}
}
