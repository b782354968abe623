// Package codec implements the canonical JSON boundary format for
// documents, plus the plain-text and HTML projections. External
// collaborators (rendering, persistence) consume this package
// exclusively; they never touch document internals.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/inkstorm/internal/editor/block"
	"github.com/dshills/inkstorm/internal/editor/cell"
	"github.com/dshills/inkstorm/internal/editor/document"
	"github.com/dshills/inkstorm/internal/editor/ident"
)

// ErrMalformedDocument indicates normalize input that is not valid
// JSON, has an unrecognized block type, or is missing required fields.
// It is surfaced to the caller, never recovered silently.
var ErrMalformedDocument = errors.New("malformed document")

type documentJSON struct {
	ID     string            `json:"id"`
	Blocks []json.RawMessage `json:"blocks"`
}

type textBlockJSON struct {
	ID      string     `json:"id"`
	Type    string     `json:"type"`
	Content []cellJSON `json:"content"`
}

type tableBlockJSON struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	HeaderRows [][]string `json:"header_rows"`
	Rows       [][]string `json:"rows"`
}

type codeBlockJSON struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	Language string `json:"language"`
}

type cellJSON struct {
	ID        string         `json:"id"`
	Modifiers []modifierJSON `json:"modifiers"`
	Text      string         `json:"text"`
}

type modifierJSON struct {
	Type  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Serialize produces the canonical JSON shape, always including the
// document id.
func Serialize(d document.Document) ([]byte, error) {
	out := documentJSON{ID: d.ID, Blocks: make([]json.RawMessage, 0, len(d.Blocks))}
	for _, b := range d.Blocks {
		raw, err := serializeBlock(b)
		if err != nil {
			return nil, err
		}
		out.Blocks = append(out.Blocks, raw)
	}
	return json.Marshal(out)
}

func serializeBlock(b block.Block) (json.RawMessage, error) {
	switch b.Type {
	case block.TypeTable:
		return json.Marshal(tableBlockJSON{
			ID:         b.ID,
			Type:       string(b.Type),
			HeaderRows: emptyRows(b.Table.HeaderRows),
			Rows:       emptyRows(b.Table.Rows),
		})
	case block.TypeCode:
		return json.Marshal(codeBlockJSON{
			ID:       b.ID,
			Type:     string(b.Type),
			Content:  b.Code.Content,
			Language: b.Code.Language,
		})
	default:
		tb := textBlockJSON{ID: b.ID, Type: string(b.Type), Content: make([]cellJSON, 0, len(b.Cells))}
		for _, c := range b.Cells {
			cj := cellJSON{ID: c.ID, Text: c.Text, Modifiers: make([]modifierJSON, 0, len(c.Modifiers))}
			for _, m := range c.Modifiers {
				cj.Modifiers = append(cj.Modifiers, modifierJSON{Type: m.Type, Start: m.Start, End: m.End})
			}
			tb.Content = append(tb.Content, cj)
		}
		return json.Marshal(tb)
	}
}

func emptyRows(rows [][]string) [][]string {
	if rows == nil {
		return [][]string{}
	}
	return rows
}

// Normalize parses the canonical JSON shape into a document. A missing
// top-level id is tolerated and assigned fresh; any block with an
// unrecognized type or an absent required field is rejected with
// ErrMalformedDocument.
func Normalize(raw []byte, gen ident.Generator) (document.Document, error) {
	if !gjson.ValidBytes(raw) {
		return document.Document{}, fmt.Errorf("%w: invalid JSON", ErrMalformedDocument)
	}

	if id := gjson.GetBytes(raw, "id"); !id.Exists() || id.String() == "" {
		patched, err := sjson.SetBytes(raw, "id", gen.NewID())
		if err != nil {
			return document.Document{}, fmt.Errorf("%w: assigning document id: %v", ErrMalformedDocument, err)
		}
		raw = patched
	}

	root := gjson.ParseBytes(raw)
	blocksField := root.Get("blocks")
	if !blocksField.Exists() || !blocksField.IsArray() {
		return document.Document{}, fmt.Errorf("%w: missing blocks array", ErrMalformedDocument)
	}

	rawBlocks := blocksField.Array()
	blocks := make([]block.Block, 0, len(rawBlocks))
	for i, bj := range rawBlocks {
		b, err := normalizeBlock(bj)
		if err != nil {
			return document.Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}

	return document.Document{ID: root.Get("id").String(), Blocks: blocks}, nil
}

func normalizeBlock(bj gjson.Result) (block.Block, error) {
	typField := bj.Get("type")
	if !typField.Exists() {
		return block.Block{}, fmt.Errorf("%w: missing type", ErrMalformedDocument)
	}
	typ := block.Type(typField.String())
	if !typ.Valid() {
		return block.Block{}, fmt.Errorf("%w: unknown block type %q", ErrMalformedDocument, typField.String())
	}
	idField := bj.Get("id")
	if !idField.Exists() || idField.String() == "" {
		return block.Block{}, fmt.Errorf("%w: missing block id", ErrMalformedDocument)
	}

	switch typ {
	case block.TypeTable:
		headerRows, err := normalizeRows(bj.Get("header_rows"), "header_rows")
		if err != nil {
			return block.Block{}, err
		}
		rows, err := normalizeRows(bj.Get("rows"), "rows")
		if err != nil {
			return block.Block{}, err
		}
		return block.Block{
			ID:    idField.String(),
			Type:  typ,
			Table: &block.TablePayload{HeaderRows: headerRows, Rows: rows},
		}, nil

	case block.TypeCode:
		content := bj.Get("content")
		language := bj.Get("language")
		if !content.Exists() || !language.Exists() {
			return block.Block{}, fmt.Errorf("%w: code block requires content and language", ErrMalformedDocument)
		}
		return block.Block{
			ID:   idField.String(),
			Type: typ,
			Code: &block.CodePayload{Content: content.String(), Language: language.String()},
		}, nil

	default:
		content := bj.Get("content")
		if !content.Exists() || !content.IsArray() {
			return block.Block{}, fmt.Errorf("%w: missing content array", ErrMalformedDocument)
		}
		rawCells := content.Array()
		if len(rawCells) == 0 {
			return block.Block{}, fmt.Errorf("%w: empty cell sequence", ErrMalformedDocument)
		}
		kind := block.CellKindFor(typ)
		cells := make([]cell.Cell, 0, len(rawCells))
		for _, cj := range rawCells {
			c, err := normalizeCell(cj, kind)
			if err != nil {
				return block.Block{}, err
			}
			cells = append(cells, c)
		}
		return block.Block{ID: idField.String(), Type: typ, Cells: cells}, nil
	}
}

func normalizeCell(cj gjson.Result, kind cell.Kind) (cell.Cell, error) {
	id := cj.Get("id")
	text := cj.Get("text")
	if !id.Exists() || id.String() == "" || !text.Exists() {
		return cell.Cell{}, fmt.Errorf("%w: cell requires id and text", ErrMalformedDocument)
	}
	c := cell.Cell{ID: id.String(), Kind: kind, Text: text.String()}
	for _, mj := range cj.Get("modifiers").Array() {
		c.Modifiers = append(c.Modifiers, cell.Modifier{
			Type:  mj.Get("type").String(),
			Start: int(mj.Get("start").Int()),
			End:   int(mj.Get("end").Int()),
		})
	}
	return c, nil
}

func normalizeRows(field gjson.Result, name string) ([][]string, error) {
	if !field.Exists() || !field.IsArray() {
		return nil, fmt.Errorf("%w: table block requires %s", ErrMalformedDocument, name)
	}
	outer := field.Array()
	if len(outer) == 0 {
		return nil, nil
	}
	rows := make([][]string, 0, len(outer))
	for _, rj := range outer {
		if !rj.IsArray() {
			return nil, fmt.Errorf("%w: %s rows must be string arrays", ErrMalformedDocument, name)
		}
		inner := rj.Array()
		row := make([]string, 0, len(inner))
		for _, sj := range inner {
			row = append(row, sj.String())
		}
		rows = append(rows, row)
	}
	return rows, nil
}
