package codec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/inkstorm/internal/editor/block"
	"github.com/dshills/inkstorm/internal/editor/cell"
	"github.com/dshills/inkstorm/internal/editor/document"
	"github.com/dshills/inkstorm/internal/editor/ident"
	"github.com/dshills/inkstorm/internal/editor/selection"
)

func TestSerializeShape(t *testing.T) {
	gen := ident.Sequential("d")
	d := document.New(gen)
	d.Blocks = append(d.Blocks,
		block.NewTable(gen, [][]string{{"h1", "h2"}}, [][]string{{"a", "b"}}),
		block.NewCode(gen, "x := 1", "go"),
	)

	raw, err := Serialize(d)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	root := gjson.ParseBytes(raw)
	if root.Get("id").String() != d.ID {
		t.Errorf("id = %q, want %q", root.Get("id").String(), d.ID)
	}
	blocks := root.Get("blocks").Array()
	if len(blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(blocks))
	}
	if blocks[0].Get("type").String() != "heading-1" {
		t.Errorf("block 0 type = %q", blocks[0].Get("type").String())
	}
	if !blocks[0].Get("content").IsArray() {
		t.Error("text block must serialize a content array")
	}
	cell0 := blocks[0].Get("content").Array()[0]
	if !cell0.Get("modifiers").Exists() || !cell0.Get("modifiers").IsArray() {
		t.Error("cell modifiers must always be present as an array")
	}
	if blocks[2].Get("header_rows").Raw != `[["h1","h2"]]` {
		t.Errorf("header_rows = %s", blocks[2].Get("header_rows").Raw)
	}
	if blocks[3].Get("content").String() != "x := 1" || blocks[3].Get("language").String() != "go" {
		t.Errorf("code block = %s", blocks[3].Raw)
	}
}

func TestRoundTrip(t *testing.T) {
	gen := ident.Sequential("d")
	d := document.New(gen)

	// Exercise the model a little so the document is not trivial.
	var err error
	d, err = d.UpdateCellText(0, d.Blocks[0].Cells[0].ID, "# Title")
	if err != nil {
		t.Fatalf("UpdateCellText: %v", err)
	}
	d, err = d.ResolveTransformAt(0)
	if err != nil {
		t.Fatalf("ResolveTransformAt: %v", err)
	}
	d, err = d.SplitBlock(gen, 0, selection.Caret(d.Blocks[0].Cells[0].ID, 2))
	if err != nil {
		t.Fatalf("SplitBlock: %v", err)
	}
	d.Blocks = append(d.Blocks,
		block.NewTable(gen, [][]string{{"h"}}, [][]string{{"a", "b"}, {"c", "d"}}),
		block.NewCode(gen, "fmt.Println(42)", "go"),
	)

	raw, err := Serialize(d)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	back, err := Normalize(raw, gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if back.ID != d.ID {
		t.Errorf("id = %q, want %q", back.ID, d.ID)
	}
	if !reflect.DeepEqual(back.Blocks, d.Blocks) {
		t.Errorf("blocks differ after round trip:\n got %+v\nwant %+v", back.Blocks, d.Blocks)
	}
}

func TestRoundTripPreservesModifiers(t *testing.T) {
	gen := ident.Sequential("d")
	d := document.New(gen)
	d.Blocks[0].Cells[0].Modifiers = []cell.Modifier{{Type: "bold", Start: 0, End: 3}}

	raw, err := Serialize(d)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	back, err := Normalize(raw, gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !reflect.DeepEqual(back.Blocks, d.Blocks) {
		t.Errorf("blocks differ:\n got %+v\nwant %+v", back.Blocks, d.Blocks)
	}
}

func TestNormalizeAssignsMissingID(t *testing.T) {
	gen := ident.Sequential("g")
	raw := []byte(`{"blocks":[{"id":"b1","type":"paragraph","content":[{"id":"c1","modifiers":[],"text":"hi"}]}]}`)
	d, err := Normalize(raw, gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if d.ID != "g-1" {
		t.Errorf("id = %q, want g-1", d.ID)
	}
}

func TestNormalizeListBlockTagsCells(t *testing.T) {
	gen := ident.Sequential("g")
	raw := []byte(`{"id":"d","blocks":[{"id":"b1","type":"unordered-list-item","content":[{"id":"c1","modifiers":[],"text":"item"}]}]}`)
	d, err := Normalize(raw, gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if d.Blocks[0].Cells[0].Kind != cell.KindListItem {
		t.Errorf("kind = %q, want list-item", d.Blocks[0].Cells[0].Kind)
	}
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	gen := ident.Sequential("g")

	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{"id":`},
		{"missing blocks", `{"id":"d"}`},
		{"unknown type", `{"id":"d","blocks":[{"id":"b","type":"mystery","content":[]}]}`},
		{"missing type", `{"id":"d","blocks":[{"id":"b","content":[]}]}`},
		{"missing block id", `{"id":"d","blocks":[{"type":"paragraph","content":[{"id":"c","modifiers":[],"text":""}]}]}`},
		{"missing content", `{"id":"d","blocks":[{"id":"b","type":"paragraph"}]}`},
		{"empty cells", `{"id":"d","blocks":[{"id":"b","type":"paragraph","content":[]}]}`},
		{"cell missing text", `{"id":"d","blocks":[{"id":"b","type":"paragraph","content":[{"id":"c","modifiers":[]}]}]}`},
		{"code missing language", `{"id":"d","blocks":[{"id":"b","type":"code","content":"x"}]}`},
		{"table missing rows", `{"id":"d","blocks":[{"id":"b","type":"table","header_rows":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize([]byte(tt.raw), gen); !errors.Is(err, ErrMalformedDocument) {
				t.Errorf("err = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestNormalizeTableAndCode(t *testing.T) {
	gen := ident.Sequential("g")
	raw := []byte(`{"id":"d","blocks":[
		{"id":"t1","type":"table","header_rows":[["h1","h2"]],"rows":[["a","b"]]},
		{"id":"c1","type":"code","content":"print(1)","language":"python"}
	]}`)
	d, err := Normalize(raw, gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	tbl := d.Blocks[0]
	if tbl.Table == nil || !reflect.DeepEqual(tbl.Table.HeaderRows, [][]string{{"h1", "h2"}}) {
		t.Errorf("table = %+v", tbl.Table)
	}
	code := d.Blocks[1]
	if code.Code == nil || code.Code.Content != "print(1)" || code.Code.Language != "python" {
		t.Errorf("code = %+v", code.Code)
	}
}

func TestNormalizeEmptyBlocks(t *testing.T) {
	gen := ident.Sequential("g")
	d, err := Normalize([]byte(`{"id":"d","blocks":[]}`), gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(d.Blocks) != 0 {
		t.Errorf("blocks = %d, want 0", len(d.Blocks))
	}
}

func TestSerializeStableUnderReserialize(t *testing.T) {
	gen := ident.Sequential("d")
	d := document.New(gen)
	raw1, err := Serialize(d)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	back, err := Normalize(raw1, gen)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	raw2, err := Serialize(back)
	if err != nil {
		t.Fatalf("second Serialize: %v", err)
	}
	if string(raw1) != string(raw2) {
		t.Errorf("serialization not stable:\n%s\n%s", raw1, raw2)
	}
}
