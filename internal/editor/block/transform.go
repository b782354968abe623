package block

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// nbsp is the non-breaking space accepted as a prefix terminator. Hosts
// that normalize typed spaces to NBSP still trigger transforms.
const nbsp = " "

type transformRule struct {
	prefix string
	target Type
}

// transformRules is evaluated top to bottom; the first matching prefix
// wins. Matching is case-sensitive and literal, not a parser.
var transformRules = []transformRule{
	{"# ", TypeHeading1},
	{"#" + nbsp, TypeHeading1},
	{"## ", TypeHeading2},
	{"##" + nbsp, TypeHeading2},
	{"### ", TypeHeading3},
	{"###" + nbsp, TypeHeading3},
	{"```", TypePreformatted},
	{"* ", TypeUnorderedListItem},
	{"*" + nbsp, TypeUnorderedListItem},
}

// ResolveTransform examines the first cell's text for a markdown-like
// prefix and reclassifies the block on a match, stripping the prefix.
// The list-item transform re-tags every cell so multi-cell paragraphs
// become multi-line list items. No match leaves the block unchanged.
//
// The function is pure and idempotent: once the prefix is stripped,
// re-applying it is a no-op.
func (b Block) ResolveTransform() (Block, error) {
	if !b.IsTextual() {
		return Block{}, fmt.Errorf("%w: transform on %s block", ErrUnsupportedOperation, b.Type)
	}
	first := b.Cells[0]
	for _, rule := range transformRules {
		if !strings.HasPrefix(first.Text, rule.prefix) {
			continue
		}
		next := b.Copy()
		next.Type = rule.target
		next.Cells[0] = next.Cells[0].Trim(utf8.RuneCountInString(rule.prefix))
		kind := CellKindFor(rule.target)
		for i := range next.Cells {
			next.Cells[i] = next.Cells[i].WithKind(kind)
		}
		return next, nil
	}
	return b.Copy(), nil
}
