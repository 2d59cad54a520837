package huffcrunch

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"
)

// CodeEntry pairs a Symbol with its Code.
type CodeEntry struct {
	Symbol Symbol
	Code   Code
}

// Table is a prefix code: a Code for each Symbol, and the inverse mapping used
// for decoding.  A Table is immutable once built and may be shared freely
// between goroutines.
type Table struct {
	codes   map[Symbol]Code
	order   []Symbol
	table   map[Code]decoderData
	minSize byte
	maxSize byte
}

// NewTable assigns a Code to every leaf of the tree rooted at root: "0" for
// each step to a left child and "1" for each step to a right child.  A tree
// consisting of a single leaf is given the one-bit code "0".
//
// The walk uses an explicit stack, so heavily skewed trees are fine up to
// the MaxCodeSize limit.
//
func NewTable(root *Node) (Table, error) {
	if root == nil {
		return Table{}, &EmptyInputError{Op: "build table"}
	}

	if root.IsLeaf() {
		return NewTableFromCodes([]CodeEntry{{root.symbol, MakeCode(1, 0)}})
	}

	type stackItem struct {
		node *Node
		hc   Code
	}

	var entries []CodeEntry
	stack := make([]stackItem, 0, MaxCodeSize)
	stack = append(stack, stackItem{root, Code{}})
	for len(stack) != 0 {
		last := len(stack) - 1
		top := stack[last]
		stack = stack[:last]

		if top.node.IsLeaf() {
			entries = append(entries, CodeEntry{top.node.symbol, top.hc})
			continue
		}

		if top.hc.Size >= MaxCodeSize {
			return Table{}, malformed(-1, "code tree is deeper than %d bits", MaxCodeSize)
		}

		// Push right first, so that left subtrees are visited first.
		stack = append(stack,
			stackItem{top.node.right, top.hc.Append(true)},
			stackItem{top.node.left, top.hc.Append(false)})
	}

	return NewTableFromCodes(entries)
}

// NewTableFromCodes builds a Table from explicit (Symbol, Code) pairs, such as
// those returned by Entries.  The codes must be non-empty, distinct, and
// prefix-free, and each Symbol may appear only once.
func NewTableFromCodes(entries []CodeEntry) (Table, error) {
	if len(entries) == 0 {
		return Table{}, &EmptyInputError{Op: "build table"}
	}

	numEntries := uint32(len(entries))

	// len(table) is approximately n×log2(n) when filled.
	numTableSlots := numEntries * log2uint32(numEntries)

	t := Table{
		codes:   make(map[Symbol]Code, numEntries),
		order:   make([]Symbol, 0, numEntries),
		table:   make(map[Code]decoderData, numTableSlots),
		minSize: entries[0].Code.Size,
		maxSize: entries[0].Code.Size,
	}

	for _, entry := range entries {
		symbol, hc := entry.Symbol, entry.Code
		if symbol < 0 {
			return Table{}, malformed(-1, "invalid symbol %d", symbol)
		}
		if hc.Size == 0 || hc.Size > MaxCodeSize {
			return Table{}, malformed(-1, "symbol %d has invalid code size %d", symbol, hc.Size)
		}
		if hc.Size < MaxCodeSize && hc.Bits>>hc.Size != 0 {
			return Table{}, malformed(-1, "symbol %d has stray bits beyond its code size", symbol)
		}
		if _, found := t.codes[symbol]; found {
			return Table{}, malformed(-1, "symbol %d appears more than once", symbol)
		}
		if err := fillTable(t.table, symbol, hc); err != nil {
			return Table{}, err
		}

		t.codes[symbol] = hc
		t.order = append(t.order, symbol)
		if t.minSize > hc.Size {
			t.minSize = hc.Size
		}
		if t.maxSize < hc.Size {
			t.maxSize = hc.Size
		}
	}

	return t, nil
}

// Encode returns the Code for symbol.  The second result is false if the
// Table has no code for symbol.
func (t Table) Encode(symbol Symbol) (Code, bool) {
	hc, found := t.codes[symbol]
	return hc, found
}

// Decode looks up a (possibly partial) Code.
//
// If hc is a complete code, symbol >= 0 and minSize == maxSize == hc.Size.
//
// If hc is a proper prefix of one or more codes, symbol == InvalidSymbol and
// the codes it can still grow into are between minSize and maxSize bits long.
//
// If hc is not a prefix of any code, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (t Table) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := t.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// Len returns the number of symbols in the Table.
func (t Table) Len() int {
	return len(t.order)
}

// MinSize is the bit length of the shortest code.
func (t Table) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t Table) MaxSize() byte {
	return t.maxSize
}

// Entries returns the (Symbol, Code) pairs in tree order, left to right.
func (t Table) Entries() []CodeEntry {
	out := make([]CodeEntry, len(t.order))
	for index, symbol := range t.order {
		out[index] = CodeEntry{symbol, t.codes[symbol]}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the Table to the given
// writer.
func (t Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for _, symbol := range t.order {
		fmt.Fprintf(&buf, "\tEncode(%q) = %s\n", rune(symbol), t.codes[symbol])
	}
	keys := make(byCode, 0, len(t.table))
	for hc := range t.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := t.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (t Table) DebugString() string {
	var buf bytes.Buffer
	_, _ = t.Dump(&buf)
	return buf.String()
}

// String returns a short human-readable description of the Table.
func (t Table) String() string {
	return fmt.Sprintf("(Huffman table with %d symbols, with coded lengths of %d .. %d bits)", len(t.order), t.minSize, t.maxSize)
}

type jsonEntry struct {
	Symbol Symbol `json:"symbol"`
	Code   string `json:"code"`
}

// MarshalJSON encodes the Table as a list of {"symbol", "code"} objects.
func (t Table) MarshalJSON() ([]byte, error) {
	list := make([]jsonEntry, len(t.order))
	for index, symbol := range t.order {
		list[index] = jsonEntry{symbol, t.codes[symbol].Binary()}
	}
	return json.Marshal(list)
}

// UnmarshalJSON decodes a Table produced by MarshalJSON, validating that the
// codes still form a prefix code.
func (t *Table) UnmarshalJSON(raw []byte) error {
	var list []jsonEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return malformed(-1, "table: %v", err)
	}

	entries := make([]CodeEntry, len(list))
	for index, item := range list {
		hc, err := ParseCode(item.Code)
		if err != nil {
			return malformed(-1, "table: %v", err)
		}
		entries[index] = CodeEntry{item.Symbol, hc}
	}

	tmp, err := NewTableFromCodes(entries)
	if err != nil {
		return err
	}
	*t = tmp
	return nil
}

var (
	_ fmt.Stringer     = Table{}
	_ json.Marshaler   = Table{}
	_ json.Unmarshaler = (*Table)(nil)
)

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

// fillTable records hc as the code for symbol, then walks up through every
// prefix of hc, widening each prefix's (minSize, maxSize) range to cover hc.
// It fails if hc collides with an existing code or prefix.
func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	if old, found := table[hc]; found {
		if old.symbol == InvalidSymbol {
			return malformed(-1, "code %s for symbol %d is a prefix of another code", hc, symbol)
		}
		return malformed(-1, "code %s is assigned to both symbol %d and symbol %d", hc, old.symbol, symbol)
	}

	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// Merge the dd's from hc (dd) and its sibling into ddNew, the
		// new data for their parent.

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[hc.Sibling()]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		hc = hc.Parent()

		// If table[hc] already equals ddNew, we can stop walking up.

		if ddOld, found := table[hc]; found {
			if ddOld.symbol != InvalidSymbol {
				return malformed(-1, "code %s for symbol %d is a prefix of the code for symbol %d", hc, ddOld.symbol, symbol)
			}
			if ddOld == ddNew {
				break
			}
		}

		table[hc] = ddNew
		dd = ddNew
	}

	return nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
