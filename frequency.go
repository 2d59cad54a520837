package huffcrunch

import (
	"bytes"
	"fmt"
	"io"
)

// SymbolCount pairs a Symbol with its number of occurrences.
type SymbolCount struct {
	Symbol Symbol
	Count  uint64
}

// FrequencyTable maps each distinct Symbol of an input to its number of
// occurrences.  Entries are kept in order of first appearance; that order
// is the tie-break used by BuildTree.
//
// The zero value is an empty table ready for use.
type FrequencyTable struct {
	entries []SymbolCount
	index   map[Symbol]int
}

// CountFrequencies scans symbols and returns their FrequencyTable.
func CountFrequencies(symbols []Symbol) FrequencyTable {
	var ft FrequencyTable
	for _, symbol := range symbols {
		ft.Add(symbol, 1)
	}
	return ft
}

// Add increases the count of symbol by n, inserting it if necessary.
func (ft *FrequencyTable) Add(symbol Symbol, n uint64) {
	if ft.index == nil {
		ft.index = make(map[Symbol]int)
	}
	if i, found := ft.index[symbol]; found {
		ft.entries[i].Count = saturatingAdd(ft.entries[i].Count, n)
		return
	}
	ft.index[symbol] = len(ft.entries)
	ft.entries = append(ft.entries, SymbolCount{symbol, n})
}

// Len returns the number of distinct symbols.
func (ft FrequencyTable) Len() int {
	return len(ft.entries)
}

// Count returns the number of occurrences of symbol.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	if i, found := ft.index[symbol]; found {
		return ft.entries[i].Count
	}
	return 0
}

// Total returns the sum of all counts.
func (ft FrequencyTable) Total() uint64 {
	var total uint64
	for _, entry := range ft.entries {
		total = saturatingAdd(total, entry.Count)
	}
	return total
}

// Entries returns a copy of the entries, in order of first appearance.
func (ft FrequencyTable) Entries() []SymbolCount {
	out := make([]SymbolCount, len(ft.entries))
	copy(out, ft.entries)
	return out
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, entry := range ft.entries {
		fmt.Fprintf(&buf, "\t%q: %d\n", rune(entry.Symbol), entry.Count)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
