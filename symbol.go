package huffcrunch

import (
	"unicode/utf8"
)

// Symbol represents a symbol in the input alphabet: a character of text, or a
// byte value.  Negative symbols are not valid.
type Symbol int32

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// SymbolsFromString splits text into one Symbol per character.
func SymbolsFromString(str string) []Symbol {
	out := make([]Symbol, 0, utf8.RuneCountInString(str))
	for _, ch := range str {
		out = append(out, Symbol(ch))
	}
	return out
}

// SymbolsFromBytes returns one Symbol per byte.
func SymbolsFromBytes(data []byte) []Symbol {
	out := make([]Symbol, len(data))
	for index, b := range data {
		out[index] = Symbol(b)
	}
	return out
}

// StringFromSymbols is the inverse of SymbolsFromString.
func StringFromSymbols(symbols []Symbol) string {
	buf := make([]byte, 0, len(symbols))
	for _, symbol := range symbols {
		buf = utf8.AppendRune(buf, rune(symbol))
	}
	return string(buf)
}

// BytesFromSymbols is the inverse of SymbolsFromBytes.  Symbols outside the
// range 0..255 are truncated to their low 8 bits.
func BytesFromSymbols(symbols []Symbol) []byte {
	out := make([]byte, len(symbols))
	for index, symbol := range symbols {
		out[index] = byte(symbol)
	}
	return out
}
