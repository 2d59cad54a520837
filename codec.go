package huffcrunch

import (
	"os"
	"unicode/utf8"
)

// Result is the outcome of a successful compression.
type Result struct {
	// Data is the compressed stream.
	Data []byte

	// Table is the code table needed to decompress Data.
	Table Table

	// SymbolCount is the number of input symbols.
	SymbolCount int

	// CompressedSize is len(Data).
	CompressedSize int
}

// Ratio returns CompressedSize divided by SymbolCount.  Values above 1 mean
// the output is larger than the input.
func (res Result) Ratio() float64 {
	if res.SymbolCount == 0 {
		return 0
	}
	return float64(res.CompressedSize) / float64(res.SymbolCount)
}

// Compress runs the whole pipeline on symbols: count, build the tree, assign
// codes, encode.  Every call builds its own tables, so concurrent calls do
// not interact.
func Compress(symbols []Symbol) (Result, error) {
	if len(symbols) == 0 {
		return Result{}, &EmptyInputError{Op: "compress"}
	}
	for index, symbol := range symbols {
		if symbol < 0 {
			return Result{}, &UnknownSymbolError{Symbol: symbol, Index: index}
		}
	}

	ft := CountFrequencies(symbols)

	root, err := BuildTree(ft)
	if err != nil {
		return Result{}, err
	}

	t, err := NewTable(root)
	if err != nil {
		return Result{}, err
	}

	data, err := Encode(symbols, t)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:           data,
		Table:          t,
		SymbolCount:    len(symbols),
		CompressedSize: len(data),
	}, nil
}

// CompressString compresses text, one Symbol per character.  Text that is not
// valid UTF-8 is rejected with an InvalidTextError; use CompressBytes for
// binary data.
func CompressString(str string) (Result, error) {
	if offset := invalidUTF8Offset(str); offset >= 0 {
		return Result{}, &InvalidTextError{Offset: offset}
	}
	return Compress(SymbolsFromString(str))
}

func invalidUTF8Offset(str string) int {
	if utf8.ValidString(str) {
		return -1
	}
	for offset := 0; offset < len(str); {
		ch, size := utf8.DecodeRuneInString(str[offset:])
		if ch == utf8.RuneError && size == 1 {
			return offset
		}
		offset += size
	}
	return -1
}

// CompressBytes compresses data, one Symbol per byte.
func CompressBytes(data []byte) (Result, error) {
	return Compress(SymbolsFromBytes(data))
}

// CompressFile reads the named file as UTF-8 text and compresses it.  Failure
// to read the file, or a file that is not valid UTF-8, is reported as an
// IOError.
func CompressFile(path string) (Result, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	if !utf8.Valid(raw) {
		return Result{}, &IOError{Op: "decode", Path: path, Err: ErrInvalidUTF8}
	}
	return CompressString(string(raw))
}

// Decompress decodes data with t.  It returns the symbols and their count.
func Decompress(data []byte, t Table) ([]Symbol, int, error) {
	symbols, err := Decode(data, t)
	if err != nil {
		return nil, 0, err
	}
	return symbols, len(symbols), nil
}

// DecompressCount is Decompress for callers that know how many symbols the
// stream holds, such as the SymbolCount of the Result that produced it.  A
// different count is a MalformedStreamError; this catches streams that lost
// whole bytes from the end but still decode cleanly.
func DecompressCount(data []byte, t Table, expected int) ([]Symbol, error) {
	symbols, count, err := Decompress(data, t)
	if err != nil {
		return nil, err
	}
	if count != expected {
		return nil, malformed(-1, "decoded %d symbols, expected %d", count, expected)
	}
	return symbols, nil
}

// DecompressFile reads the named file and decodes it with t.
func DecompressFile(path string, t Table) ([]Symbol, int, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	return Decompress(raw, t)
}

// ReadFile reads a whole file, reporting failures as IOError.
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return raw, nil
}

// WriteFile writes data to the named file, reporting failures as IOError.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o666); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
