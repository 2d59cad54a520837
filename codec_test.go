package huffcrunch

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	inputs := []string{
		"a",
		"aaaa",
		"aaabbc",
		"xy",
		"the quick brown fox jumps over the lazy dog",
		"héllo wörld ✓ ünïcödé",
		strings.Repeat("abracadabra ", 100),
		"\x00\x00\x01",
	}
	for _, input := range inputs {
		res, err := CompressString(input)
		require.NoError(t, err, "input %q", input)
		require.Equal(t, len(res.Data), res.CompressedSize)
		require.Equal(t, len([]rune(input)), res.SymbolCount)

		symbols, count, err := Decompress(res.Data, res.Table)
		require.NoError(t, err, "input %q", input)
		require.Equal(t, res.SymbolCount, count)
		require.Equal(t, input, StringFromSymbols(symbols))
	}
}

func TestCompress_RandomBytes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 25; round++ {
		data := make([]byte, 1+rng.Intn(4096))
		spread := 1 + rng.Intn(256)
		for i := range data {
			data[i] = byte(rng.Intn(spread))
		}

		res, err := CompressBytes(data)
		require.NoError(t, err)

		symbols, _, err := Decompress(res.Data, res.Table)
		require.NoError(t, err)
		require.Equal(t, data, BytesFromSymbols(symbols))
	}
}

func TestCompress_Empty(t *testing.T) {
	_, err := CompressString("")
	var eie *EmptyInputError
	require.ErrorAs(t, err, &eie)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestCompress_Deterministic(t *testing.T) {
	input := "it was the best of times, it was the worst of times"
	first, err := CompressString(input)
	require.NoError(t, err)
	second, err := CompressString(input)
	require.NoError(t, err)

	require.Equal(t, first.Data, second.Data)
	require.Equal(t, first.Table.Entries(), second.Table.Entries())
}

func TestCompress_Expanding(t *testing.T) {
	res, err := CompressString("xy")
	require.NoError(t, err)
	require.Equal(t, 2, res.SymbolCount)
	require.Equal(t, 2, res.CompressedSize)
	require.InDelta(t, 1.0, res.Ratio(), 1e-9)

	res, err = CompressString("z")
	require.NoError(t, err)
	require.Greater(t, res.Ratio(), 1.0)
}

func TestCompress_Concurrent(t *testing.T) {
	inputs := []string{"aaabbc", "mississippi", "banana bandana", "zzzzzzzz"}

	var wg sync.WaitGroup
	errs := make([]error, 4*len(inputs))
	outputs := make([]string, len(errs))
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := CompressString(inputs[i%len(inputs)])
			if err != nil {
				errs[i] = err
				return
			}
			symbols, _, err := Decompress(res.Data, res.Table)
			errs[i] = err
			outputs[i] = StringFromSymbols(symbols)
		}(i)
	}
	wg.Wait()

	for i := range errs {
		require.NoError(t, errs[i])
		require.Equal(t, inputs[i%len(inputs)], outputs[i])
	}
}

func TestCompressFile(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "input.txt")
	outPath := filepath.Join(dir, "input.huf")
	text := "she sells sea shells by the sea shore\n"
	require.NoError(t, os.WriteFile(inPath, []byte(text), 0o666))

	res, err := CompressFile(inPath)
	require.NoError(t, err)
	require.Equal(t, len(text), res.SymbolCount)
	require.NoError(t, WriteFile(outPath, res.Data))

	symbols, count, err := DecompressFile(outPath, res.Table)
	require.NoError(t, err)
	require.Equal(t, len(text), count)
	require.Equal(t, text, StringFromSymbols(symbols))
}

func TestCompressFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := CompressFile(filepath.Join(dir, "missing.txt"))
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NotErrorIs(t, err, ErrMalformedStream)

	binPath := filepath.Join(dir, "binary.dat")
	require.NoError(t, os.WriteFile(binPath, []byte{0xff, 0xfe, 0x00}, 0o666))
	_, err = CompressFile(binPath)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, ErrInvalidUTF8)

	emptyPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(emptyPath, nil, 0o666))
	_, err = CompressFile(emptyPath)
	require.ErrorIs(t, err, ErrEmptyInput)
	require.NotErrorIs(t, err, ErrIO)

	err = WriteFile(filepath.Join(dir, "no", "such", "dir", "out.huf"), []byte{0})
	require.ErrorIs(t, err, ErrIO)
}

func TestCompress_NegativeSymbol(t *testing.T) {
	_, err := Compress([]Symbol{'a', InvalidSymbol})
	var use *UnknownSymbolError
	require.ErrorAs(t, err, &use)
	require.Equal(t, 1, use.Index)
}

func TestCompressString_InvalidUTF8(t *testing.T) {
	_, err := CompressString("ab\xffc")
	var ite *InvalidTextError
	require.ErrorAs(t, err, &ite)
	require.Equal(t, 2, ite.Offset)
	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.NotErrorIs(t, err, ErrIO)

	// The same bytes survive as binary data.
	res, err := CompressBytes([]byte("ab\xffc"))
	require.NoError(t, err)
	symbols, _, err := Decompress(res.Data, res.Table)
	require.NoError(t, err)
	require.Equal(t, []byte("ab\xffc"), BytesFromSymbols(symbols))
}

func TestDecompressCount_AlignedTruncation(t *testing.T) {
	type testRow struct {
		input  string
		expect []byte
	}

	testData := [...]testRow{
		{"aabbaabbaabbaabb", []byte{0x00, 0x33, 0x33}},
		{strings.Repeat("a", 16), []byte{0x00, 0x00, 0x00}},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			res, err := CompressString(row.input)
			require.NoError(t, err)
			require.Equal(t, row.expect, res.Data)

			symbols, err := DecompressCount(res.Data, res.Table, res.SymbolCount)
			require.NoError(t, err)
			require.Equal(t, row.input, StringFromSymbols(symbols))

			// With a pad length of 0, losing the last byte still
			// leaves a decodable stream; only the count gives it away.
			truncated := res.Data[:len(res.Data)-1]
			_, _, err = Decompress(truncated, res.Table)
			require.NoError(t, err)

			symbols, err = DecompressCount(truncated, res.Table, res.SymbolCount)
			require.Nil(t, symbols)
			var mse *MalformedStreamError
			require.ErrorAs(t, err, &mse)
		})
	}
}
