package huffcrunch

import (
	"bytes"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// MaxPadding is the largest pad length that Encode writes into the header.
const MaxPadding = 7

// Encode translates symbols into their codes from t and packs the result.
//
// The output starts with a header byte holding the number of zero bits (0 to
// MaxPadding) that were appended to round the codes up to a whole number of
// bytes.  The codes follow, first bit in the most significant position.
//
func Encode(symbols []Symbol, t Table) ([]byte, error) {
	if len(symbols) == 0 {
		return nil, &EmptyInputError{Op: "encode"}
	}

	// Pass 1: check that every symbol has a code, and total the bits.

	var numBits uint64
	for index, symbol := range symbols {
		hc, found := t.Encode(symbol)
		if !found {
			return nil, &UnknownSymbolError{Symbol: symbol, Index: index}
		}
		numBits += uint64(hc.Size)
	}

	padding := byte((8 - numBits%8) % 8)
	assert.Assertf(padding <= MaxPadding, "padding %d > MaxPadding %d", padding, MaxPadding)
	numBytes := 1 + (numBits+uint64(padding))/8

	// Pass 2: write the header, then the codes.

	var buf bytes.Buffer
	buf.Grow(int(numBytes))

	w := bitio.NewWriter(&buf)
	if err := w.WriteByte(padding); err != nil {
		return nil, err
	}
	for _, symbol := range symbols {
		hc := t.codes[symbol]
		if err := w.WriteBits(hc.Bits, hc.Size); err != nil {
			return nil, err
		}
	}

	skipped, err := w.Align()
	if err != nil {
		return nil, err
	}
	assert.Assertf(skipped == padding, "bitio padded %d bits, expected %d", skipped, padding)

	if err := w.Close(); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	assert.Assertf(uint64(len(out)) == numBytes, "wrote %d bytes, expected %d", len(out), numBytes)
	return out, nil
}
