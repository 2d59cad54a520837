package huffcrunch

import (
	"bytes"

	"github.com/icza/bitio"
)

// legacyPadding is the pad length written by encoders that always pad, even
// when the codes already end on a byte boundary.  Such streams end in one
// whole zero byte.
const legacyPadding = 8

// Decode reverses Encode, using the same Table.
//
// The stream is rejected with a MalformedStreamError if it has no header, if
// the header names an impossible pad length, if the padding bits are not all
// zero, if a run of bits matches no code, or if the bits end in the middle of
// a code.
//
// The stream does not record how many symbols it holds.  A stream whose codes
// end exactly on a byte boundary has a pad length of 0, so if whole bytes are
// lost from its end the remainder may still decode cleanly.  Use
// DecompressCount or DecompressWithSidecar to catch that.
//
func Decode(data []byte, t Table) ([]Symbol, error) {
	if len(data) == 0 {
		return nil, malformed(0, "missing header")
	}
	if t.Len() == 0 {
		return nil, malformed(-1, "empty table")
	}

	padding := data[0]
	if padding > legacyPadding {
		return nil, malformed(0, "pad length %d out of range 0..%d (or %d for a trailing zero byte)", padding, MaxPadding, legacyPadding)
	}

	body := data[1:]
	totalBits := int64(len(body)) * 8
	numBits := totalBits - int64(padding)
	if numBits < 0 {
		return nil, malformed(8, "pad length %d exceeds the %d bits of body", padding, totalBits)
	}
	if numBits == 0 {
		return nil, malformed(8, "no encoded symbols")
	}

	// One symbol needs at least minSize bits.
	symbols := make([]Symbol, 0, numBits/int64(t.minSize))

	r := bitio.NewReader(bytes.NewReader(body))
	var hc Code
	var start int64
	for offset := int64(0); offset < numBits; offset++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, malformed(8+offset, "%v", err)
		}

		hc = hc.Append(bit)
		symbol, minSize, _ := t.Decode(hc)
		switch {
		case minSize == 0:
			return nil, malformed(8+start, "bits %s match no code", hc)
		case symbol != InvalidSymbol:
			symbols = append(symbols, symbol)
			hc = Code{}
			start = offset + 1
		}
	}

	if hc.Size != 0 {
		return nil, malformed(8+start, "stream ends inside code %s", hc)
	}

	for offset := numBits; offset < totalBits; offset++ {
		bit, err := r.ReadBool()
		if err != nil {
			return nil, malformed(8+offset, "%v", err)
		}
		if bit {
			return nil, malformed(8+offset, "non-zero padding bit")
		}
	}

	return symbols, nil
}
