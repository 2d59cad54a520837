package huffcrunch

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxCodeSize is the longest code, in bits, that a Code can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant of
	// the Size low-order bits is the first bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode parses a string of '0' and '1' characters into a Code.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is too long: got %d bits, max %d", str, len(str), MaxCodeSize)
	}
	var hc Code
	for _, ch := range str {
		switch ch {
		case '0':
			hc = hc.Append(false)
		case '1':
			hc = hc.Append(true)
		default:
			return Code{}, fmt.Errorf("code %q contains invalid character %q", str, ch)
		}
	}
	return hc, nil
}

// Append returns this Code extended by one more bit.
func (hc Code) Append(bit bool) Code {
	out := Code{Size: hc.Size + 1, Bits: hc.Bits << 1}
	if bit {
		out.Bits |= 1
	}
	return out
}

// Parent returns this Code with its last bit removed.
func (hc Code) Parent() Code {
	if hc.Size == 0 {
		return hc
	}
	return Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}
}

// Sibling returns this Code with its last bit flipped.
func (hc Code) Sibling() Code {
	return Code{Size: hc.Size, Bits: hc.Bits ^ 1}
}

// HasPrefix returns true iff prefix is a (not necessarily proper) prefix of
// this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// Binary returns the bits of this Code as a string of '0' and '1'.
func (hc Code) Binary() string {
	if hc.Size == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := int(hc.Size) - 1; i >= 0; i-- {
		if (hc.Bits>>uint(i))&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Binary())
}

var _ fmt.Stringer = Code{}
