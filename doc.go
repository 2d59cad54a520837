// Package huffcrunch implements a static Huffman compressor.  The input is
// counted once, a prefix-code tree is built from the counts, and every
// symbol is replaced by its code.  The packed output is preceded by a single
// header byte holding the number of zero bits used to pad the last byte.
//
// The compressed format does not carry the code table.  Callers keep the
// Table returned by Compress, or persist it next to the data with
// MarshalSidecar.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffcrunch
