package huffcrunch

import (
	"errors"
	"strconv"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
)

// SidecarVersion is the version number written by MarshalSidecar.
const SidecarVersion = 1

// SidecarSuffix is the conventional suffix for a sidecar file next to the
// compressed file it describes.
const SidecarSuffix = ".table"

type sidecar struct {
	Version  int    `json:"version"`
	Checksum string `json:"checksum"`
	Symbols  int    `json:"symbols"`
	Codes    Table  `json:"codes"`
}

// MarshalSidecar serializes t together with a checksum of data, the
// compressed stream t decodes.  The compressed stream itself never carries
// its table; the sidecar lets another process decode it.
func MarshalSidecar(t Table, data []byte, symbolCount int) ([]byte, error) {
	doc := sidecar{
		Version:  SidecarVersion,
		Checksum: checksum(data),
		Symbols:  symbolCount,
		Codes:    t,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalSidecar parses a sidecar produced by MarshalSidecar and checks
// that it belongs to data.  It returns the Table and the recorded symbol
// count.
func UnmarshalSidecar(raw []byte, data []byte) (Table, int, error) {
	var doc sidecar
	if err := json.Unmarshal(raw, &doc); err != nil {
		var mse *MalformedStreamError
		if errors.As(err, &mse) {
			return Table{}, 0, mse
		}
		return Table{}, 0, malformed(-1, "sidecar: %v", err)
	}
	if doc.Version != SidecarVersion {
		return Table{}, 0, malformed(-1, "sidecar: unsupported version %d", doc.Version)
	}
	if sum := checksum(data); doc.Checksum != sum {
		return Table{}, 0, malformed(-1, "sidecar: checksum %s does not match stream checksum %s", doc.Checksum, sum)
	}
	if doc.Symbols <= 0 {
		return Table{}, 0, malformed(-1, "sidecar: invalid symbol count %d", doc.Symbols)
	}
	if doc.Codes.Len() == 0 {
		return Table{}, 0, malformed(-1, "sidecar: no codes")
	}
	return doc.Codes, doc.Symbols, nil
}

func checksum(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

// DecompressWithSidecar decodes data with the table held in the sidecar raw,
// checking both the sidecar's checksum and its symbol count.
func DecompressWithSidecar(data []byte, raw []byte) ([]Symbol, error) {
	t, expected, err := UnmarshalSidecar(raw, data)
	if err != nil {
		return nil, err
	}
	return DecompressCount(data, t, expected)
}
