package namespace

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// ID is a namespace identifier. IDs of the same size are totally ordered by
// byte-wise comparison.
type ID []byte

// Less returns true if nid < other, otherwise, false.
func (nid ID) Less(other ID) bool {
	// Fast path for common 8-byte namespace size
	if len(nid) == 8 && len(other) == 8 {
		return lessUint64(nid, other)
	}
	return bytes.Compare(nid, other) < 0
}

// lessUint64 compares two 8-byte slices as big-endian uint64s
func lessUint64(a, b []byte) bool {
	return binary.BigEndian.Uint64(a) < binary.BigEndian.Uint64(b)
}

// Equal returns true if nid == other, otherwise, false.
func (nid ID) Equal(other ID) bool {
	return bytes.Equal(nid, other)
}

// LessOrEqual returns true if nid <= other, otherwise, false.
func (nid ID) LessOrEqual(other ID) bool {
	return bytes.Compare(nid, other) <= 0
}

// Size returns the byte size of the nid.
func (nid ID) Size() IDSize {
	return IDSize(len(nid))
}

// Validate returns an error if nid is not exactly size bytes long.
func (nid ID) Validate(size IDSize) error {
	if nid.Size() != size {
		return fmt.Errorf("%w: got: %v, want: %v", ErrInvalidSize, nid.Size(), size)
	}
	return nil
}

// String returns the hexadecimal encoding of the nid. The output of
// nid.String() is not equivalent to string(nid).
func (nid ID) String() string {
	return hex.EncodeToString(nid)
}

// MaxID returns the largest namespace ID of the given size, i.e. size bytes
// of 0xFF. Some trees reserve it for trailing parity data.
func MaxID(size IDSize) ID {
	return bytes.Repeat([]byte{0xFF}, int(size))
}

// MinID returns the smallest namespace ID of the given size.
func MinID(size IDSize) ID {
	return make(ID, size)
}

// IDFromHex parses a hex encoded namespace ID.
func IDFromHex(s string) (ID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid namespace %q: %w", s, err)
	}
	return b, nil
}
