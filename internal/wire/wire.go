package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

// Order message layout: type(1) | token(14) | side(1) | shares(u32 be) | symbol(8) | price(u32 be)
const (
	OffType   = 0
	OffToken  = 1
	OffSide   = 15
	OffShares = 16
	OffSymbol = 20
	OffPrice  = 28

	TokenWidth  = 14
	SymbolWidth = 8

	Size = 1 + TokenWidth + 1 + 4 + SymbolWidth + 4
)

// EntryOverhead is the journal envelope size around a payload.
const EntryOverhead = 4 + 1 + 8 + 4

const (
	pad     byte = ' '
	version byte = 1
)

var (
	ErrCorrupt = errors.New("ouch: corrupt journal entry")
	magic4     = [...]byte{'O', 'U', 'C', 'J'}
)

// PutText copies s into dst and fills the rest of dst with spaces.
// Caller guarantees len(s) <= len(dst).
func PutText(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = pad
	}
}

// Text returns b with trailing spaces and NULs removed.
func Text(b []byte) string {
	return string(bytes.TrimRight(b, " \x00"))
}

func PutUint32(dst []byte, v uint32) { binary.BigEndian.PutUint32(dst, v) }

func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// ASCII reports the index of the first byte >= 0x80, or -1.
func ASCII[T string | []byte](b T) int {
	for i := 0; i < len(b); i++ {
		if b[i] >= 0x80 {
			return i
		}
	}
	return -1
}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | rev(u64 be) | vlen(u32 be) | payload(vlen)
func EncodeEntry(rev uint64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(EntryOverhead + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], rev)
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// DecodeEntry returns a payload slice that aliases b.
func DecodeEntry(b []byte) (rev uint64, payload []byte, err error) {
	if len(b) < EntryOverhead || !hasMagic(b) || b[4] != version {
		return 0, nil, ErrCorrupt
	}

	off := 5

	rev = binary.BigEndian.Uint64(b[off : off+8])
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // trailing bytes are corruption too
		return 0, nil, ErrCorrupt
	}

	return rev, b[off : off+vlen], nil
}
