// Package codec implements the canonical binary wire format shared by every
// typed entity in this module: fixed-width big-endian integers,
// length-prefixed byte strings and sequences, checksummed base-58 ("cb58")
// and bech32 address encoding.
package codec

import (
	"fmt"

	"github.com/coldtrail/utxotx/pkg/safe"
)

const (
	// MaxSize bounds a single packed buffer to guard against pathological
	// length-prefixed allocations while decoding untrusted bytes.
	MaxSize = 1 << 24
)

// Packer writes and reads the big-endian canonical wire format used by every
// typed entity in this module. A zero-value Packer with a non-nil Bytes
// slice is ready for reading; NewPacker returns one ready for writing.
type Packer struct {
	Bytes  []byte
	Offset int
	Err    error
}

// NewPacker returns a Packer ready to pack into a fresh buffer.
func NewPacker() *Packer {
	return &Packer{Bytes: make([]byte, 0, 256)}
}

// NewPackerFromBytes returns a Packer ready to unpack the given bytes. The
// slice is referenced, not copied.
func NewPackerFromBytes(b []byte) *Packer {
	return &Packer{Bytes: b}
}

func (p *Packer) setErr(err error) {
	if p.Err == nil {
		p.Err = err
	}
}

func (p *Packer) expand(n int) {
	if p.Err != nil {
		return
	}
	needed := len(p.Bytes) + n
	if needed > MaxSize {
		p.setErr(fmt.Errorf("%w: buffer would exceed %d bytes", ErrInvalidLength, MaxSize))
		return
	}
	if cap(p.Bytes) < needed {
		grown := make([]byte, len(p.Bytes), needed*2)
		copy(grown, p.Bytes)
		p.Bytes = grown
	}
}

// PackByte appends a single byte.
func (p *Packer) PackByte(v byte) {
	p.expand(1)
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, v)
}

// PackShort appends a big-endian u16.
func (p *Packer) PackShort(v uint16) {
	p.expand(2)
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, byte(v>>8), byte(v))
}

// PackInt appends a big-endian u32.
func (p *Packer) PackInt(v uint32) {
	p.expand(4)
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// PackLong appends a big-endian u64.
func (p *Packer) PackLong(v uint64) {
	p.expand(8)
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// PackCount appends n (a slice length) as a big-endian u32, rejecting n if it
// doesn't fit rather than silently truncating it on the cast.
func (p *Packer) PackCount(n int) {
	if p.Err != nil {
		return
	}
	count, err := safe.Uint32(n)
	if err != nil {
		p.setErr(fmt.Errorf("%w: sequence count: %v", ErrInvalidLength, err))
		return
	}
	p.PackInt(count)
}

// PackFixedBytes appends raw bytes without a length prefix; the caller and
// the reader must agree on the width out of band.
func (p *Packer) PackFixedBytes(b []byte) {
	p.expand(len(b))
	if p.Err != nil {
		return
	}
	p.Bytes = append(p.Bytes, b...)
}

// PackBytes appends a u32 length prefix followed by the bytes.
func (p *Packer) PackBytes(b []byte) {
	if len(b) > MaxSize {
		p.setErr(fmt.Errorf("%w: byte string of %d bytes exceeds max size", ErrInvalidLength, len(b)))
		return
	}
	p.PackCount(len(b))
	p.PackFixedBytes(b)
}

// UnpackByte reads a single byte.
func (p *Packer) UnpackByte() byte {
	if p.Err != nil {
		return 0
	}
	if p.Offset+1 > len(p.Bytes) {
		p.setErr(fmt.Errorf("%w: want 1 byte at offset %d, have %d", ErrTruncatedBuffer, p.Offset, len(p.Bytes)))
		return 0
	}
	v := p.Bytes[p.Offset]
	p.Offset++
	return v
}

// UnpackShort reads a big-endian u16.
func (p *Packer) UnpackShort() uint16 {
	b := p.unpackFixed(2)
	if p.Err != nil {
		return 0
	}
	return uint16(b[0])<<8 | uint16(b[1])
}

// UnpackInt reads a big-endian u32.
func (p *Packer) UnpackInt() uint32 {
	b := p.unpackFixed(4)
	if p.Err != nil {
		return 0
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// UnpackLong reads a big-endian u64.
func (p *Packer) UnpackLong() uint64 {
	b := p.unpackFixed(8)
	if p.Err != nil {
		return 0
	}
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// UnpackFixedBytes reads n raw bytes.
func (p *Packer) UnpackFixedBytes(n int) []byte {
	return p.unpackFixed(n)
}

// UnpackBytes reads a u32 length prefix followed by that many bytes.
func (p *Packer) UnpackBytes() []byte {
	n := p.UnpackInt()
	if p.Err != nil {
		return nil
	}
	if n > MaxSize {
		p.setErr(fmt.Errorf("%w: byte string of %d bytes exceeds max size", ErrInvalidLength, n))
		return nil
	}
	return p.unpackFixed(int(n))
}

func (p *Packer) unpackFixed(n int) []byte {
	if p.Err != nil {
		return nil
	}
	if n < 0 || p.Offset+n > len(p.Bytes) {
		p.setErr(fmt.Errorf("%w: want %d bytes at offset %d, have %d", ErrTruncatedBuffer, n, p.Offset, len(p.Bytes)))
		return nil
	}
	b := make([]byte, n)
	copy(b, p.Bytes[p.Offset:p.Offset+n])
	p.Offset += n
	return b
}

// HasMore reports whether the packer has unread bytes.
func (p *Packer) HasMore() bool {
	return p.Offset < len(p.Bytes)
}
