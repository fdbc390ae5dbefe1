package codec

import (
	"bytes"
	"testing"
)

func TestPackerRoundTrip(t *testing.T) {
	p := NewPacker()
	p.PackByte(0x7f)
	p.PackShort(0xBEEF)
	p.PackInt(0xDEADBEEF)
	p.PackLong(0x0102030405060708)
	p.PackFixedBytes([]byte{1, 2, 3, 4})
	p.PackBytes([]byte("hello"))
	if p.Err != nil {
		t.Fatalf("pack error: %v", p.Err)
	}

	r := NewPackerFromBytes(p.Bytes)
	if got := r.UnpackByte(); got != 0x7f {
		t.Fatalf("byte = %#x, want 0x7f", got)
	}
	if got := r.UnpackShort(); got != 0xBEEF {
		t.Fatalf("short = %#x, want 0xBEEF", got)
	}
	if got := r.UnpackInt(); got != 0xDEADBEEF {
		t.Fatalf("int = %#x, want 0xDEADBEEF", got)
	}
	if got := r.UnpackLong(); got != 0x0102030405060708 {
		t.Fatalf("long = %#x, want 0x0102030405060708", got)
	}
	if got := r.UnpackFixedBytes(4); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Fatalf("fixed bytes = %v", got)
	}
	if got := r.UnpackBytes(); string(got) != "hello" {
		t.Fatalf("bytes = %q, want hello", got)
	}
	if r.HasMore() {
		t.Fatalf("expected no trailing bytes")
	}
	if r.Err != nil {
		t.Fatalf("unpack error: %v", r.Err)
	}
}

func TestPackerTruncatedBuffer(t *testing.T) {
	r := NewPackerFromBytes([]byte{0x01, 0x02})
	_ = r.UnpackInt()
	if r.Err == nil {
		t.Fatalf("expected truncated buffer error")
	}
}

func TestPackerUnknownCallsAfterErrorAreNoOps(t *testing.T) {
	r := NewPackerFromBytes([]byte{0x01})
	_ = r.UnpackInt()
	firstErr := r.Err
	_ = r.UnpackLong()
	if r.Err != firstErr {
		t.Fatalf("error should be sticky once set")
	}
}

func TestPackBytesOversizeRejected(t *testing.T) {
	p := NewPacker()
	p.PackBytes(make([]byte, MaxSize+1))
	if p.Err == nil {
		t.Fatalf("expected oversize byte string to be rejected")
	}
}

func TestPackCountRoundTrip(t *testing.T) {
	cases := []int{0, 1, 7, 1 << 20}
	for _, n := range cases {
		p := NewPacker()
		p.PackCount(n)
		if p.Err != nil {
			t.Fatalf("PackCount(%d): %v", n, p.Err)
		}
		r := NewPackerFromBytes(p.Bytes)
		if got := r.UnpackInt(); got != uint32(n) {
			t.Fatalf("PackCount(%d) round-tripped as %d", n, got)
		}
	}
}

func TestPackCountRejectsNegative(t *testing.T) {
	p := NewPacker()
	p.PackCount(-1)
	if p.Err == nil {
		t.Fatalf("expected negative count to be rejected")
	}
}
