package macho

import (
	"encoding/binary"
	"testing"
)

// buildFat32 assembles a fat header + arch table (big-endian, 32-bit
// offsets) followed by the given slices concatenated in order.
func buildFat32(slices [][]byte) []byte {
	order := binary.BigEndian
	n := len(slices)
	head := make([]byte, 8+n*20)
	putU32(head, 0, 0xcafebabe, order)
	putU32(head, 4, uint32(n), order)

	body := []byte{}
	base := len(head)
	for i, s := range slices {
		recOff := 8 + i*20
		putU32(head, recOff, 0x01000007, order) // cputype
		putU32(head, recOff+4, 0x3, order)
		putU32(head, recOff+8, uint32(base+len(body)), order) // offset
		putU32(head, recOff+12, uint32(len(s)), order)        // size
		putU32(head, recOff+16, 0, order)                     // align
		body = append(body, s...)
	}
	return append(head, body...)
}

func TestDemultiplexThin(t *testing.T) {
	buf := buildThinHeader64(0x2, 0, 0, 0)
	isFat, slices, err := demultiplex(buf)
	if err != nil {
		t.Fatal(err)
	}
	if isFat {
		t.Fatal("expected thin image")
	}
	if len(slices) != 1 || len(slices[0].data) != len(buf) {
		t.Fatalf("expected one slice spanning the whole buffer, got %+v", slices)
	}
}

func TestDemultiplexFat(t *testing.T) {
	a := buildThinHeader64(0x2, 0, 0, 0)
	b := buildThinHeader64(0x6, 0, 0, 0)
	buf := buildFat32([][]byte{a, b})

	isFat, slices, err := demultiplex(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !isFat {
		t.Fatal("expected fat image")
	}
	if len(slices) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(slices))
	}
	if len(slices[0].data) != len(a) || len(slices[1].data) != len(b) {
		t.Fatalf("slice sizes don't match input: %d, %d", len(slices[0].data), len(slices[1].data))
	}
}

func TestDemultiplexMalformedNFatArch(t *testing.T) {
	order := binary.BigEndian
	buf := make([]byte, 8)
	putU32(buf, 0, 0xcafebabe, order)
	putU32(buf, 4, 0xFFFFFFFF, order) // absurd nfat_arch

	_, _, err := demultiplex(buf)
	pe, ok := err.(*ParseError)
	if !ok || pe.Kind != MalformedFat {
		t.Fatalf("expected MalformedFat, got %v", err)
	}
}

func TestParseTruncatedBuffer(t *testing.T) {
	_, err := Parse([]byte{0x01, 0x02, 0x03})
	if err == nil {
		t.Fatal("expected an error for a 3-byte buffer")
	}
}
