package field

import (
	"bytes"
	"testing"
)

// TestReadWrite_BigEndian tests the big-endian accessors round-trip at an
// interior offset.
func TestReadWrite_BigEndian(t *testing.T) {
	data := make([]byte, 16)

	WriteU16BE(data, 2, 0xA1B2)
	if got := ReadU16BE(data, 2); got != 0xA1B2 {
		t.Errorf("ReadU16BE() = 0x%04X, expected 0xA1B2", got)
	}
	if data[2] != 0xA1 || data[3] != 0xB2 {
		t.Errorf("WriteU16BE() bytes = % X, expected A1 B2", data[2:4])
	}

	WriteU32BE(data, 4, 0x0A0B0C0D)
	if got := ReadU32BE(data, 4); got != 0x0A0B0C0D {
		t.Errorf("ReadU32BE() = 0x%08X, expected 0x0A0B0C0D", got)
	}
	if !bytes.Equal(data[4:8], []byte{0x0A, 0x0B, 0x0C, 0x0D}) {
		t.Errorf("WriteU32BE() bytes = % X, expected 0A 0B 0C 0D", data[4:8])
	}

	WriteU64BE(data, 8, 0x995DC9BBDF1939FA)
	if got := ReadU64BE(data, 8); got != 0x995DC9BBDF1939FA {
		t.Errorf("ReadU64BE() = 0x%016X, expected 0x995DC9BBDF1939FA", got)
	}
	if data[8] != 0x99 || data[15] != 0xFA {
		t.Errorf("WriteU64BE() byte order wrong: % X", data[8:16])
	}
}

// TestReadWrite_LittleEndian tests the little-endian accessors round-trip.
func TestReadWrite_LittleEndian(t *testing.T) {
	data := make([]byte, 8)

	WriteU16LE(data, 0, 0x1234)
	if data[0] != 0x34 || data[1] != 0x12 {
		t.Errorf("WriteU16LE() bytes = % X, expected 34 12", data[0:2])
	}
	if got := ReadU16LE(data, 0); got != 0x1234 {
		t.Errorf("ReadU16LE() = 0x%04X, expected 0x1234", got)
	}

	WriteU32LE(data, 2, 0xDEADBEEF)
	if got := ReadU32LE(data, 2); got != 0xDEADBEEF {
		t.Errorf("ReadU32LE() = 0x%08X, expected 0xDEADBEEF", got)
	}
}

// TestByteOffset tests bit-to-byte offset conversion.
func TestByteOffset(t *testing.T) {
	tests := []struct {
		bits     uint32
		expected int
	}{
		{0, 0},
		{8, 1},
		{64, 8},
		{240, 30},
	}

	for _, tt := range tests {
		if got := ByteOffset(tt.bits); got != tt.expected {
			t.Errorf("ByteOffset(%d) = %d, expected %d", tt.bits, got, tt.expected)
		}
	}
}

// TestNibble tests nibble reads and writes at both halves of a byte,
// preserving the neighbouring nibble.
func TestNibble(t *testing.T) {
	tests := []struct {
		name      string
		bitOffset uint32
		value     uint8
		initial   byte
		expected  byte
	}{
		{"Low nibble of byte 1", 8, 0x05, 0x00, 0x05},
		{"High nibble of byte 1", 12, 0x05, 0x00, 0x50},
		{"Low nibble preserves high", 8, 0x0A, 0xF0, 0xFA},
		{"High nibble preserves low", 12, 0x0A, 0x0F, 0xAF},
		{"Value masked to four bits", 8, 0xFF, 0x00, 0x0F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte{0x00, tt.initial, 0x00}
			WriteNibble(data, tt.bitOffset, tt.value)
			if data[1] != tt.expected {
				t.Errorf("WriteNibble() byte = 0x%02X, expected 0x%02X", data[1], tt.expected)
			}
			if got := ReadNibble(data, tt.bitOffset); got != tt.value&0x0F {
				t.Errorf("ReadNibble() = 0x%X, expected 0x%X", got, tt.value&0x0F)
			}
		})
	}
}

// TestWriteMaskedU8 tests that only masked bits are replaced.
func TestWriteMaskedU8(t *testing.T) {
	data := []byte{0xFF}
	WriteMaskedU8(data, 0, 0x05, 0x0F)
	if data[0] != 0xF5 {
		t.Errorf("WriteMaskedU8() = 0x%02X, expected 0xF5", data[0])
	}
}
