// Package field provides the byte- and bit-level codec shared by the E2E
// profile engines: fixed-width big/little-endian integers at a byte offset,
// and 4-bit nibble access at an arbitrary bit offset.
//
// All operations assume the caller has already validated the buffer length;
// every profile checks its length contract before touching any field.
package field

import "encoding/binary"

// ByteOffset converts a bit offset into the offset of the byte containing
// that bit.
func ByteOffset(bitOffset uint32) int {
	return int(bitOffset / 8)
}

// ReadU8 reads a single byte at offset.
func ReadU8(data []byte, offset int) uint8 {
	return data[offset]
}

// ReadU16BE reads a big-endian 16-bit value at offset.
func ReadU16BE(data []byte, offset int) uint16 {
	return binary.BigEndian.Uint16(data[offset:])
}

// ReadU32BE reads a big-endian 32-bit value at offset.
func ReadU32BE(data []byte, offset int) uint32 {
	return binary.BigEndian.Uint32(data[offset:])
}

// ReadU64BE reads a big-endian 64-bit value at offset.
func ReadU64BE(data []byte, offset int) uint64 {
	return binary.BigEndian.Uint64(data[offset:])
}

// ReadU16LE reads a little-endian 16-bit value at offset.
func ReadU16LE(data []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(data[offset:])
}

// ReadU32LE reads a little-endian 32-bit value at offset.
func ReadU32LE(data []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(data[offset:])
}

// ReadU64LE reads a little-endian 64-bit value at offset.
func ReadU64LE(data []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(data[offset:])
}

// WriteU8 writes a single byte at offset.
func WriteU8(data []byte, offset int, value uint8) {
	data[offset] = value
}

// WriteU16BE writes a big-endian 16-bit value at offset.
func WriteU16BE(data []byte, offset int, value uint16) {
	binary.BigEndian.PutUint16(data[offset:], value)
}

// WriteU32BE writes a big-endian 32-bit value at offset.
func WriteU32BE(data []byte, offset int, value uint32) {
	binary.BigEndian.PutUint32(data[offset:], value)
}

// WriteU64BE writes a big-endian 64-bit value at offset.
func WriteU64BE(data []byte, offset int, value uint64) {
	binary.BigEndian.PutUint64(data[offset:], value)
}

// WriteU16LE writes a little-endian 16-bit value at offset.
func WriteU16LE(data []byte, offset int, value uint16) {
	binary.LittleEndian.PutUint16(data[offset:], value)
}

// WriteU32LE writes a little-endian 32-bit value at offset.
func WriteU32LE(data []byte, offset int, value uint32) {
	binary.LittleEndian.PutUint32(data[offset:], value)
}

// WriteU64LE writes a little-endian 64-bit value at offset.
func WriteU64LE(data []byte, offset int, value uint64) {
	binary.LittleEndian.PutUint64(data[offset:], value)
}

const nibbleMask uint8 = 0x0F

// ReadNibble reads the 4-bit value starting at bitOffset. The bit offset
// selects a byte via bitOffset>>3 and a shift within the byte via
// bitOffset&7.
func ReadNibble(data []byte, bitOffset uint32) uint8 {
	idx := int(bitOffset >> 3)
	shift := bitOffset & 0x07
	return (data[idx] >> shift) & nibbleMask
}

// WriteNibble writes the low 4 bits of value at bitOffset, preserving the
// other nibble of the target byte.
func WriteNibble(data []byte, bitOffset uint32, value uint8) {
	idx := int(bitOffset >> 3)
	shift := bitOffset & 0x07
	mask := ^(nibbleMask << shift)
	data[idx] = (data[idx] & mask) | ((value & nibbleMask) << shift)
}

// WriteMaskedU8 overwrites only the masked bits of the byte at offset.
func WriteMaskedU8(data []byte, offset int, value, mask uint8) {
	data[offset] = (data[offset] & ^mask) | (value & mask)
}
