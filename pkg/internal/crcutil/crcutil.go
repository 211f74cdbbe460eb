// Package crcutil wraps the CRC engines used by the E2E profiles. Each
// profile checksums its buffer with the CRC field's byte range excluded,
// and some fold an otherwise-untransmitted Data ID into the digest as extra
// context bytes. The polynomial arithmetic itself is delegated: sigurn's
// table-driven crc8/crc16 packages for the 8- and 16-bit algorithms, and the
// standard library crc32/crc64 tables for the two wide, reflected ones
// (CRC-32/AUTOSAR and CRC-64/XZ).
package crcutil

import (
	"hash/crc32"
	"hash/crc64"

	"github.com/sigurn/crc16"
	"github.com/sigurn/crc8"
)

// CRC-8/SAE-J1850 with zero init and xorout, used by Profile 11.
var paramsSAEJ1850Zero = crc8.Params{
	Poly:   0x1D,
	Init:   0x00,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
	Check:  0x4B,
	Name:   "CRC-8/SAE-J1850-ZERO",
}

// CRC-8/AUTOSAR, used by Profile 22.
var paramsCRC8Autosar = crc8.Params{
	Poly:   0x2F,
	Init:   0xFF,
	RefIn:  false,
	RefOut: false,
	XorOut: 0xFF,
	Check:  0xDF,
	Name:   "CRC-8/AUTOSAR",
}

var (
	saeJ1850Table = crc8.MakeTable(paramsSAEJ1850Zero)
	autosar8Table = crc8.MakeTable(paramsCRC8Autosar)

	// CRC-16/CCITT-FALSE is the same algorithm as CRC-16/IBM-3740.
	ibm3740Table = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

	// Bit-reversed form of the AUTOSAR polynomial 0xF4ACFB13; the stdlib
	// crc32 model (all-ones init and xorout, reflected) matches the
	// algorithm exactly.
	autosar32Table = crc32.MakeTable(0xC8DF352F)

	// crc64.ECMA with the stdlib model is bit-for-bit CRC-64/XZ.
	xz64Table = crc64.MakeTable(crc64.ECMA)
)

// CRC8SAEJ1850 computes the Profile 11 CRC: the Data ID context bytes are
// digested first, then the buffer with excludeLen bytes at excludeStart
// skipped.
func CRC8SAEJ1850(id, data []byte, excludeStart, excludeLen int) uint8 {
	crc := crc8.Init(saeJ1850Table)
	crc = crc8.Update(crc, id, saeJ1850Table)
	crc = crc8.Update(crc, data[:excludeStart], saeJ1850Table)
	crc = crc8.Update(crc, data[excludeStart+excludeLen:], saeJ1850Table)
	return crc8.Complete(crc, saeJ1850Table)
}

// CRC8Autosar computes the Profile 22 CRC over the buffer with the CRC byte
// range skipped, then folds the per-cycle Data ID byte into the digest.
func CRC8Autosar(data []byte, excludeStart, excludeLen int, id []byte) uint8 {
	crc := crc8.Init(autosar8Table)
	crc = crc8.Update(crc, data[:excludeStart], autosar8Table)
	crc = crc8.Update(crc, data[excludeStart+excludeLen:], autosar8Table)
	crc = crc8.Update(crc, id, autosar8Table)
	return crc8.Complete(crc, autosar8Table)
}

// CRC16IBM3740 computes the Profile 5/6 CRC over the buffer with the CRC
// byte range skipped, then folds the Data ID bytes into the digest. Profile
// 5 passes the ID little-endian, Profile 6 big-endian.
func CRC16IBM3740(data []byte, excludeStart, excludeLen int, id []byte) uint16 {
	crc := crc16.Init(ibm3740Table)
	crc = crc16.Update(crc, data[:excludeStart], ibm3740Table)
	crc = crc16.Update(crc, data[excludeStart+excludeLen:], ibm3740Table)
	crc = crc16.Update(crc, id, ibm3740Table)
	return crc16.Complete(crc, ibm3740Table)
}

// CRC32Autosar computes the Profile 4/4M/8 CRC over the buffer with the CRC
// byte range skipped.
func CRC32Autosar(data []byte, excludeStart, excludeLen int) uint32 {
	crc := crc32.Update(0, autosar32Table, data[:excludeStart])
	return crc32.Update(crc, autosar32Table, data[excludeStart+excludeLen:])
}

// CRC64XZ computes the Profile 7/7M CRC over the buffer with the CRC byte
// range skipped.
func CRC64XZ(data []byte, excludeStart, excludeLen int) uint64 {
	crc := crc64.Update(0, xz64Table, data[:excludeStart])
	return crc64.Update(crc, xz64Table, data[excludeStart+excludeLen:])
}
