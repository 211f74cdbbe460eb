package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 8 header layout, relative to the configured byte offset:
//
//	+0  crc      u32 BE, CRC-32/AUTOSAR over the buffer minus this field
//	+4  length   u32 BE, total buffer length in bytes
//	+8  counter  u32 BE
//	+12 data id  u32 BE
const (
	profile8HeaderBits = 128
	profile8DefaultMax = 0xFFFFFFFF
)

// Profile8Config holds the stream parameters for Profile 8. Lengths and
// the offset are in bits; the offset must be byte aligned.
type Profile8Config struct {
	// DataID identifies the stream and is transmitted in the header.
	DataID uint32
	// Offset is the bit position of the protection header.
	Offset uint32
	// MinDataLength and MaxDataLength bound the accepted buffer size.
	MinDataLength uint32
	MaxDataLength uint32
	// MaxDeltaCounter is the largest counter jump still reported as
	// OK_SOME_LOST.
	MaxDeltaCounter uint32
}

// DefaultProfile8Config returns the Profile 8 parameters with their
// standard default values.
func DefaultProfile8Config() Profile8Config {
	return Profile8Config{
		DataID:          0x0A0B0C0D,
		Offset:          0,
		MinDataLength:   profile8HeaderBits,
		MaxDataLength:   profile8DefaultMax,
		MaxDeltaCounter: 1,
	}
}

func (c Profile8Config) validate() error {
	if err := validation.MinDataLengthAtLeast(c.MinDataLength, profile8HeaderBits); err != nil {
		return err
	}
	if err := validation.MaxDataLength(c.MaxDataLength, c.MinDataLength); err != nil {
		return err
	}
	if err := validation.Aligned(c.Offset, 8, "offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.Offset, c.MinDataLength, profile8HeaderBits); err != nil {
		return err
	}
	return validation.MaxDeltaCounter(c.MaxDeltaCounter, counter.Uint32.Max)
}

// Profile8 is a Profile 8 protection engine.
type Profile8 struct {
	cfg         Profile8Config
	counter     uint32
	initialized bool
}

// NewProfile8 validates cfg and returns a fresh engine with its counter at
// zero.
func NewProfile8(cfg Profile8Config) (*Profile8, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile8{cfg: cfg}, nil
}

func (p *Profile8) validateLength(n int) error {
	return validation.DataLengthRange(n, int(p.cfg.MinDataLength/8), int(p.cfg.MaxDataLength/8))
}

// Protect writes the Profile 8 header into data and advances the counter.
func (p *Profile8) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	off := field.ByteOffset(p.cfg.Offset)
	field.WriteU32BE(data, off+4, uint32(len(data)))
	field.WriteU32BE(data, off+8, p.counter)
	field.WriteU32BE(data, off+12, p.cfg.DataID)
	crc := crcutil.CRC32Autosar(data, off, 4)
	field.WriteU32BE(data, off, crc)
	p.counter = counter.Uint32.Increment(p.counter)
	return nil
}

// Check verifies a received Profile 8 frame and resynchronizes the counter
// to the received value.
func (p *Profile8) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	off := field.ByteOffset(p.cfg.Offset)
	rxCRC := field.ReadU32BE(data, off)
	rxLength := field.ReadU32BE(data, off+4)
	rxCounter := field.ReadU32BE(data, off+8)
	rxID := field.ReadU32BE(data, off+12)

	if rxCRC != crcutil.CRC32Autosar(data, off, 4) {
		return StatusCRCError, nil
	}
	if rxID != p.cfg.DataID {
		return StatusDataIDError, nil
	}
	if int(rxLength) != len(data) {
		return StatusDataLengthError, nil
	}

	status := sequenceStatus(counter.Uint32.Classify(
		p.counter, rxCounter, p.cfg.MaxDeltaCounter, p.initialized))
	p.counter = rxCounter
	if status.Valid() {
		p.initialized = true
	}
	return status, nil
}
