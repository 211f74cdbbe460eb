package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 5 header layout, relative to the configured byte offset:
//
//	+0  crc      u16 LE, CRC-16/IBM-3740 over the buffer minus this
//	    field, with the Data ID folded in little-endian
//	+2  counter  u8
//
// The Data ID is never transmitted; a stream mismatch surfaces as a CRC
// error. Buffers have a single fixed length.
const (
	profile5HeaderBits = 24
	profile5MaxBits    = 32768
)

// Profile5Config holds the stream parameters for Profile 5. The data
// length and offset are in bits; both must be byte aligned.
type Profile5Config struct {
	// DataID identifies the stream and is folded into the CRC.
	DataID uint16
	// Offset is the bit position of the protection header.
	Offset uint32
	// DataLength is the fixed buffer size in bits.
	DataLength uint32
	// MaxDeltaCounter is the largest counter jump still reported as
	// OK_SOME_LOST.
	MaxDeltaCounter uint8
}

// DefaultProfile5Config returns the Profile 5 parameters with their
// standard default values.
func DefaultProfile5Config() Profile5Config {
	return Profile5Config{
		DataID:          0x1234,
		Offset:          0,
		DataLength:      profile5HeaderBits,
		MaxDeltaCounter: 1,
	}
}

func (c Profile5Config) validate() error {
	if err := validation.MinDataLength(c.DataLength, profile5HeaderBits, profile5MaxBits); err != nil {
		return err
	}
	if err := validation.Aligned(c.Offset, 8, "offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.Offset, c.DataLength, profile5HeaderBits); err != nil {
		return err
	}
	return validation.MaxDeltaCounter(uint32(c.MaxDeltaCounter), counter.Uint8.Max)
}

// Profile5 is a Profile 5 protection engine.
type Profile5 struct {
	cfg         Profile5Config
	counter     uint32
	initialized bool
}

// NewProfile5 validates cfg and returns a fresh engine with its counter at
// zero.
func NewProfile5(cfg Profile5Config) (*Profile5, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile5{cfg: cfg}, nil
}

func (p *Profile5) validateLength(n int) error {
	return validation.DataLengthExact(n, int(p.cfg.DataLength/8))
}

func (p *Profile5) crc(data []byte) uint16 {
	id := []byte{byte(p.cfg.DataID), byte(p.cfg.DataID >> 8)}
	return crcutil.CRC16IBM3740(data, field.ByteOffset(p.cfg.Offset), 2, id)
}

// Protect writes the Profile 5 header into data and advances the counter.
func (p *Profile5) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	off := field.ByteOffset(p.cfg.Offset)
	field.WriteU8(data, off+2, uint8(p.counter))
	field.WriteU16LE(data, off, p.crc(data))
	p.counter = counter.Uint8.Increment(p.counter)
	return nil
}

// Check verifies a received Profile 5 frame and resynchronizes the counter
// to the received value.
func (p *Profile5) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	off := field.ByteOffset(p.cfg.Offset)
	if field.ReadU16LE(data, off) != p.crc(data) {
		return StatusCRCError, nil
	}
	rxCounter := uint32(field.ReadU8(data, off+2))

	status := sequenceStatus(counter.Uint8.Classify(
		p.counter, rxCounter, uint32(p.cfg.MaxDeltaCounter), p.initialized))
	p.counter = rxCounter
	if status.Valid() {
		p.initialized = true
	}
	return status, nil
}
