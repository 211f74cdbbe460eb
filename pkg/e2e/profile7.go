package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 7 header layout, relative to the configured byte offset:
//
//	+0  crc      u64 BE, CRC-64/XZ over the buffer minus this field
//	+8  length   u32 BE, total buffer length in bytes
//	+12 counter  u32 BE
//	+16 data id  u32 BE
//
// Profile 7 targets large payloads; unlike Profiles 4 through 6 its
// maximum length is bounded only by the configuration.
const (
	profile7HeaderBits = 160
	profile7DefaultMax = 32768
)

// Profile7Config holds the stream parameters for Profile 7. Lengths and
// the offset are in bits; the offset must be byte aligned.
type Profile7Config struct {
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

// DefaultProfile7Config returns the Profile 7 parameters with their
// standard default values.
func DefaultProfile7Config() Profile7Config {
	return Profile7Config{
		DataID:          0x0A0B0C0D,
		Offset:          0,
		MinDataLength:   profile7HeaderBits,
		MaxDataLength:   profile7DefaultMax,
		MaxDeltaCounter: 1,
	}
}

func (c Profile7Config) validate() error {
	if err := validation.MinDataLengthAtLeast(c.MinDataLength, profile7HeaderBits); err != nil {
		return err
	}
	if err := validation.MaxDataLength(c.MaxDataLength, c.MinDataLength); err != nil {
		return err
	}
	if err := validation.Aligned(c.Offset, 8, "offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.Offset, c.MinDataLength, profile7HeaderBits); err != nil {
		return err
	}
	return validation.MaxDeltaCounter(c.MaxDeltaCounter, counter.Uint32.Max)
}

// Profile7 is a Profile 7 protection engine.
type Profile7 struct {
	cfg         Profile7Config
	counter     uint32
	initialized bool
}

// NewProfile7 validates cfg and returns a fresh engine with its counter at
// zero.
func NewProfile7(cfg Profile7Config) (*Profile7, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile7{cfg: cfg}, nil
}

func (p *Profile7) validateLength(n int) error {
	return validation.DataLengthRange(n, int(p.cfg.MinDataLength/8), int(p.cfg.MaxDataLength/8))
}

// Protect writes the Profile 7 header into data and advances the counter.
func (p *Profile7) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	off := field.ByteOffset(p.cfg.Offset)
	field.WriteU32BE(data, off+8, uint32(len(data)))
	field.WriteU32BE(data, off+12, p.counter)
	field.WriteU32BE(data, off+16, p.cfg.DataID)
	crc := crcutil.CRC64XZ(data, off, 8)
	field.WriteU64BE(data, off, crc)
	p.counter = counter.Uint32.Increment(p.counter)
	return nil
}

// Check verifies a received Profile 7 frame and resynchronizes the counter
// to the received value.
func (p *Profile7) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	off := field.ByteOffset(p.cfg.Offset)
	rxCRC := field.ReadU64BE(data, off)
	rxLength := field.ReadU32BE(data, off+8)
	rxCounter := field.ReadU32BE(data, off+12)
	rxID := field.ReadU32BE(data, off+16)

	if rxCRC != crcutil.CRC64XZ(data, off, 8) {
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
