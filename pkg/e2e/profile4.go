package e2e

import (
	"fmt"

	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 4 header layout, relative to the configured byte offset:
//
//	+0  length   u16 BE, total buffer length in bytes
//	+2  counter  u16 BE
//	+4  data id  u32 BE
//	+8  crc      u32 BE, CRC-32/AUTOSAR over the buffer minus this field
const (
	profile4HeaderBits  = 96
	profile4HeaderBytes = profile4HeaderBits / 8
	profile4MaxBits     = 32768
)

// Profile4Config holds the stream parameters for Profile 4. Lengths and the
// offset are in bits; the offset must be byte aligned.
type Profile4Config struct {
	// DataID identifies the stream and is transmitted in the header.
	DataID uint32
	// Offset is the bit position of the protection header.
	Offset uint32
	// MinDataLength and MaxDataLength bound the accepted buffer size.
	MinDataLength uint32
	MaxDataLength uint32
	// MaxDeltaCounter is the largest counter jump still reported as
	// OK_SOME_LOST.
	MaxDeltaCounter uint16
}

// DefaultProfile4Config returns the Profile 4 parameters with their
// standard default values.
func DefaultProfile4Config() Profile4Config {
	return Profile4Config{
		DataID:          0x0A0B0C0D,
		Offset:          0,
		MinDataLength:   profile4HeaderBits,
		MaxDataLength:   profile4MaxBits,
		MaxDeltaCounter: 1,
	}
}

func (c Profile4Config) validate() error {
	if err := validation.MinDataLength(c.MinDataLength, profile4HeaderBits, profile4MaxBits); err != nil {
		return err
	}
	if err := validation.MaxDataLength(c.MaxDataLength, c.MinDataLength); err != nil {
		return err
	}
	if c.MaxDataLength > profile4MaxBits {
		return fmt.Errorf("%w: max data length %d bits above %d",
			ErrInvalidConfig, c.MaxDataLength, profile4MaxBits)
	}
	if err := validation.Aligned(c.Offset, 8, "offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.Offset, c.MinDataLength, profile4HeaderBits); err != nil {
		return err
	}
	return validation.MaxDeltaCounter(uint32(c.MaxDeltaCounter), counter.Uint16.Max)
}

// Profile4 is a Profile 4 protection engine. It carries the alive counter
// for one direction of one stream.
type Profile4 struct {
	cfg         Profile4Config
	counter     uint32
	initialized bool
}

// NewProfile4 validates cfg and returns a fresh engine with its counter at
// zero.
func NewProfile4(cfg Profile4Config) (*Profile4, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile4{cfg: cfg}, nil
}

func (p *Profile4) validateLength(n int) error {
	return validation.DataLengthRange(n, int(p.cfg.MinDataLength/8), int(p.cfg.MaxDataLength/8))
}

// Protect writes the Profile 4 header into data and advances the counter.
func (p *Profile4) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	off := field.ByteOffset(p.cfg.Offset)
	field.WriteU16BE(data, off, uint16(len(data)))
	field.WriteU16BE(data, off+2, uint16(p.counter))
	field.WriteU32BE(data, off+4, p.cfg.DataID)
	crc := crcutil.CRC32Autosar(data, off+8, 4)
	field.WriteU32BE(data, off+8, crc)
	p.counter = counter.Uint16.Increment(p.counter)
	return nil
}

// Check verifies a received Profile 4 frame and resynchronizes the counter
// to the received value.
func (p *Profile4) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	off := field.ByteOffset(p.cfg.Offset)
	rxLength := field.ReadU16BE(data, off)
	rxCounter := uint32(field.ReadU16BE(data, off+2))
	rxID := field.ReadU32BE(data, off+4)
	rxCRC := field.ReadU32BE(data, off+8)

	if rxCRC != crcutil.CRC32Autosar(data, off+8, 4) {
		return StatusCRCError, nil
	}
	if rxID != p.cfg.DataID {
		return StatusDataIDError, nil
	}
	if int(rxLength) != len(data) {
		return StatusDataLengthError, nil
	}

	status := sequenceStatus(counter.Uint16.Classify(
		p.counter, rxCounter, uint32(p.cfg.MaxDeltaCounter), p.initialized))
	p.counter = rxCounter
	if status.Valid() {
		p.initialized = true
	}
	return status, nil
}
