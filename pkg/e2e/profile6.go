package e2e

import (
	"fmt"

	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 6 header layout, relative to the configured byte offset:
//
//	+0  crc      u16 BE, CRC-16/IBM-3740 over the buffer minus this
//	    field, with the Data ID folded in big-endian
//	+2  length   u16 BE, total buffer length in bytes
//	+4  counter  u8
//
// Like Profile 5 the Data ID is folded into the CRC rather than
// transmitted, but the buffer length may vary within the configured range.
const (
	profile6HeaderBits = 40
	profile6MaxBits    = 32768
)

// Profile6Config holds the stream parameters for Profile 6. Lengths and
// the offset are in bits; the offset must be byte aligned.
type Profile6Config struct {
	// DataID identifies the stream and is folded into the CRC.
	DataID uint16
	// Offset is the bit position of the protection header.
	Offset uint32
	// MinDataLength and MaxDataLength bound the accepted buffer size.
	MinDataLength uint32
	MaxDataLength uint32
	// MaxDeltaCounter is the largest counter jump still reported as
	// OK_SOME_LOST.
	MaxDeltaCounter uint8
}

// DefaultProfile6Config returns the Profile 6 parameters with their
// standard default values.
func DefaultProfile6Config() Profile6Config {
	return Profile6Config{
		DataID:          0x1234,
		Offset:          0,
		MinDataLength:   profile6HeaderBits,
		MaxDataLength:   profile6MaxBits,
		MaxDeltaCounter: 1,
	}
}

func (c Profile6Config) validate() error {
	if err := validation.MinDataLength(c.MinDataLength, profile6HeaderBits, profile6MaxBits); err != nil {
		return err
	}
	if err := validation.MaxDataLength(c.MaxDataLength, c.MinDataLength); err != nil {
		return err
	}
	if c.MaxDataLength > profile6MaxBits {
		return fmt.Errorf("%w: max data length %d bits above %d",
			ErrInvalidConfig, c.MaxDataLength, profile6MaxBits)
	}
	if err := validation.Aligned(c.Offset, 8, "offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.Offset, c.MinDataLength, profile6HeaderBits); err != nil {
		return err
	}
	return validation.MaxDeltaCounter(uint32(c.MaxDeltaCounter), counter.Uint8.Max)
}

// Profile6 is a Profile 6 protection engine.
type Profile6 struct {
	cfg         Profile6Config
	counter     uint32
	initialized bool
}

// NewProfile6 validates cfg and returns a fresh engine with its counter at
// zero.
func NewProfile6(cfg Profile6Config) (*Profile6, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile6{cfg: cfg}, nil
}

func (p *Profile6) validateLength(n int) error {
	return validation.DataLengthRange(n, int(p.cfg.MinDataLength/8), int(p.cfg.MaxDataLength/8))
}

func (p *Profile6) crc(data []byte) uint16 {
	id := []byte{byte(p.cfg.DataID >> 8), byte(p.cfg.DataID)}
	return crcutil.CRC16IBM3740(data, field.ByteOffset(p.cfg.Offset), 2, id)
}

// Protect writes the Profile 6 header into data and advances the counter.
func (p *Profile6) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	off := field.ByteOffset(p.cfg.Offset)
	field.WriteU16BE(data, off+2, uint16(len(data)))
	field.WriteU8(data, off+4, uint8(p.counter))
	field.WriteU16BE(data, off, p.crc(data))
	p.counter = counter.Uint8.Increment(p.counter)
	return nil
}

// Check verifies a received Profile 6 frame and resynchronizes the counter
// to the received value.
func (p *Profile6) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	off := field.ByteOffset(p.cfg.Offset)
	if field.ReadU16BE(data, off) != p.crc(data) {
		return StatusCRCError, nil
	}
	if int(field.ReadU16BE(data, off+2)) != len(data) {
		return StatusDataLengthError, nil
	}
	rxCounter := uint32(field.ReadU8(data, off+4))

	status := sequenceStatus(counter.Uint8.Classify(
		p.counter, rxCounter, uint32(p.cfg.MaxDeltaCounter), p.initialized))
	p.counter = rxCounter
	if status.Valid() {
		p.initialized = true
	}
	return status, nil
}
