package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 22 header layout, relative to the configured byte offset:
//
//	+0  crc      u8, CRC-8/AUTOSAR over the buffer minus this field
//	+1  counter  low nibble, high nibble left to the application
//
// The stream is identified by a list of sixteen Data ID bytes; the entry
// selected by the alive counter is folded into the CRC after the payload,
// so each counter value authenticates under a different ID byte. The
// counter wraps after 15 and is incremented before it is written, which
// means the first transmitted frame carries counter one. A repeated
// counter is always reported as REPEATED, even on the first check.
const profile22MaxBits = 32768

// Profile22Config holds the stream parameters for Profile 22. The offset
// and data length are in bits; both must be byte aligned.
type Profile22Config struct {
	// DataIDList maps each counter value to the ID byte folded into the
	// CRC for that cycle.
	DataIDList [16]uint8
	// Offset is the bit position of the protection header.
	Offset uint32
	// DataLength is the fixed buffer size in bits.
	DataLength uint32
	// MaxDeltaCounter is the largest counter jump still reported as
	// OK_SOME_LOST, at most 15.
	MaxDeltaCounter uint8
}

// DefaultProfile22Config returns the Profile 22 parameters with their
// standard default values.
func DefaultProfile22Config() Profile22Config {
	cfg := Profile22Config{
		Offset:          0,
		DataLength:      64,
		MaxDeltaCounter: 1,
	}
	for i := range cfg.DataIDList {
		cfg.DataIDList[i] = uint8(i + 1)
	}
	return cfg
}

func (c Profile22Config) validate() error {
	if err := validation.MinDataLength(c.DataLength, 16, profile22MaxBits); err != nil {
		return err
	}
	if err := validation.MultipleOfByte(c.DataLength, "data length"); err != nil {
		return err
	}
	if err := validation.Aligned(c.Offset, 8, "offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.Offset, c.DataLength, 16); err != nil {
		return err
	}
	return validation.MaxDeltaCounterInclusive(uint32(c.MaxDeltaCounter), counter.Nibble16.Max)
}

// Profile22 is a Profile 22 protection engine.
type Profile22 struct {
	cfg     Profile22Config
	counter uint32
}

// NewProfile22 validates cfg and returns a fresh engine.
func NewProfile22(cfg Profile22Config) (*Profile22, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile22{cfg: cfg}, nil
}

func (p *Profile22) validateLength(n int) error {
	return validation.DataLengthExact(n, int(p.cfg.DataLength/8))
}

func (p *Profile22) crc(data []byte, ctr uint32) uint8 {
	id := []byte{p.cfg.DataIDList[ctr&0x0F]}
	return crcutil.CRC8Autosar(data, field.ByteOffset(p.cfg.Offset), 1, id)
}

// Protect advances the counter, then writes the counter nibble and the CRC
// byte into data.
func (p *Profile22) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	p.counter = counter.Nibble16.Increment(p.counter)
	field.WriteNibble(data, p.cfg.Offset+8, uint8(p.counter))
	field.WriteU8(data, field.ByteOffset(p.cfg.Offset), p.crc(data, p.counter))
	return nil
}

// Check verifies a received Profile 22 frame and resynchronizes the
// counter to the received value. A masqueraded stream surfaces as a CRC
// error because the ID byte only exists inside the digest.
func (p *Profile22) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	rxCounter := uint32(field.ReadNibble(data, p.cfg.Offset+8))
	if field.ReadU8(data, field.ByteOffset(p.cfg.Offset)) != p.crc(data, rxCounter) {
		return StatusCRCError, nil
	}

	status := sequenceStatus(counter.Nibble16.Classify(
		p.counter, rxCounter, uint32(p.cfg.MaxDeltaCounter), true))
	p.counter = rxCounter
	return status, nil
}
