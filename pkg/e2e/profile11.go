package e2e

import (
	"fmt"

	"github.com/embedsafe/e2e-go/pkg/internal/counter"
	"github.com/embedsafe/e2e-go/pkg/internal/crcutil"
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 11 protects short fixed-size frames, at most 30 bytes. Its
// fields are placed by individual bit offsets rather than one header block:
// a CRC-8/SAE-J1850 byte, a four-bit alive counter, and, in nibble mode, a
// four-bit slice of the Data ID. The counter wraps after 14.

// DataIDMode selects how Profile 11 conveys the Data ID.
type DataIDMode int

const (
	// DataIDModeBoth folds both Data ID bytes into the CRC; nothing is
	// transmitted.
	DataIDModeBoth DataIDMode = iota
	// DataIDModeNibble folds the low byte into the CRC and transmits the
	// low nibble of the high byte explicitly.
	DataIDModeNibble
)

const profile11MaxBits = 240

// Profile11Config holds the stream parameters for Profile 11. Offsets and
// the data length are in bits.
type Profile11Config struct {
	// DataID identifies the stream, at most 12 bits in nibble mode.
	DataID uint16
	// DataIDMode selects how DataID is conveyed.
	DataIDMode DataIDMode
	// CounterOffset is the bit position of the alive counter nibble.
	CounterOffset uint32
	// CRCOffset is the bit position of the CRC byte.
	CRCOffset uint32
	// NibbleOffset is the bit position of the transmitted Data ID nibble,
	// used in nibble mode only.
	NibbleOffset uint32
	// DataLength is the fixed buffer size in bits.
	DataLength uint32
	// MaxDeltaCounter is the largest counter jump still reported as
	// OK_SOME_LOST, at most 14.
	MaxDeltaCounter uint8
}

// DefaultProfile11Config returns the Profile 11 parameters with their
// standard default values.
func DefaultProfile11Config() Profile11Config {
	return Profile11Config{
		DataID:          0x123,
		DataIDMode:      DataIDModeNibble,
		CounterOffset:   8,
		CRCOffset:       0,
		NibbleOffset:    12,
		DataLength:      64,
		MaxDeltaCounter: 1,
	}
}

func (c Profile11Config) validate() error {
	if c.DataIDMode != DataIDModeBoth && c.DataIDMode != DataIDModeNibble {
		return fmt.Errorf("%w: unknown data id mode %d", ErrInvalidConfig, c.DataIDMode)
	}
	if err := validation.MinDataLength(c.DataLength, 8, profile11MaxBits); err != nil {
		return err
	}
	if err := validation.MultipleOfByte(c.DataLength, "data length"); err != nil {
		return err
	}
	if err := validation.Aligned(c.CRCOffset, 8, "crc offset"); err != nil {
		return err
	}
	if err := validation.Aligned(c.CounterOffset, 4, "counter offset"); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.CRCOffset, c.DataLength, 8); err != nil {
		return err
	}
	if err := validation.OffsetWithinData(c.CounterOffset, c.DataLength, 4); err != nil {
		return err
	}
	if c.DataIDMode == DataIDModeNibble {
		if err := validation.Aligned(c.NibbleOffset, 4, "nibble offset"); err != nil {
			return err
		}
		if err := validation.OffsetWithinData(c.NibbleOffset, c.DataLength, 4); err != nil {
			return err
		}
		if c.DataID > 0x0FFF {
			return fmt.Errorf("%w: data id %#x wider than 12 bits in nibble mode",
				ErrInvalidConfig, c.DataID)
		}
	}
	return validation.MaxDeltaCounterInclusive(uint32(c.MaxDeltaCounter), counter.Nibble15.Max)
}

// Profile11 is a Profile 11 protection engine.
type Profile11 struct {
	cfg         Profile11Config
	counter     uint32
	initialized bool
}

// NewProfile11 validates cfg and returns a fresh engine with its counter
// at zero.
func NewProfile11(cfg Profile11Config) (*Profile11, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Profile11{cfg: cfg}, nil
}

func (p *Profile11) validateLength(n int) error {
	return validation.DataLengthExact(n, int(p.cfg.DataLength/8))
}

// idBytes are the Data ID context bytes fed to the CRC ahead of the
// payload. In nibble mode the high byte is replaced by zero because its
// low nibble travels in the frame instead.
func (p *Profile11) idBytes() []byte {
	if p.cfg.DataIDMode == DataIDModeNibble {
		return []byte{byte(p.cfg.DataID), 0x00}
	}
	return []byte{byte(p.cfg.DataID), byte(p.cfg.DataID >> 8)}
}

func (p *Profile11) crc(data []byte) uint8 {
	return crcutil.CRC8SAEJ1850(p.idBytes(), data, field.ByteOffset(p.cfg.CRCOffset), 1)
}

// Protect writes the counter nibble, the Data ID nibble in nibble mode,
// and the CRC byte into data, then advances the counter.
func (p *Profile11) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	field.WriteNibble(data, p.cfg.CounterOffset, uint8(p.counter))
	if p.cfg.DataIDMode == DataIDModeNibble {
		field.WriteNibble(data, p.cfg.NibbleOffset, uint8(p.cfg.DataID>>8))
	}
	field.WriteU8(data, field.ByteOffset(p.cfg.CRCOffset), p.crc(data))
	p.counter = counter.Nibble15.Increment(p.counter)
	return nil
}

// Check verifies a received Profile 11 frame and resynchronizes the
// counter to the received value.
func (p *Profile11) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	if field.ReadU8(data, field.ByteOffset(p.cfg.CRCOffset)) != p.crc(data) {
		return StatusCRCError, nil
	}
	if p.cfg.DataIDMode == DataIDModeNibble {
		want := uint8(p.cfg.DataID>>8) & 0x0F
		if field.ReadNibble(data, p.cfg.NibbleOffset) != want {
			return StatusDataIDError, nil
		}
	}
	rxCounter := uint32(field.ReadNibble(data, p.cfg.CounterOffset))

	status := sequenceStatus(counter.Nibble15.Classify(
		p.counter, rxCounter, uint32(p.cfg.MaxDeltaCounter), p.initialized))
	p.counter = rxCounter
	if status.Valid() {
		p.initialized = true
	}
	return status, nil
}
