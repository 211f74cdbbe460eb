package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 7M extends the Profile 7 header with the same identification
// word Profile 4M adds to Profile 4, at offset +20.
const profile7mHeaderBytes = 24

// Profile7M is a Profile 7M protection engine. It shares Profile 7's
// configuration; the identification fields of the extended word are
// runtime state, set per message rather than fixed at construction.
type Profile7M struct {
	base *Profile7

	// SourceID identifies the sending entity. Only the low 28 bits are
	// transmitted.
	SourceID uint32
	// MessageType and MessageResult distinguish requests, responses and
	// error responses.
	MessageType   MessageType
	MessageResult MessageResult
}

// NewProfile7M validates cfg and returns a fresh engine with its counter
// at zero and the default source identity.
func NewProfile7M(cfg Profile7Config) (*Profile7M, error) {
	base, err := NewProfile7(cfg)
	if err != nil {
		return nil, err
	}
	return &Profile7M{base: base, SourceID: 0x0A0B0C0D}, nil
}

func (p *Profile7M) validateLength(n int) error {
	if err := p.base.validateLength(n); err != nil {
		return err
	}
	return validation.DataLengthAtLeast(n, field.ByteOffset(p.base.cfg.Offset)+profile7mHeaderBytes)
}

func (p *Profile7M) writeExtension(data []byte) {
	off := field.ByteOffset(p.base.cfg.Offset)
	field.WriteU32BE(data, off+20, p.SourceID&sourceIDMask)
	flags := uint8(p.MessageType&twoBitMask)<<messageTypeShift |
		uint8(p.MessageResult&twoBitMask)<<messageResultShift
	field.WriteMaskedU8(data, off+20, flags, 0xF0)
}

// Protect writes the extended word and the Profile 7 header into data and
// advances the counter.
func (p *Profile7M) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	p.writeExtension(data)
	return p.base.Protect(data)
}

// Check verifies a received Profile 7M frame. The extended word is only
// inspected once the base header has passed.
func (p *Profile7M) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	status, err := p.base.Check(data)
	if err != nil || !status.Valid() {
		return status, err
	}
	off := field.ByteOffset(p.base.cfg.Offset)
	word := field.ReadU32BE(data, off+20)
	flags := field.ReadU8(data, off+20)
	if word&sourceIDMask != p.SourceID {
		return StatusSourceIDError, nil
	}
	if MessageResult(flags>>messageResultShift&twoBitMask) != p.MessageResult {
		return StatusMessageResultError, nil
	}
	if MessageType(flags>>messageTypeShift&twoBitMask) != p.MessageType {
		return StatusMessageTypeError, nil
	}
	return status, nil
}
