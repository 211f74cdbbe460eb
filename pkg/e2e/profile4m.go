package e2e

import (
	"github.com/embedsafe/e2e-go/pkg/internal/field"
	"github.com/embedsafe/e2e-go/pkg/internal/validation"
)

// Profile 4M extends the Profile 4 header with one more word:
//
//	+12 source  u32 BE: bits 31-30 message type, bits 29-28 message
//	    result, bits 27-0 source identifier
//
// The word sits inside the CRC coverage, so Protect writes it before
// stamping the base header.
const (
	profile4mHeaderBytes = 16

	sourceIDMask       = 0x0FFFFFFF
	messageTypeShift   = 6
	messageResultShift = 4
	twoBitMask         = 0x03
)

// MessageType is the two-bit message kind carried by Profiles 4M and 7M.
type MessageType uint8

const (
	MessageTypeRequest  MessageType = 0
	MessageTypeResponse MessageType = 1
)

// MessageResult is the two-bit outcome carried by Profiles 4M and 7M.
type MessageResult uint8

const (
	MessageResultOK    MessageResult = 0
	MessageResultError MessageResult = 1
)

// Profile4M is a Profile 4M protection engine. It shares Profile 4's
// configuration; the identification fields of the extended word are
// runtime state, set per message rather than fixed at construction.
type Profile4M struct {
	base *Profile4

	// SourceID identifies the sending entity. Only the low 28 bits are
	// transmitted.
	SourceID uint32
	// MessageType and MessageResult distinguish requests, responses and
	// error responses.
	MessageType   MessageType
	MessageResult MessageResult
}

// NewProfile4M validates cfg and returns a fresh engine with its counter at
// zero and the default source identity.
func NewProfile4M(cfg Profile4Config) (*Profile4M, error) {
	base, err := NewProfile4(cfg)
	if err != nil {
		return nil, err
	}
	return &Profile4M{base: base, SourceID: 0x0A0B0C0D}, nil
}

// validateLength additionally requires room for the extended word, which
// sits past the Profile 4 header.
func (p *Profile4M) validateLength(n int) error {
	if err := p.base.validateLength(n); err != nil {
		return err
	}
	return validation.DataLengthAtLeast(n, field.ByteOffset(p.base.cfg.Offset)+profile4mHeaderBytes)
}

func (p *Profile4M) writeExtension(data []byte) {
	off := field.ByteOffset(p.base.cfg.Offset)
	field.WriteU32BE(data, off+12, p.SourceID&sourceIDMask)
	flags := uint8(p.MessageType&twoBitMask)<<messageTypeShift |
		uint8(p.MessageResult&twoBitMask)<<messageResultShift
	field.WriteMaskedU8(data, off+12, flags, 0xF0)
}

// Protect writes the extended word and the Profile 4 header into data and
// advances the counter.
func (p *Profile4M) Protect(data []byte) error {
	if err := p.validateLength(len(data)); err != nil {
		return err
	}
	p.writeExtension(data)
	return p.base.Protect(data)
}

// Check verifies a received Profile 4M frame. The extended word is only
// inspected once the base header has passed, so its errors never mask a
// CRC or sequence problem.
func (p *Profile4M) Check(data []byte) (Status, error) {
	if err := p.validateLength(len(data)); err != nil {
		return 0, err
	}
	status, err := p.base.Check(data)
	if err != nil || !status.Valid() {
		return status, err
	}
	off := field.ByteOffset(p.base.cfg.Offset)
	word := field.ReadU32BE(data, off+12)
	flags := field.ReadU8(data, off+12)
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
