package e2e

import (
	"errors"
	"testing"
)

// TestProfile11_KnownVectorsNibble tests the default nibble-mode
// configuration against the reference bytes for two consecutive frames.
func TestProfile11_KnownVectorsNibble(t *testing.T) {
	tx, err := NewProfile11(DefaultProfile11Config())
	if err != nil {
		t.Fatalf("NewProfile11() error = %v", err)
	}
	rx, _ := NewProfile11(DefaultProfile11Config())

	want := []struct{ crc, nibbles uint8 }{
		{0x2A, 0x10},
		{0x77, 0x11},
	}
	for i, w := range want {
		data := make([]byte, 8)
		if err := tx.Protect(data); err != nil {
			t.Fatalf("Protect() #%d error = %v", i, err)
		}
		if data[0] != w.crc || data[1] != w.nibbles {
			t.Errorf("frame %d header = % X, expected %02X %02X", i, data[:2], w.crc, w.nibbles)
		}
		if status, _ := rx.Check(data); status != StatusOK {
			t.Errorf("Check() #%d = %v, expected %v", i, status, StatusOK)
		}
	}
}

// TestProfile11_KnownVectorsBoth tests both-mode framing, where no Data ID
// nibble is transmitted.
func TestProfile11_KnownVectorsBoth(t *testing.T) {
	cfg := DefaultProfile11Config()
	cfg.DataIDMode = DataIDModeBoth

	tx, err := NewProfile11(cfg)
	if err != nil {
		t.Fatalf("NewProfile11() error = %v", err)
	}
	rx, _ := NewProfile11(cfg)

	want := []struct{ crc, counter uint8 }{
		{0xCC, 0x00},
		{0x91, 0x01},
	}
	for i, w := range want {
		data := make([]byte, 8)
		if err := tx.Protect(data); err != nil {
			t.Fatalf("Protect() #%d error = %v", i, err)
		}
		if data[0] != w.crc || data[1] != w.counter {
			t.Errorf("frame %d header = % X, expected %02X %02X", i, data[:2], w.crc, w.counter)
		}
		if status, _ := rx.Check(data); status != StatusOK {
			t.Errorf("Check() #%d = %v, expected %v", i, status, StatusOK)
		}
	}
}

// TestProfile11_OffsetFields places every field in the second half of a
// 16-byte buffer.
func TestProfile11_OffsetFields(t *testing.T) {
	cfg := DefaultProfile11Config()
	cfg.CRCOffset = 64
	cfg.CounterOffset = 72
	cfg.NibbleOffset = 76
	cfg.DataLength = 128

	tx, err := NewProfile11(cfg)
	if err != nil {
		t.Fatalf("NewProfile11() error = %v", err)
	}
	rx, _ := NewProfile11(cfg)

	data := make([]byte, 16)
	if err := tx.Protect(data); err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	if data[8] != 0x7D || data[9] != 0x10 {
		t.Errorf("header bytes = % X, expected 7D 10", data[8:10])
	}
	if status, _ := rx.Check(data); status != StatusOK {
		t.Errorf("Check() = %v, expected %v", status, StatusOK)
	}
}

// TestProfile11_CounterWrap runs the counter past its 0..14 range and
// checks every frame stays in sequence across the wrap.
func TestProfile11_CounterWrap(t *testing.T) {
	tx, _ := NewProfile11(DefaultProfile11Config())
	rx, _ := NewProfile11(DefaultProfile11Config())

	for i := 0; i < 16; i++ {
		data := make([]byte, 8)
		if err := tx.Protect(data); err != nil {
			t.Fatalf("Protect() #%d error = %v", i, err)
		}
		wantCounter := uint8(i % 15)
		if got := data[1] & 0x0F; got != wantCounter {
			t.Errorf("frame %d counter = %d, expected %d", i, got, wantCounter)
		}
		if status, _ := rx.Check(data); status != StatusOK {
			t.Errorf("Check() #%d = %v, expected %v", i, status, StatusOK)
		}
	}
}

// TestProfile11_TamperDetection flips a payload bit.
func TestProfile11_TamperDetection(t *testing.T) {
	tx, _ := NewProfile11(DefaultProfile11Config())
	rx, _ := NewProfile11(DefaultProfile11Config())

	data := make([]byte, 8)
	tx.Protect(data)
	data[5] ^= 0x01

	if status, _ := rx.Check(data); status != StatusCRCError {
		t.Errorf("Check() = %v, expected %v", status, StatusCRCError)
	}
}

// TestProfile11_NoResyncOnCRCError delivers a corrupted frame between two
// good ones. The rejected frame must not move the receiver's counter, so
// the retransmitted original still verifies as OK rather than REPEATED.
func TestProfile11_NoResyncOnCRCError(t *testing.T) {
	tx, _ := NewProfile11(DefaultProfile11Config())
	rx, _ := NewProfile11(DefaultProfile11Config())

	first := make([]byte, 8)
	if err := tx.Protect(first); err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	if status, _ := rx.Check(first); status != StatusOK {
		t.Fatalf("first Check() = %v, expected %v", status, StatusOK)
	}

	second := make([]byte, 8)
	if err := tx.Protect(second); err != nil {
		t.Fatalf("Protect() error = %v", err)
	}
	tampered := make([]byte, len(second))
	copy(tampered, second)
	tampered[6] ^= 0x01

	if status, _ := rx.Check(tampered); status != StatusCRCError {
		t.Fatalf("tampered Check() = %v, expected %v", status, StatusCRCError)
	}
	if status, _ := rx.Check(second); status != StatusOK {
		t.Errorf("retransmitted Check() = %v, expected %v", status, StatusOK)
	}
}

// TestProfile11_NibbleMismatch forges the transmitted Data ID nibble with
// a restamped CRC, which the receiver must reject as a Data ID fault.
func TestProfile11_NibbleMismatch(t *testing.T) {
	txCfg := DefaultProfile11Config()
	txCfg.DataID = 0x0223

	tx, _ := NewProfile11(txCfg)
	rx, _ := NewProfile11(DefaultProfile11Config())

	data := make([]byte, 8)
	tx.Protect(data)

	// Identical low byte keeps the CRC context equal, so only the
	// transmitted nibble differs.
	if status, _ := rx.Check(data); status != StatusDataIDError {
		t.Errorf("Check() = %v, expected %v", status, StatusDataIDError)
	}
}

// TestProfile11_BothModeIDMismatch pairs both-mode engines with different
// Data IDs, which surfaces as a CRC fault.
func TestProfile11_BothModeIDMismatch(t *testing.T) {
	txCfg := DefaultProfile11Config()
	txCfg.DataIDMode = DataIDModeBoth
	rxCfg := txCfg
	rxCfg.DataID = 0x456

	tx, _ := NewProfile11(txCfg)
	rx, _ := NewProfile11(rxCfg)

	data := make([]byte, 8)
	tx.Protect(data)

	if status, _ := rx.Check(data); status != StatusCRCError {
		t.Errorf("Check() = %v, expected %v", status, StatusCRCError)
	}
}

// TestProfile11_SequenceClassification drops frames between deliveries and
// checks the loss classification.
func TestProfile11_SequenceClassification(t *testing.T) {
	tests := []struct {
		name     string
		skipped  int
		maxDelta uint8
		want     Status
	}{
		{"Single loss within delta", 1, 3, StatusOKSomeLost},
		{"Loss at delta limit", 2, 3, StatusOKSomeLost},
		{"Loss beyond delta", 3, 1, StatusWrongSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProfile11Config()
			cfg.MaxDeltaCounter = tt.maxDelta

			tx, _ := NewProfile11(cfg)
			rx, _ := NewProfile11(cfg)

			data := make([]byte, 8)
			tx.Protect(data)
			if status, _ := rx.Check(data); status != StatusOK {
				t.Fatalf("first Check() = %v, expected %v", status, StatusOK)
			}
			for i := 0; i < tt.skipped; i++ {
				tx.Protect(make([]byte, 8))
			}
			tx.Protect(data)
			if status, _ := rx.Check(data); status != tt.want {
				t.Errorf("Check() after %d skipped = %v, expected %v", tt.skipped, status, tt.want)
			}
		})
	}
}

// TestProfile11_Repeated delivers the same frame twice.
func TestProfile11_Repeated(t *testing.T) {
	tx, _ := NewProfile11(DefaultProfile11Config())
	rx, _ := NewProfile11(DefaultProfile11Config())

	data := make([]byte, 8)
	tx.Protect(data)
	if status, _ := rx.Check(data); status != StatusOK {
		t.Fatalf("first Check() = %v, expected %v", status, StatusOK)
	}
	if status, _ := rx.Check(data); status != StatusRepeated {
		t.Errorf("second Check() = %v, expected %v", status, StatusRepeated)
	}
}

// TestProfile11_LengthMismatch rejects buffers that are not exactly the
// configured size.
func TestProfile11_LengthMismatch(t *testing.T) {
	p, _ := NewProfile11(DefaultProfile11Config())

	for _, n := range []int{0, 7, 9} {
		if err := p.Protect(make([]byte, n)); !errors.Is(err, ErrInvalidDataFormat) {
			t.Errorf("Protect() with %d bytes error = %v, expected ErrInvalidDataFormat", n, err)
		}
		if _, err := p.Check(make([]byte, n)); !errors.Is(err, ErrInvalidDataFormat) {
			t.Errorf("Check() with %d bytes error = %v, expected ErrInvalidDataFormat", n, err)
		}
	}
}

// TestProfile11_ConfigValidation tests construction-time rejection.
func TestProfile11_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile11Config)
		wantErr bool
	}{
		{"Defaults accepted", func(c *Profile11Config) {}, false},
		{"Delta at counter range", func(c *Profile11Config) { c.MaxDeltaCounter = 14 }, false},
		{"Delta past counter range", func(c *Profile11Config) { c.MaxDeltaCounter = 15 }, true},
		{"Zero delta", func(c *Profile11Config) { c.MaxDeltaCounter = 0 }, true},
		{"Length above 240 bits", func(c *Profile11Config) { c.DataLength = 248 }, true},
		{"Length not whole bytes", func(c *Profile11Config) { c.DataLength = 60 }, true},
		{"Misaligned crc offset", func(c *Profile11Config) { c.CRCOffset = 4 }, true},
		{"Misaligned counter offset", func(c *Profile11Config) { c.CounterOffset = 10 }, true},
		{"Misaligned nibble offset", func(c *Profile11Config) { c.NibbleOffset = 13 }, true},
		{"Counter past data end", func(c *Profile11Config) { c.CounterOffset = 64 }, true},
		{"Wide data id in nibble mode", func(c *Profile11Config) { c.DataID = 0x1234 }, true},
		{
			"Wide data id in both mode",
			func(c *Profile11Config) { c.DataID = 0x1234; c.DataIDMode = DataIDModeBoth },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProfile11Config()
			tt.mutate(&cfg)
			_, err := NewProfile11(cfg)
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewProfile11() error = %v, expected ErrInvalidConfig", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("NewProfile11() error = %v, expected nil", err)
			}
		})
	}
}
