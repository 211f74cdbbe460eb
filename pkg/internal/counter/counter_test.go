package counter

import "testing"

// TestIncrement_Wraparound tests that each domain wraps to zero past its
// maximum.
func TestIncrement_Wraparound(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
	}{
		{"Nibble15", Nibble15},
		{"Nibble16", Nibble16},
		{"Uint8", Uint8},
		{"Uint16", Uint16},
		{"Uint32", Uint32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.domain.Increment(0); got != 1 {
				t.Errorf("Increment(0) = %d, expected 1", got)
			}
			if got := tt.domain.Increment(tt.domain.Max); got != 0 {
				t.Errorf("Increment(%d) = %d, expected 0", tt.domain.Max, got)
			}
			if got := tt.domain.Increment(tt.domain.Max - 1); got != tt.domain.Max {
				t.Errorf("Increment(%d) = %d, expected %d", tt.domain.Max-1, got, tt.domain.Max)
			}
		})
	}
}

// TestDelta tests forward circular distance across the wrap point.
func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		domain   Domain
		previous uint32
		received uint32
		expected uint32
	}{
		{"Equal", Uint8, 5, 5, 0},
		{"Forward one", Uint8, 5, 6, 1},
		{"Forward many", Uint8, 5, 250, 245},
		{"Wrapped u8", Uint8, 0xFF, 0, 1},
		{"Wrapped u8 with gap", Uint8, 0xFE, 2, 4},
		{"Wrapped nibble15", Nibble15, 14, 0, 1},
		{"Wrapped nibble16", Nibble16, 15, 0, 1},
		{"Wrapped u16", Uint16, 0xFFFF, 1, 2},
		{"Wrapped u32", Uint32, 0xFFFFFFFF, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.domain.Delta(tt.previous, tt.received); got != tt.expected {
				t.Errorf("Delta(%d, %d) = %d, expected %d",
					tt.previous, tt.received, got, tt.expected)
			}
		})
	}
}

// TestClassify tests the sequence verdict for each delta band.
func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		previous    uint32
		received    uint32
		maxDelta    uint32
		initialized bool
		expected    Classification
	}{
		{"First frame, no movement", 0, 0, 1, false, InSequence},
		{"Duplicate once initialized", 7, 7, 1, true, Duplicate},
		{"Next in sequence", 7, 8, 1, true, InSequence},
		{"Next in sequence, uninitialized", 0, 1, 1, false, InSequence},
		{"Gap within tolerance", 7, 10, 3, true, SomeLost},
		{"Gap at tolerance", 7, 10, 3, true, SomeLost},
		{"Gap past tolerance", 7, 11, 3, true, OutOfSequence},
		{"Backwards", 7, 6, 3, true, OutOfSequence},
		{"In sequence across wrap", 0xFF, 0, 1, true, InSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Uint8.Classify(tt.previous, tt.received, tt.maxDelta, tt.initialized)
			if got != tt.expected {
				t.Errorf("Classify(%d, %d, %d, %v) = %v, expected %v",
					tt.previous, tt.received, tt.maxDelta, tt.initialized, got, tt.expected)
			}
		})
	}
}
