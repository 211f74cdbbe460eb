// Package counter implements the alive counter arithmetic shared by the E2E
// profiles. A counter lives in a circular domain (a nibble, a byte, or a
// wider word) and the receiver classifies each received value by its forward
// distance from the last accepted one.
package counter

// Classification is the sequence verdict for a received counter value.
type Classification int

const (
	// InSequence means the counter advanced by exactly the expected step.
	InSequence Classification = iota
	// Duplicate means the counter did not move.
	Duplicate
	// SomeLost means the counter advanced by more than one step but within
	// the configured tolerance.
	SomeLost
	// OutOfSequence means the counter moved outside the tolerated window.
	OutOfSequence
)

// Domain describes the circular value space a counter wraps in.
type Domain struct {
	// Max is the largest representable value before wrapping to zero.
	Max uint32
	// Modulo is Max+1, kept as uint64 so the 32-bit domain does not
	// overflow during increment.
	Modulo uint64
}

var (
	// Nibble15 wraps after 14, used by Profile 11.
	Nibble15 = Domain{Max: 14, Modulo: 15}
	// Nibble16 wraps after 15, used by Profile 22.
	Nibble16 = Domain{Max: 15, Modulo: 16}
	// Uint8 is the full byte domain of Profiles 5 and 6.
	Uint8 = Domain{Max: 0xFF, Modulo: 0x100}
	// Uint16 is the two-byte domain of Profile 4.
	Uint16 = Domain{Max: 0xFFFF, Modulo: 0x10000}
	// Uint32 is the four-byte domain of Profiles 7 and 8.
	Uint32 = Domain{Max: 0xFFFFFFFF, Modulo: 0x100000000}
)

// Increment returns the counter value following v, wrapping to zero past
// the domain maximum.
func (d Domain) Increment(v uint32) uint32 {
	return uint32((uint64(v) + 1) % d.Modulo)
}

// Delta returns the forward circular distance from previous to received.
func (d Domain) Delta(previous, received uint32) uint32 {
	if received >= previous {
		return received - previous
	}
	return uint32(uint64(received) + d.Modulo - uint64(previous))
}

// Classify judges a received counter against the last accepted one. A zero
// delta on an uninitialized receiver is treated as in sequence because there
// is no history to contradict it; initialized receivers report it as a
// duplicate.
func (d Domain) Classify(previous, received, maxDelta uint32, initialized bool) Classification {
	delta := d.Delta(previous, received)
	switch {
	case delta == 0:
		if !initialized {
			return InSequence
		}
		return Duplicate
	case delta == 1:
		return InSequence
	case delta <= maxDelta:
		return SomeLost
	default:
		return OutOfSequence
	}
}
