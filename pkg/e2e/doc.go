// Package e2e implements the AUTOSAR End-to-End communication protection
// profiles. Each profile embeds a small header into the application's frame
// buffer carrying a CRC, an alive counter, and, depending on the profile, a
// length field and identification fields. The sender calls Protect before
// transmission; the receiver calls Check and inspects the returned Status
// to decide whether the frame may be consumed.
//
// The profiles differ in header layout, CRC algorithm, counter width, and
// how the stream's Data ID is folded into the CRC. All of them share the
// same failure taxonomy: configuration problems surface as ErrInvalidConfig
// from the constructor, buffers that cannot hold the configured layout
// surface as ErrInvalidDataFormat, and everything a receiver can detect
// about a well-formed frame is reported through Status.
//
// An engine carries the alive counter state for exactly one sender or
// receiver role on one logical channel. Engines are not safe for
// concurrent use; independent channels need independent engines.
package e2e
