package e2e

// Status is the outcome of checking a received frame. Every value other
// than StatusOK and StatusOKSomeLost means the frame must not be consumed,
// but none of them is an error in the Go sense: the check itself completed.
type Status int

const (
	// StatusOK means the frame is intact and the counter advanced as
	// expected.
	StatusOK Status = iota
	// StatusCRCError means the transmitted CRC does not match the one
	// computed over the frame.
	StatusCRCError
	// StatusDataIDError means the transmitted Data ID does not match the
	// configured one.
	StatusDataIDError
	// StatusRepeated means the counter did not advance.
	StatusRepeated
	// StatusOKSomeLost means the frame is intact but one or more earlier
	// frames were missed, within the configured tolerance.
	StatusOKSomeLost
	// StatusWrongSequence means the counter moved outside the configured
	// tolerance.
	StatusWrongSequence
	// StatusDataLengthError means the transmitted length field does not
	// match the received buffer.
	StatusDataLengthError
	// StatusSourceIDError means the transmitted source identifier does not
	// match the configured one.
	StatusSourceIDError
	// StatusMessageTypeError means the transmitted message type does not
	// match the configured one.
	StatusMessageTypeError
	// StatusMessageResultError means the transmitted message result does
	// not match the configured one.
	StatusMessageResultError
)

var statusNames = map[Status]string{
	StatusOK:                 "OK",
	StatusCRCError:           "CRC_ERROR",
	StatusDataIDError:        "DATA_ID_ERROR",
	StatusRepeated:           "REPEATED",
	StatusOKSomeLost:         "OK_SOME_LOST",
	StatusWrongSequence:      "WRONG_SEQUENCE",
	StatusDataLengthError:    "DATA_LENGTH_ERROR",
	StatusSourceIDError:      "SOURCE_ID_ERROR",
	StatusMessageTypeError:   "MESSAGE_TYPE_ERROR",
	StatusMessageResultError: "MESSAGE_RESULT_ERROR",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether the frame may be consumed by the application.
func (s Status) Valid() bool {
	return s == StatusOK || s == StatusOKSomeLost
}
