package wire

import "errors"

// ParseError wraps every reason a packet or LSA is rejected during
// decoding: truncated buffer, unknown version/type, length mismatch, or bad
// checksum. Callers drop the packet and log the reason; no counter is
// kept. ParseError lets tests and callers distinguish "malformed" from
// "valid but uninteresting".
var (
	ErrTruncated       = errors.New("wire: truncated buffer")
	ErrUnknownVersion  = errors.New("wire: unknown OSPF version")
	ErrUnknownType     = errors.New("wire: unknown packet type")
	ErrLengthMismatch  = errors.New("wire: declared length does not match buffer")
	ErrChecksum        = errors.New("wire: checksum mismatch")
	ErrUnknownLSAType  = errors.New("wire: unknown LSA type")
	ErrMisalignedTrail = errors.New("wire: trailing array is not aligned to its record size")
)

// ParseError annotates one of the sentinel errors above with the context it
// occurred in, so logs read as "wire: parse Hello: truncated buffer" rather
// than a bare sentinel.
type ParseError struct {
	Context string
	Err     error
}

func (e *ParseError) Error() string {
	return "wire: parse " + e.Context + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(context string, err error) error {
	return &ParseError{Context: context, Err: err}
}
