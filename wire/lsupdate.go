package wire

import "encoding/binary"

// LSUpdatePayload is the Link-State-Update payload: a count followed by
// that many LSAs, each self-delimiting via its own header Length field, so
// a single update can carry a mix of Router, L1-Summary, Area and
// L2-Summary LSAs.
type LSUpdatePayload struct {
	LSAs []LSA
}

func (u LSUpdatePayload) marshal() ([]byte, error) {
	encoded := make([][]byte, len(u.LSAs))
	total := 4
	for i, lsa := range u.LSAs {
		eb, err := MarshalLSA(lsa)
		if err != nil {
			return nil, err
		}
		encoded[i] = eb
		total += len(eb)
	}

	b := make([]byte, total)
	binary.BigEndian.PutUint32(b[0:4], uint32(len(u.LSAs)))
	off := 4
	for _, eb := range encoded {
		copy(b[off:], eb)
		off += len(eb)
	}
	return b, nil
}

func parseLSUpdatePayload(b []byte) (LSUpdatePayload, error) {
	if len(b) < 4 {
		return LSUpdatePayload{}, parseErr("LSUpdate", ErrTruncated)
	}
	count := int(binary.BigEndian.Uint32(b[0:4]))

	u := LSUpdatePayload{LSAs: make([]LSA, 0, count)}
	off := 4
	for i := 0; i < count; i++ {
		if off+LSAHeaderLen > len(b) {
			return LSUpdatePayload{}, parseErr("LSUpdate", ErrTruncated)
		}
		header, err := parseLSAHeader(b[off:])
		if err != nil {
			return LSUpdatePayload{}, err
		}
		end := off + int(header.Length)
		if int(header.Length) < LSAHeaderLen || end > len(b) {
			return LSUpdatePayload{}, parseErr("LSUpdate", ErrTruncated)
		}

		lsa, err := ParseLSA(b[off:end])
		if err != nil {
			return LSUpdatePayload{}, err
		}
		u.LSAs = append(u.LSAs, lsa)
		off = end
	}

	if off != len(b) {
		return LSUpdatePayload{}, parseErr("LSUpdate", ErrLengthMismatch)
	}
	return u, nil
}
