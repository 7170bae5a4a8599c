package wire

import "encoding/binary"

// LSAType identifies the body format that follows an LSA header.
type LSAType uint8

// LSA type codes. Router keeps its stock OSPFv2 assignment; the three
// area-proxy additions occupy slots outside the stock 1-5 range so they
// never collide with a real OSPFv2 deployment's Network/Summary/ASBR/
// External LSAs, keeping the type space stable within the domain
// without resorting to reserved-range juggling.
const (
	LSATypeRouter     LSAType = 1
	LSATypeL1Summary  LSAType = 10
	LSATypeArea       LSAType = 11
	LSATypeL2Summary  LSAType = 12
)

func (t LSAType) String() string {
	switch t {
	case LSATypeRouter:
		return "Router"
	case LSATypeL1Summary:
		return "L1Summary"
	case LSATypeArea:
		return "Area"
	case LSATypeL2Summary:
		return "L2Summary"
	default:
		return "Unknown"
	}
}

// MaxAge is the age, in seconds, at which an LSA is treated as withdrawn.
// Kept here (rather than only in config.Config) because it is a wire-level
// sentinel value, not a tunable: every implementation must agree on it for
// premature-aging arbitration to work.
const MaxAge uint16 = 3600

// LSAHeaderLen is the fixed size in bytes of an LSA header.
const LSAHeaderLen = 20

// LSAHeader is the common header prefixing every LSA body.
type LSAHeader struct {
	Age               uint16
	Options           uint8
	Type              LSAType
	LinkStateID       uint32
	AdvertisingRouter uint32
	SeqNum            uint32
	Checksum          uint16
	Length            uint16 // header + body, in bytes
}

// Key returns the LSDB key this header's LSA is stored under.
func (h LSAHeader) Key() Key {
	return Key{Type: h.Type, LinkStateID: h.LinkStateID, AdvertisingRouter: h.AdvertisingRouter}
}

// Key is the LSDB lookup key: (type, link-state-id, advertising-router).
type Key struct {
	Type              LSAType
	LinkStateID       uint32
	AdvertisingRouter uint32
}

func (h *LSAHeader) marshal(b []byte) {
	binary.BigEndian.PutUint16(b[0:2], h.Age)
	b[2] = h.Options
	b[3] = byte(h.Type)
	binary.BigEndian.PutUint32(b[4:8], h.LinkStateID)
	binary.BigEndian.PutUint32(b[8:12], h.AdvertisingRouter)
	binary.BigEndian.PutUint32(b[12:16], h.SeqNum)
	binary.BigEndian.PutUint16(b[16:18], h.Checksum)
	binary.BigEndian.PutUint16(b[18:20], h.Length)
}

func parseLSAHeader(b []byte) (LSAHeader, error) {
	if len(b) < LSAHeaderLen {
		return LSAHeader{}, parseErr("LSAHeader", ErrTruncated)
	}
	h := LSAHeader{
		Age:               binary.BigEndian.Uint16(b[0:2]),
		Options:           b[2],
		Type:              LSAType(b[3]),
		LinkStateID:       binary.BigEndian.Uint32(b[4:8]),
		AdvertisingRouter: binary.BigEndian.Uint32(b[8:12]),
		SeqNum:            binary.BigEndian.Uint32(b[12:16]),
		Checksum:          binary.BigEndian.Uint16(b[16:18]),
		Length:            binary.BigEndian.Uint16(b[18:20]),
	}
	return h, nil
}

// lsaChecksum computes the LSA checksum over the header (with Age and
// Checksum zeroed, since age advances with wall time independently of
// content) followed by the body.
func lsaChecksum(header LSAHeader, body []byte) uint16 {
	header.Age = 0
	header.Checksum = 0
	hb := make([]byte, LSAHeaderLen)
	header.marshal(hb)
	buf := make([]byte, 0, len(hb)+len(body))
	buf = append(buf, hb...)
	buf = append(buf, body...)
	return Checksum(buf)
}
