// Package wire implements the on-the-wire OSPFv2-derived packet and LSA
// encoding: the OSPF header, Hello, LS-Update,
// LS-Ack, and the four LSA bodies (Router, L1-Summary, Area, L2-Summary),
// with bit-exact layouts and an internally-consistent Internet-style
// checksum. Framing style (fixed header + trailing variable array,
// marshal/unmarshal pairs, sentinel errors) is grounded on
// mdlayher/ospf3's message.go; the checksum itself is grounded on a
// one's-complement sum idiom.
package wire

import (
	"encoding/binary"
)

// Version is the only OSPF version ospfd speaks.
const Version = 2

// PacketType identifies the kind of payload that follows the OSPF header.
type PacketType uint8

// Packet types. DatabaseDescription and
// LinkStateRequest occupy their stock OSPFv2 type codes for wire
// compatibility of the type byte, but ospfd never originates or parses
// their payloads: point-to-point adjacencies reach Full directly from
// TwoWay via a full LSDB flood instead of a DBD/LSR exchange.
const (
	PacketTypeHello                PacketType = 1
	PacketTypeDatabaseDescription  PacketType = 2
	PacketTypeLinkStateRequest     PacketType = 3
	PacketTypeLinkStateUpdate      PacketType = 4
	PacketTypeLinkStateAcknowledge PacketType = 5
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeHello:
		return "Hello"
	case PacketTypeDatabaseDescription:
		return "DatabaseDescription"
	case PacketTypeLinkStateRequest:
		return "LinkStateRequest"
	case PacketTypeLinkStateUpdate:
		return "LinkStateUpdate"
	case PacketTypeLinkStateAcknowledge:
		return "LinkStateAcknowledge"
	default:
		return "Unknown"
	}
}

// HeaderLen is the fixed size in bytes of an OSPF header.
const HeaderLen = 24

// Header is the common OSPF packet header shared by every message type.
type Header struct {
	Type       PacketType
	Length     uint16 // total packet length including this header
	RouterID   uint32
	AreaID     uint32
	Checksum   uint16
	AuthType   uint16
	AuthData   [8]byte
}

// marshal writes the header into b[:HeaderLen]. The checksum field is
// written as-is (MarshalPacket computes it afterwards over the full packet
// via packetChecksum and patches it in).
func (h *Header) marshal(b []byte) {
	b[0] = Version
	b[1] = byte(h.Type)
	binary.BigEndian.PutUint16(b[2:4], h.Length)
	binary.BigEndian.PutUint32(b[4:8], h.RouterID)
	binary.BigEndian.PutUint32(b[8:12], h.AreaID)
	binary.BigEndian.PutUint16(b[12:14], h.Checksum)
	binary.BigEndian.PutUint16(b[14:16], h.AuthType)
	copy(b[16:24], h.AuthData[:])
}

func parseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, parseErr("Header", ErrTruncated)
	}
	if b[0] != Version {
		return Header{}, parseErr("Header", ErrUnknownVersion)
	}

	h := Header{
		Type:     PacketType(b[1]),
		Length:   binary.BigEndian.Uint16(b[2:4]),
		RouterID: binary.BigEndian.Uint32(b[4:8]),
		AreaID:   binary.BigEndian.Uint32(b[8:12]),
		Checksum: binary.BigEndian.Uint16(b[12:14]),
		AuthType: binary.BigEndian.Uint16(b[14:16]),
	}
	copy(h.AuthData[:], b[16:24])

	if int(h.Length) != len(b) {
		return Header{}, parseErr("Header", ErrLengthMismatch)
	}

	switch h.Type {
	case PacketTypeHello, PacketTypeDatabaseDescription, PacketTypeLinkStateRequest,
		PacketTypeLinkStateUpdate, PacketTypeLinkStateAcknowledge:
	default:
		return Header{}, parseErr("Header", ErrUnknownType)
	}

	return h, nil
}

// packetChecksum computes the checksum over the whole packet excluding the
// authentication fields (AuthType, AuthData) and with the checksum field
// itself zeroed.
func packetChecksum(b []byte) uint16 {
	buf := make([]byte, 0, len(b)-10)
	buf = append(buf, b[:12]...)  // version..areaId
	buf = append(buf, 0, 0)       // checksum field zeroed
	buf = append(buf, b[24:]...)  // payload, skipping authType/authData
	return Checksum(buf)
}
