package wire

// Packet is a tagged-variant container for a full OSPF packet: one shared
// Header plus exactly one populated payload field, selected by
// Header.Type. DatabaseDescription and LinkStateRequest have no payload
// field because ospfd never originates or parses them (see the PacketType
// doc comment).
type Packet struct {
	Header   Header
	Hello    *HelloPayload
	LSUpdate *LSUpdatePayload
	LSAck    *LSAckPayload
}

// MarshalPacket serializes pkt, filling in Header.Length and
// Header.Checksum. Header.Type, RouterID and AreaID must already be set by
// the caller.
func MarshalPacket(pkt Packet) ([]byte, error) {
	var payload []byte
	var err error

	switch pkt.Header.Type {
	case PacketTypeHello:
		if pkt.Hello == nil {
			return nil, parseErr("Packet", ErrUnknownType)
		}
		payload = make([]byte, pkt.Hello.wireLen())
		pkt.Hello.marshal(payload)
	case PacketTypeLinkStateUpdate:
		if pkt.LSUpdate == nil {
			return nil, parseErr("Packet", ErrUnknownType)
		}
		payload, err = pkt.LSUpdate.marshal()
		if err != nil {
			return nil, err
		}
	case PacketTypeLinkStateAcknowledge:
		if pkt.LSAck == nil {
			return nil, parseErr("Packet", ErrUnknownType)
		}
		payload = make([]byte, pkt.LSAck.wireLen())
		pkt.LSAck.marshal(payload)
	default:
		return nil, parseErr("Packet", ErrUnknownType)
	}

	pkt.Header.Length = uint16(HeaderLen + len(payload))
	out := make([]byte, HeaderLen+len(payload))
	pkt.Header.marshal(out[:HeaderLen])
	copy(out[HeaderLen:], payload)

	pkt.Header.Checksum = packetChecksum(out)
	out[12] = byte(pkt.Header.Checksum >> 8)
	out[13] = byte(pkt.Header.Checksum)

	return out, nil
}

// ParsePacket parses a full OSPF packet from b, validating the header,
// its checksum, and dispatching the payload by type.
func ParsePacket(b []byte) (Packet, error) {
	header, err := parseHeader(b)
	if err != nil {
		return Packet{}, err
	}
	if header.Checksum != packetChecksum(b) {
		return Packet{}, parseErr("Packet", ErrChecksum)
	}

	pkt := Packet{Header: header}
	payload := b[HeaderLen:]

	switch header.Type {
	case PacketTypeHello:
		hp, err := parseHelloPayload(payload)
		if err != nil {
			return Packet{}, err
		}
		pkt.Hello = &hp
	case PacketTypeLinkStateUpdate:
		up, err := parseLSUpdatePayload(payload)
		if err != nil {
			return Packet{}, err
		}
		pkt.LSUpdate = &up
	case PacketTypeLinkStateAcknowledge:
		ap, err := parseLSAckPayload(payload)
		if err != nil {
			return Packet{}, err
		}
		pkt.LSAck = &ap
	default:
		return Packet{}, parseErr("Packet", ErrUnknownType)
	}

	return pkt, nil
}
