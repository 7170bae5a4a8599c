package wire

import "encoding/binary"

// HelloFixedLen is the size of the fixed-layout portion of a Hello payload,
// before the trailing neighbor list.
const HelloFixedLen = 20

// HelloPayload is the Hello packet payload: link parameters
// followed by the list of neighbors this interface currently hears Hellos
// from, mirroring mdlayher/ospf3's Hello fixed-prefix-plus-trailing-array
// layout.
type HelloPayload struct {
	NetworkMask             uint32
	HelloInterval           uint16
	Options                 uint8
	RouterPriority          uint8
	RouterDeadInterval      uint32
	DesignatedRouter        uint32
	BackupDesignatedRouter  uint32
	Neighbors               []uint32
}

func (h HelloPayload) wireLen() int {
	return HelloFixedLen + 4*len(h.Neighbors)
}

func (h HelloPayload) marshal(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], h.NetworkMask)
	binary.BigEndian.PutUint16(b[4:6], h.HelloInterval)
	b[6] = h.Options
	b[7] = h.RouterPriority
	binary.BigEndian.PutUint32(b[8:12], h.RouterDeadInterval)
	binary.BigEndian.PutUint32(b[12:16], h.DesignatedRouter)
	binary.BigEndian.PutUint32(b[16:20], h.BackupDesignatedRouter)
	off := HelloFixedLen
	for _, n := range h.Neighbors {
		binary.BigEndian.PutUint32(b[off:off+4], n)
		off += 4
	}
}

func parseHelloPayload(b []byte) (HelloPayload, error) {
	if len(b) < HelloFixedLen {
		return HelloPayload{}, parseErr("Hello", ErrTruncated)
	}
	trailing := len(b) - HelloFixedLen
	if trailing%4 != 0 {
		return HelloPayload{}, parseErr("Hello", ErrMisalignedTrail)
	}

	h := HelloPayload{
		NetworkMask:            binary.BigEndian.Uint32(b[0:4]),
		HelloInterval:          binary.BigEndian.Uint16(b[4:6]),
		Options:                b[6],
		RouterPriority:         b[7],
		RouterDeadInterval:     binary.BigEndian.Uint32(b[8:12]),
		DesignatedRouter:       binary.BigEndian.Uint32(b[12:16]),
		BackupDesignatedRouter: binary.BigEndian.Uint32(b[16:20]),
	}

	n := trailing / 4
	if n > 0 {
		h.Neighbors = make([]uint32, 0, n)
	}
	off := HelloFixedLen
	for i := 0; i < n; i++ {
		h.Neighbors = append(h.Neighbors, binary.BigEndian.Uint32(b[off:off+4]))
		off += 4
	}
	return h, nil
}
