package snapshot

import (
	"encoding/binary"
	"net/netip"
	"os"
	"path/filepath"
	"slices"

	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/internal/logger"
)

// neighborRecordLen is the fixed size of one neighbor record: 4-byte
// router ID, 4-byte IPv4 address, 2-byte port, 1-byte state, 1-byte
// priority.
const neighborRecordLen = 12

// ExportNeighbors writes one record per interface, each carrying that
// interface's current neighbor table, to dir/filename. byIndex maps each
// interface's index (as used in ospf.Router) to its live Interface.
func ExportNeighbors(dir, filename string, byIndex map[uint32]*iface.Interface) error {
	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(byIndex)))

	indexes := make([]uint32, 0, len(byIndex))
	for idx := range byIndex {
		indexes = append(indexes, idx)
	}
	slices.Sort(indexes)

	for _, idx := range indexes {
		neighbors := byIndex[idx].Neighbors()
		buf = binary.BigEndian.AppendUint32(buf, idx)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(neighbors)))
		for _, n := range neighbors {
			rec := make([]byte, neighborRecordLen)
			addr4 := n.Address.Addr().As4()
			binary.BigEndian.PutUint32(rec[0:4], n.RouterID)
			copy(rec[4:8], addr4[:])
			binary.BigEndian.PutUint16(rec[8:10], n.Address.Port())
			rec[10] = byte(n.State)
			rec[11] = n.Priority
			buf = append(buf, rec...)
		}
	}

	return os.WriteFile(filepath.Join(dir, filename), buf, 0o644)
}

// ImportNeighbors reads dir/filename and restores each interface record
// into the matching live Interface in byIndex, if one exists. An interface
// index in the file with no corresponding live Interface is skipped, not
// an error: the snapshot may predate an interface renumbering.
func ImportNeighbors(dir, filename string, byIndex map[uint32]*iface.Interface) error {
	buf, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		logger.Warnf("snapshot: neighbors %s unreadable, keeping current neighbors: %v", filename, err)
		return nil
	}
	if len(buf) < 4 {
		logger.Warnf("snapshot: neighbors %s truncated, keeping current neighbors", filename)
		return nil
	}

	type restore struct {
		target   *iface.Interface
		routerID uint32
		addr     netip.AddrPort
		state    iface.State
		priority uint8
	}
	var pending []restore

	nInterfaces := binary.BigEndian.Uint32(buf[0:4])
	off := 4
	for i := uint32(0); i < nInterfaces; i++ {
		if off+8 > len(buf) {
			logger.Warnf("snapshot: neighbors %s truncated mid-interface, keeping current neighbors", filename)
			return nil
		}
		idx := binary.BigEndian.Uint32(buf[off : off+4])
		count := binary.BigEndian.Uint32(buf[off+4 : off+8])
		off += 8

		want := int(count) * neighborRecordLen
		if off+want > len(buf) {
			logger.Warnf("snapshot: neighbors %s truncated mid-record, keeping current neighbors", filename)
			return nil
		}

		target, ok := byIndex[idx]
		for j := uint32(0); j < count; j++ {
			rec := buf[off : off+neighborRecordLen]
			routerID := binary.BigEndian.Uint32(rec[0:4])
			ip := netip.AddrFrom4([4]byte{rec[4], rec[5], rec[6], rec[7]})
			port := binary.BigEndian.Uint16(rec[8:10])
			state := iface.State(rec[10])
			priority := rec[11]

			if ok {
				pending = append(pending, restore{target, routerID, netip.AddrPortFrom(ip, port), state, priority})
			}
			off += neighborRecordLen
		}
		if !ok {
			logger.Warnf("snapshot: neighbors %s references unknown interface %d, skipping", filename, idx)
		}
	}
	for _, p := range pending {
		p.target.RestoreNeighbor(p.routerID, p.addr, p.state, p.priority)
	}
	return nil
}
