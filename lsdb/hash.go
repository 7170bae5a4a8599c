package lsdb

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/lstate/ospfd/wire"
)

// Hash returns a stable hash over every entry of type t, ignoring Age (age
// advances independently on every router and would make an otherwise
// converged LSDB hash differently depending on when it's sampled). Used by
// the get-lsdb-hash introspection operation so two routers can cheaply
// confirm they've converged on the same Router-LSDB without diffing full
// LSA bodies. Grounded on original_source/ospf/helper/ospf-lsdb-helper.h's
// CompareLsdb/GetLsdbHash pattern (compare a cheap summary value across
// all nodes rather than the full database).
func (d *Database) Hash(t wire.LSAType) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	store := d.storeFor(t)
	keys := make([]wire.Key, 0, len(store))
	for k := range store {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		if keys[i].AdvertisingRouter != keys[j].AdvertisingRouter {
			return keys[i].AdvertisingRouter < keys[j].AdvertisingRouter
		}
		return keys[i].LinkStateID < keys[j].LinkStateID
	})

	h := fnv.New32a()
	var buf [15]byte
	for _, k := range keys {
		entry := store[k]
		buf[0] = byte(k.Type)
		binary.BigEndian.PutUint32(buf[1:5], k.LinkStateID)
		binary.BigEndian.PutUint32(buf[5:9], k.AdvertisingRouter)
		binary.BigEndian.PutUint32(buf[9:13], entry.LSA.Header.SeqNum)
		binary.BigEndian.PutUint16(buf[13:15], entry.LSA.Header.Checksum)
		h.Write(buf[:])
	}
	return h.Sum32()
}
