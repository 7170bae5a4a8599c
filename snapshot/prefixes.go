package snapshot

import (
	"encoding/binary"
	"net/netip"
	"os"
	"path/filepath"

	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/spf"
)

// prefixRecordLen is the fixed size of one route record: 4-byte address, 1
// byte prefix length, 4-byte next-hop router ID, 4-byte metric.
const prefixRecordLen = 13

// ExportPrefixes writes the computed routing set routes to dir/filename as
// a route count followed by fixed-size route records.
func ExportPrefixes(dir, filename string, routes []spf.Route) error {
	buf := make([]byte, 4+len(routes)*prefixRecordLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(routes)))

	off := 4
	for _, r := range routes {
		addr4 := r.Prefix.Addr().As4()
		copy(buf[off:off+4], addr4[:])
		buf[off+4] = byte(r.Prefix.Bits())
		binary.BigEndian.PutUint32(buf[off+5:off+9], r.NextHopRouter)
		binary.BigEndian.PutUint32(buf[off+9:off+13], r.Metric)
		off += prefixRecordLen
	}

	return os.WriteFile(filepath.Join(dir, filename), buf, 0o644)
}

// ImportPrefixes reads dir/filename and overwrites *routes only if every
// declared record is present and well-formed. A truncated file (declared
// count exceeds the records actually present) leaves *routes untouched.
func ImportPrefixes(dir, filename string, routes *[]spf.Route) error {
	buf, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		logger.Warnf("snapshot: prefixes %s unreadable, keeping current routes: %v", filename, err)
		return nil
	}
	if len(buf) < 4 {
		logger.Warnf("snapshot: prefixes %s truncated, keeping current routes", filename)
		return nil
	}

	count := binary.BigEndian.Uint32(buf[0:4])
	want := 4 + int(count)*prefixRecordLen
	if len(buf) < want {
		logger.Warnf("snapshot: prefixes %s declares %d routes but is truncated, keeping current routes", filename, count)
		return nil
	}

	parsed := make([]spf.Route, 0, count)
	off := 4
	for i := uint32(0); i < count; i++ {
		rec := buf[off : off+prefixRecordLen]
		addr := netip.AddrFrom4([4]byte{rec[0], rec[1], rec[2], rec[3]})
		bits := int(rec[4])
		prefix, err := addr.Prefix(bits)
		if err != nil {
			logger.Warnf("snapshot: prefixes %s has an invalid prefix length %d, keeping current routes", filename, bits)
			return nil
		}
		parsed = append(parsed, spf.Route{
			Prefix:        prefix,
			NextHopRouter: binary.BigEndian.Uint32(rec[5:9]),
			Metric:        binary.BigEndian.Uint32(rec[9:13]),
		})
		off += prefixRecordLen
	}

	*routes = parsed
	return nil
}
