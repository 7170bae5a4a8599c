// Package snapshot implements durable export/import of router state to a
// directory of flat files: metadata, prefixes, neighbors and lsdb. Every
// Import function follows the same defensive contract,
// grounded on original_source/ospf/test/ospf-state-serializer-test.cc: a
// truncated or empty file is logged and ignored, never partially applied.
package snapshot

import (
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/lstate/ospfd/internal/logger"
)

// MetadataLen is the fixed size of a metadata file: a single big-endian
// uint32 carrying the area-leader flag.
const MetadataLen = 4

// Metadata is the per-router state not derived from the LSDB.
type Metadata struct {
	IsLeader bool
}

// ExportMetadata writes meta to dir/filename as a 4-byte big-endian record.
func ExportMetadata(dir, filename string, meta Metadata) error {
	buf := make([]byte, MetadataLen)
	if meta.IsLeader {
		binary.BigEndian.PutUint32(buf, 1)
	}
	return os.WriteFile(filepath.Join(dir, filename), buf, 0o644)
}

// ImportMetadata reads dir/filename into meta. A missing, empty, or
// truncated file leaves meta unchanged and returns a nil error: it is not
// this router's fault that a prior snapshot is incomplete.
func ImportMetadata(dir, filename string, meta *Metadata) error {
	buf, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		logger.Warnf("snapshot: metadata %s unreadable, keeping current state: %v", filename, err)
		return nil
	}
	if len(buf) < MetadataLen {
		logger.Warnf("snapshot: metadata %s truncated (%d bytes), keeping current state", filename, len(buf))
		return nil
	}

	meta.IsLeader = binary.BigEndian.Uint32(buf[:MetadataLen]) != 0
	return nil
}
