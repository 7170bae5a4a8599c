package snapshot

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"time"

	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/wire"
	"github.com/schollz/progressbar/v3"
)

// lsdbKinds lists the four LSA kinds a Database holds, in the fixed order
// they are concatenated into one lsdb snapshot file.
var lsdbKinds = []wire.LSAType{
	wire.LSATypeRouter,
	wire.LSATypeL1Summary,
	wire.LSATypeArea,
	wire.LSATypeL2Summary,
}

// progressBarThreshold is the entry count above which ExportLsdb renders a
// progress bar; small databases export fast enough that a bar would just
// flicker.
const progressBarThreshold = 200

// ExportLsdb writes every installed LSA across all four kinds to
// dir/filename as a record count followed by length-prefixed, self-tagged
// LSA records (each record's own header carries its Type).
func ExportLsdb(dir, filename string, db *lsdb.Database, now time.Time) error {
	var lsas []wire.LSA
	for _, kind := range lsdbKinds {
		lsas = append(lsas, db.All(kind, now)...)
	}

	var bar *progressbar.ProgressBar
	if len(lsas) > progressBarThreshold {
		bar = progressbar.NewOptions(len(lsas),
			progressbar.OptionSetDescription("Exporting LSDB to "+filename),
			progressbar.OptionOnCompletion(func() { logger.Infof("snapshot: exported %d LSAs to %s", len(lsas), filename) }),
		)
	}

	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(lsas)))
	for _, lsa := range lsas {
		encoded, err := wire.MarshalLSA(lsa)
		if err != nil {
			return err
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(encoded)))
		buf = append(buf, encoded...)
		if bar != nil {
			bar.Add(1)
		}
	}

	return os.WriteFile(filepath.Join(dir, filename), buf, 0o644)
}

// ImportLsdb reads dir/filename and installs every record into db, but
// only once the whole file has been validated: a truncated or malformed
// file leaves db entirely unchanged, matching the package's
// empty/truncated-file contract.
func ImportLsdb(dir, filename string, db *lsdb.Database, now time.Time) error {
	buf, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		logger.Warnf("snapshot: lsdb %s unreadable, keeping current database: %v", filename, err)
		return nil
	}
	if len(buf) < 4 {
		logger.Warnf("snapshot: lsdb %s truncated, keeping current database", filename)
		return nil
	}

	count := binary.BigEndian.Uint32(buf[0:4])
	off := 4

	parsed := make([]wire.LSA, 0, count)
	for i := uint32(0); i < count; i++ {
		if off+2 > len(buf) {
			logger.Warnf("snapshot: lsdb %s truncated mid-record, keeping current database", filename)
			return nil
		}
		recLen := int(binary.BigEndian.Uint16(buf[off : off+2]))
		off += 2
		if off+recLen > len(buf) {
			logger.Warnf("snapshot: lsdb %s truncated mid-record, keeping current database", filename)
			return nil
		}

		lsa, err := wire.ParseLSA(buf[off : off+recLen])
		if err != nil {
			logger.Warnf("snapshot: lsdb %s has a malformed record, keeping current database: %v", filename, err)
			return nil
		}
		parsed = append(parsed, lsa)
		off += recLen
	}

	for _, lsa := range parsed {
		db.Install(lsa, now)
	}
	return nil
}
