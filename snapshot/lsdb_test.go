package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lstate/ospfd/lsdb"
	"github.com/lstate/ospfd/wire"
)

func TestLsdbRoundTrip(t *testing.T) {
	dir := t.TempDir()
	now := time.Unix(0, 0)

	src := lsdb.New()
	src.Install(wire.LSA{
		Header: wire.LSAHeader{Type: wire.LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1},
		Router: &wire.RouterLSABody{Links: []wire.RouterLink{{LinkID: 2, Metric: 1}}},
	}, now)
	src.Install(wire.LSA{
		Header:    wire.LSAHeader{Type: wire.LSATypeL1Summary, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1},
		L1Summary: &wire.SummaryLSABody{Prefixes: []wire.Prefix{{Address: 0x0A000000, Mask: 0xFFFFFF00, Metric: 1}}},
	}, now)

	if err := ExportLsdb(dir, "node.lsdb", src, now); err != nil {
		t.Fatalf("ExportLsdb: %v", err)
	}

	dst := lsdb.New()
	if err := ImportLsdb(dir, "node.lsdb", dst, now); err != nil {
		t.Fatalf("ImportLsdb: %v", err)
	}

	if dst.Count(wire.LSATypeRouter) != 1 {
		t.Errorf("got %d router LSAs, want 1", dst.Count(wire.LSATypeRouter))
	}
	if dst.Count(wire.LSATypeL1Summary) != 1 {
		t.Errorf("got %d l1summary LSAs, want 1", dst.Count(wire.LSATypeL1Summary))
	}
}

func TestImportLsdbEmptyFileLeavesDatabaseUnchanged(t *testing.T) {
	dir := t.TempDir()
	now := time.Unix(0, 0)

	if err := os.WriteFile(filepath.Join(dir, "empty.lsdb"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	db := lsdb.New()
	if err := ImportLsdb(dir, "empty.lsdb", db, now); err != nil {
		t.Fatalf("ImportLsdb: %v", err)
	}
	for _, kind := range lsdbKinds {
		if db.Count(kind) != 0 {
			t.Errorf("kind %v: got %d entries, want 0", kind, db.Count(kind))
		}
	}
}

func TestImportLsdbTruncatedFileLeavesDatabaseUnchanged(t *testing.T) {
	dir := t.TempDir()
	now := time.Unix(0, 0)

	if err := os.WriteFile(filepath.Join(dir, "trunc.lsdb"), []byte{0x01}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	db := lsdb.New()
	if err := ImportLsdb(dir, "trunc.lsdb", db, now); err != nil {
		t.Fatalf("ImportLsdb: %v", err)
	}
	for _, kind := range lsdbKinds {
		if db.Count(kind) != 0 {
			t.Errorf("kind %v: got %d entries, want 0", kind, db.Count(kind))
		}
	}
}
