package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()

	if err := ExportMetadata(dir, "node.meta", Metadata{IsLeader: true}); err != nil {
		t.Fatalf("ExportMetadata: %v", err)
	}

	bytes, err := os.ReadFile(filepath.Join(dir, "node.meta"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(bytes) != 4 {
		t.Fatalf("got %d bytes, want 4", len(bytes))
	}
	if bytes[0] != 0 || bytes[1] != 0 || bytes[2] != 0 || bytes[3] != 1 {
		t.Errorf("got %v, want [0 0 0 1]", bytes)
	}

	meta := Metadata{IsLeader: false}
	if err := ImportMetadata(dir, "node.meta", &meta); err != nil {
		t.Fatalf("ImportMetadata: %v", err)
	}
	if !meta.IsLeader {
		t.Error("expected IsLeader restored to true")
	}
}

func TestImportMetadataTruncatedLeavesStateUnchanged(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.meta"), nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	meta := Metadata{IsLeader: true}
	if err := ImportMetadata(dir, "bad.meta", &meta); err != nil {
		t.Fatalf("ImportMetadata: %v", err)
	}
	if !meta.IsLeader {
		t.Error("truncated import should not change state")
	}
}

func TestImportMetadataMissingFileLeavesStateUnchanged(t *testing.T) {
	dir := t.TempDir()

	meta := Metadata{IsLeader: true}
	if err := ImportMetadata(dir, "does-not-exist.meta", &meta); err != nil {
		t.Fatalf("ImportMetadata: %v", err)
	}
	if !meta.IsLeader {
		t.Error("missing file import should not change state")
	}
}
