package snapshot

import (
	"net/netip"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lstate/ospfd/spf"
)

func TestPrefixesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	routes := []spf.Route{
		{Prefix: netip.MustParsePrefix("10.0.0.0/24"), NextHopRouter: 2, Metric: 3},
		{Prefix: netip.MustParsePrefix("10.0.2.5/32"), NextHopRouter: 4, Metric: 7},
	}

	if err := ExportPrefixes(dir, "routes.prefixes", routes); err != nil {
		t.Fatalf("ExportPrefixes: %v", err)
	}

	var got []spf.Route
	if err := ImportPrefixes(dir, "routes.prefixes", &got); err != nil {
		t.Fatalf("ImportPrefixes: %v", err)
	}
	if !reflect.DeepEqual(got, routes) {
		t.Errorf("got %+v, want %+v", got, routes)
	}
}

func TestImportPrefixesTruncatedDoesNotMutateRoutes(t *testing.T) {
	dir := t.TempDir()

	before := []spf.Route{{Prefix: netip.MustParsePrefix("192.168.0.0/16"), NextHopRouter: 1, Metric: 1}}
	if err := ExportPrefixes(dir, "before.prefixes", before); err != nil {
		t.Fatalf("ExportPrefixes: %v", err)
	}
	beforeBytes, err := os.ReadFile(filepath.Join(dir, "before.prefixes"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	// routeNum = 1, but no route entries follow: truncated.
	if err := os.WriteFile(filepath.Join(dir, "bad.prefixes"), []byte{0, 0, 0, 1}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	routes := append([]spf.Route(nil), before...)
	if err := ImportPrefixes(dir, "bad.prefixes", &routes); err != nil {
		t.Fatalf("ImportPrefixes: %v", err)
	}

	if err := ExportPrefixes(dir, "after.prefixes", routes); err != nil {
		t.Fatalf("ExportPrefixes: %v", err)
	}
	afterBytes, err := os.ReadFile(filepath.Join(dir, "after.prefixes"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(beforeBytes) != string(afterBytes) {
		t.Error("truncated prefixes import should not mutate routes")
	}
}
