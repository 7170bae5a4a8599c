package wire

import "testing"

func TestMarshalParseRouterLSARoundTrip(t *testing.T) {
	lsa := LSA{
		Header: LSAHeader{Type: LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 7},
		Router: &RouterLSABody{
			Flags: 1,
			Links: []RouterLink{
				{LinkID: 2, LinkData: 0, LinkType: 1, Metric: 10},
				{LinkID: 3, LinkData: 0, LinkType: 1, Metric: 20},
			},
		},
	}

	encoded, err := MarshalLSA(lsa)
	if err != nil {
		t.Fatalf("MarshalLSA: %v", err)
	}

	decoded, err := ParseLSA(encoded)
	if err != nil {
		t.Fatalf("ParseLSA: %v", err)
	}
	if decoded.Header.Key() != lsa.Header.Key() {
		t.Errorf("key mismatch: got %+v want %+v", decoded.Header.Key(), lsa.Header.Key())
	}
	if len(decoded.Router.Links) != 2 {
		t.Fatalf("got %d links, want 2", len(decoded.Router.Links))
	}
	if decoded.Router.Links[1].Metric != 20 {
		t.Errorf("got metric %d, want 20", decoded.Router.Links[1].Metric)
	}
}

func TestMarshalParseAreaLSARoundTrip(t *testing.T) {
	lsa := LSA{
		Header: LSAHeader{Type: LSATypeArea, LinkStateID: 0, AdvertisingRouter: 5, SeqNum: 1},
		Area: &AreaLSABody{
			Links: []AreaLink{
				{PeerAreaID: 1, Metric: 1},
				{PeerAreaID: 2, Metric: 3},
			},
		},
	}

	encoded, err := MarshalLSA(lsa)
	if err != nil {
		t.Fatalf("MarshalLSA: %v", err)
	}
	decoded, err := ParseLSA(encoded)
	if err != nil {
		t.Fatalf("ParseLSA: %v", err)
	}
	if len(decoded.Area.Links) != 2 || decoded.Area.Links[0].PeerAreaID != 1 {
		t.Errorf("unexpected area links: %+v", decoded.Area.Links)
	}
}

func TestParseLSARejectsChecksumMismatch(t *testing.T) {
	lsa := LSA{
		Header: LSAHeader{Type: LSATypeL2Summary, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1},
		L2Summary: &SummaryLSABody{
			Prefixes: []Prefix{{Address: 1, Mask: 2, Metric: 3}},
		},
	}
	encoded, err := MarshalLSA(lsa)
	if err != nil {
		t.Fatalf("MarshalLSA: %v", err)
	}
	encoded[len(encoded)-1] ^= 0xFF

	if _, err := ParseLSA(encoded); err == nil {
		t.Fatal("expected checksum error, got nil")
	}
}

func TestMarshalLSAUnpopulatedBodyFails(t *testing.T) {
	lsa := LSA{Header: LSAHeader{Type: LSATypeRouter}}
	if _, err := MarshalLSA(lsa); err == nil {
		t.Fatal("expected error for nil Router body, got nil")
	}
}

func TestLSAAgeDoesNotAffectChecksum(t *testing.T) {
	lsa := LSA{
		Header: LSAHeader{Type: LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1, Age: 0},
		Router: &RouterLSABody{Links: []RouterLink{{LinkID: 2, Metric: 5}}},
	}
	encoded, err := MarshalLSA(lsa)
	if err != nil {
		t.Fatalf("MarshalLSA: %v", err)
	}

	// Age advancing over time must not invalidate the stored checksum.
	encoded[0] = 0x01
	encoded[1] = 0x2C // age = 300

	if _, err := ParseLSA(encoded); err != nil {
		t.Fatalf("expected aged LSA to still parse, got: %v", err)
	}
}
