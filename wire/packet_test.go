package wire

import (
	"reflect"
	"testing"
)

func TestMarshalParseHelloRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pkt  Packet
	}{
		{
			name: "no neighbors",
			pkt: Packet{
				Header: Header{Type: PacketTypeHello, RouterID: 1, AreaID: 100},
				Hello: &HelloPayload{
					NetworkMask:        0xFFFFFF00,
					HelloInterval:      10,
					Options:            0,
					RouterPriority:     1,
					RouterDeadInterval: 40,
				},
			},
		},
		{
			name: "several known neighbors",
			pkt: Packet{
				Header: Header{Type: PacketTypeHello, RouterID: 2, AreaID: 100},
				Hello: &HelloPayload{
					NetworkMask:             0xFFFFFF00,
					HelloInterval:           10,
					RouterPriority:          1,
					RouterDeadInterval:      40,
					DesignatedRouter:        2,
					BackupDesignatedRouter:  3,
					Neighbors:               []uint32{1, 3, 4},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := MarshalPacket(tt.pkt)
			if err != nil {
				t.Fatalf("MarshalPacket: %v", err)
			}

			decoded, err := ParsePacket(encoded)
			if err != nil {
				t.Fatalf("ParsePacket: %v", err)
			}
			if decoded.Header.Type != PacketTypeHello {
				t.Fatalf("got type %v, want Hello", decoded.Header.Type)
			}
			if !reflect.DeepEqual(*decoded.Hello, *tt.pkt.Hello) {
				t.Errorf("hello payload mismatch:\ngot  %+v\nwant %+v", *decoded.Hello, *tt.pkt.Hello)
			}
		})
	}
}

func TestMarshalParseLSUpdateRoundTrip(t *testing.T) {
	pkt := Packet{
		Header: Header{Type: PacketTypeLinkStateUpdate, RouterID: 1, AreaID: 100},
		LSUpdate: &LSUpdatePayload{
			LSAs: []LSA{
				{
					Header: LSAHeader{Type: LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1},
					Router: &RouterLSABody{
						Flags: 0,
						Links: []RouterLink{
							{LinkID: 2, LinkData: 0, LinkType: 1, Metric: 10},
						},
					},
				},
				{
					Header: LSAHeader{Type: LSATypeL1Summary, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1},
					L1Summary: &SummaryLSABody{
						Prefixes: []Prefix{
							{Address: 0x0A000000, Mask: 0xFFFFFF00, Metric: 1},
						},
					},
				},
			},
		},
	}

	encoded, err := MarshalPacket(pkt)
	if err != nil {
		t.Fatalf("MarshalPacket: %v", err)
	}

	decoded, err := ParsePacket(encoded)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if len(decoded.LSUpdate.LSAs) != 2 {
		t.Fatalf("got %d LSAs, want 2", len(decoded.LSUpdate.LSAs))
	}
	if !reflect.DeepEqual(*decoded.LSUpdate.LSAs[0].Router, *pkt.LSUpdate.LSAs[0].Router) {
		t.Errorf("router body mismatch: got %+v want %+v", *decoded.LSUpdate.LSAs[0].Router, *pkt.LSUpdate.LSAs[0].Router)
	}
	if !reflect.DeepEqual(*decoded.LSUpdate.LSAs[1].L1Summary, *pkt.LSUpdate.LSAs[1].L1Summary) {
		t.Errorf("summary body mismatch: got %+v want %+v", *decoded.LSUpdate.LSAs[1].L1Summary, *pkt.LSUpdate.LSAs[1].L1Summary)
	}
}

func TestMarshalParseLSAckRoundTrip(t *testing.T) {
	pkt := Packet{
		Header: Header{Type: PacketTypeLinkStateAcknowledge, RouterID: 1, AreaID: 100},
		LSAck: &LSAckPayload{
			Headers: []LSAHeader{
				{Type: LSATypeRouter, LinkStateID: 1, AdvertisingRouter: 1, SeqNum: 1, Length: LSAHeaderLen},
				{Type: LSATypeArea, LinkStateID: 0, AdvertisingRouter: 2, SeqNum: 4, Length: LSAHeaderLen},
			},
		},
	}

	encoded, err := MarshalPacket(pkt)
	if err != nil {
		t.Fatalf("MarshalPacket: %v", err)
	}
	decoded, err := ParsePacket(encoded)
	if err != nil {
		t.Fatalf("ParsePacket: %v", err)
	}
	if !reflect.DeepEqual(decoded.LSAck.Headers, pkt.LSAck.Headers) {
		t.Errorf("ack headers mismatch: got %+v want %+v", decoded.LSAck.Headers, pkt.LSAck.Headers)
	}
}

func TestParsePacketRejectsBadChecksum(t *testing.T) {
	pkt := Packet{
		Header: Header{Type: PacketTypeHello, RouterID: 1, AreaID: 100},
		Hello: &HelloPayload{
			NetworkMask:        0xFFFFFF00,
			HelloInterval:      10,
			RouterPriority:     1,
			RouterDeadInterval: 40,
		},
	}
	encoded, err := MarshalPacket(pkt)
	if err != nil {
		t.Fatalf("MarshalPacket: %v", err)
	}
	encoded[len(encoded)-1] ^= 0xFF

	if _, err := ParsePacket(encoded); err == nil {
		t.Fatal("expected checksum error, got nil")
	}
}

func TestParsePacketRejectsTruncated(t *testing.T) {
	if _, err := ParsePacket([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected truncation error, got nil")
	}
}

func TestParsePacketRejectsWrongVersion(t *testing.T) {
	pkt := Packet{
		Header: Header{Type: PacketTypeHello, RouterID: 1, AreaID: 100},
		Hello:  &HelloPayload{NetworkMask: 1, HelloInterval: 1, RouterPriority: 1, RouterDeadInterval: 1},
	}
	encoded, err := MarshalPacket(pkt)
	if err != nil {
		t.Fatalf("MarshalPacket: %v", err)
	}
	encoded[0] = 3

	if _, err := ParsePacket(encoded); err == nil {
		t.Fatal("expected version error, got nil")
	}
}
