package wire

import "encoding/binary"

// RouterLinkLen is the fixed wire size of one Router-LSA link record:
// link-id, link-data, type, and metric packed into 12 bytes.
const RouterLinkLen = 12

// RouterLink describes one adjacency or stub link advertised by a
// Router-LSA.
type RouterLink struct {
	LinkID   uint32
	LinkData uint32
	LinkType uint8
	Metric   uint16
}

func (l RouterLink) marshal(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], l.LinkID)
	binary.BigEndian.PutUint32(b[4:8], l.LinkData)
	b[8] = l.LinkType
	// b[9] reserved
	binary.BigEndian.PutUint16(b[10:12], l.Metric)
}

func parseRouterLink(b []byte) RouterLink {
	return RouterLink{
		LinkID:   binary.BigEndian.Uint32(b[0:4]),
		LinkData: binary.BigEndian.Uint32(b[4:8]),
		LinkType: b[8],
		Metric:   binary.BigEndian.Uint16(b[10:12]),
	}
}

// RouterLSABody is the type-1 LSA body: the set of links (adjacencies and
// stubs) the advertising router currently has in this area.
type RouterLSABody struct {
	Flags uint8
	Links []RouterLink
}

func (b RouterLSABody) wireLen() int {
	return 4 + RouterLinkLen*len(b.Links)
}

func (rb RouterLSABody) marshal(b []byte) {
	b[0] = rb.Flags
	// b[1] reserved/options
	binary.BigEndian.PutUint16(b[2:4], uint16(len(rb.Links)))
	off := 4
	for _, l := range rb.Links {
		l.marshal(b[off : off+RouterLinkLen])
		off += RouterLinkLen
	}
}

func parseRouterLSABody(b []byte) (RouterLSABody, error) {
	if len(b) < 4 {
		return RouterLSABody{}, parseErr("RouterLSABody", ErrTruncated)
	}
	count := int(binary.BigEndian.Uint16(b[2:4]))
	want := 4 + RouterLinkLen*count
	if len(b) != want {
		return RouterLSABody{}, parseErr("RouterLSABody", ErrLengthMismatch)
	}

	rb := RouterLSABody{Flags: b[0], Links: make([]RouterLink, 0, count)}
	off := 4
	for i := 0; i < count; i++ {
		rb.Links = append(rb.Links, parseRouterLink(b[off:off+RouterLinkLen]))
		off += RouterLinkLen
	}
	return rb, nil
}

// PrefixLen is the fixed wire size of one reachability prefix record used
// by both L1-Summary and L2-Summary bodies: address, mask, metric.
const PrefixLen = 10

// Prefix is a reachable destination an L1-Summary or L2-Summary advertises.
type Prefix struct {
	Address uint32
	Mask    uint32
	Metric  uint16
}

func (p Prefix) marshal(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], p.Address)
	binary.BigEndian.PutUint32(b[4:8], p.Mask)
	binary.BigEndian.PutUint16(b[8:10], p.Metric)
}

func parsePrefix(b []byte) Prefix {
	return Prefix{
		Address: binary.BigEndian.Uint32(b[0:4]),
		Mask:    binary.BigEndian.Uint32(b[4:8]),
		Metric:  binary.BigEndian.Uint16(b[8:10]),
	}
}

// SummaryLSABody backs both L1-Summary and L2-Summary LSAs: a flat list of
// reachable prefixes with metrics. The two types share layout because both
// are "here is what I can reach, and at what cost" — they differ only in
// LSA type code and in who originates them.
type SummaryLSABody struct {
	Prefixes []Prefix
}

func (b SummaryLSABody) wireLen() int {
	return 4 + PrefixLen*len(b.Prefixes)
}

func (sb SummaryLSABody) marshal(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], uint32(len(sb.Prefixes)))
	off := 4
	for _, p := range sb.Prefixes {
		p.marshal(b[off : off+PrefixLen])
		off += PrefixLen
	}
}

func parseSummaryLSABody(b []byte) (SummaryLSABody, error) {
	if len(b) < 4 {
		return SummaryLSABody{}, parseErr("SummaryLSABody", ErrTruncated)
	}
	count := int(binary.BigEndian.Uint32(b[0:4]))
	want := 4 + PrefixLen*count
	if len(b) != want {
		return SummaryLSABody{}, parseErr("SummaryLSABody", ErrLengthMismatch)
	}

	sb := SummaryLSABody{Prefixes: make([]Prefix, 0, count)}
	off := 4
	for i := 0; i < count; i++ {
		sb.Prefixes = append(sb.Prefixes, parsePrefix(b[off:off+PrefixLen]))
		off += PrefixLen
	}
	return sb, nil
}

// AreaLinkLen is the fixed wire size of one inter-area link record: peer
// area id and aggregated metric.
const AreaLinkLen = 6

// AreaLink is one inter-area adjacency advertised by an area-leader's
// Area-LSA, representing the area itself as a single virtual node.
type AreaLink struct {
	PeerAreaID uint32
	Metric     uint16
}

func (l AreaLink) marshal(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], l.PeerAreaID)
	binary.BigEndian.PutUint16(b[4:6], l.Metric)
}

func parseAreaLink(b []byte) AreaLink {
	return AreaLink{
		PeerAreaID: binary.BigEndian.Uint32(b[0:4]),
		Metric:     binary.BigEndian.Uint16(b[4:6]),
	}
}

// AreaLSABody is the area-proxy Area-LSA body: the area's inter-area links,
// as seen from its area-leader.
type AreaLSABody struct {
	Links []AreaLink
}

func (b AreaLSABody) wireLen() int {
	return 4 + AreaLinkLen*len(b.Links)
}

func (ab AreaLSABody) marshal(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], uint32(len(ab.Links)))
	off := 4
	for _, l := range ab.Links {
		l.marshal(b[off : off+AreaLinkLen])
		off += AreaLinkLen
	}
}

func parseAreaLSABody(b []byte) (AreaLSABody, error) {
	if len(b) < 4 {
		return AreaLSABody{}, parseErr("AreaLSABody", ErrTruncated)
	}
	count := int(binary.BigEndian.Uint32(b[0:4]))
	want := 4 + AreaLinkLen*count
	if len(b) != want {
		return AreaLSABody{}, parseErr("AreaLSABody", ErrLengthMismatch)
	}

	ab := AreaLSABody{Links: make([]AreaLink, 0, count)}
	off := 4
	for i := 0; i < count; i++ {
		ab.Links = append(ab.Links, parseAreaLink(b[off:off+AreaLinkLen]))
		off += AreaLinkLen
	}
	return ab, nil
}

// LSA is a tagged-variant container: one shared header plus exactly one of
// the four body fields populated, selected by Header.Type. Dispatch is a
// type-code switch rather than an interface method call, so there is
// never a body in a field that disagrees with the header's type.
type LSA struct {
	Header    LSAHeader
	Router    *RouterLSABody
	L1Summary *SummaryLSABody
	Area      *AreaLSABody
	L2Summary *SummaryLSABody
}

func (lsa *LSA) bodyLen() (int, error) {
	switch lsa.Header.Type {
	case LSATypeRouter:
		if lsa.Router == nil {
			return 0, parseErr("LSA", ErrUnknownLSAType)
		}
		return lsa.Router.wireLen(), nil
	case LSATypeL1Summary:
		if lsa.L1Summary == nil {
			return 0, parseErr("LSA", ErrUnknownLSAType)
		}
		return lsa.L1Summary.wireLen(), nil
	case LSATypeArea:
		if lsa.Area == nil {
			return 0, parseErr("LSA", ErrUnknownLSAType)
		}
		return lsa.Area.wireLen(), nil
	case LSATypeL2Summary:
		if lsa.L2Summary == nil {
			return 0, parseErr("LSA", ErrUnknownLSAType)
		}
		return lsa.L2Summary.wireLen(), nil
	default:
		return 0, parseErr("LSA", ErrUnknownLSAType)
	}
}

// marshalBody writes the populated body into b, which must be exactly
// bodyLen() bytes.
func (lsa *LSA) marshalBody(b []byte) {
	switch lsa.Header.Type {
	case LSATypeRouter:
		lsa.Router.marshal(b)
	case LSATypeL1Summary:
		lsa.L1Summary.marshal(b)
	case LSATypeArea:
		lsa.Area.marshal(b)
	case LSATypeL2Summary:
		lsa.L2Summary.marshal(b)
	}
}

// MarshalLSA serializes lsa, filling in Header.Length and Header.Checksum.
// SeqNum, Age, LinkStateID, AdvertisingRouter and Type must already be set
// by the caller.
func MarshalLSA(lsa LSA) ([]byte, error) {
	bodyLen, err := lsa.bodyLen()
	if err != nil {
		return nil, err
	}

	lsa.Header.Length = uint16(LSAHeaderLen + bodyLen)

	body := make([]byte, bodyLen)
	lsa.marshalBody(body)
	lsa.Header.Checksum = lsaChecksum(lsa.Header, body)

	out := make([]byte, LSAHeaderLen+bodyLen)
	lsa.Header.marshal(out[:LSAHeaderLen])
	copy(out[LSAHeaderLen:], body)
	return out, nil
}

// ParseLSA parses a single LSA (header plus type-specific body) from b,
// verifying length and checksum.
func ParseLSA(b []byte) (LSA, error) {
	header, err := parseLSAHeader(b)
	if err != nil {
		return LSA{}, err
	}
	if int(header.Length) != len(b) {
		return LSA{}, parseErr("LSA", ErrLengthMismatch)
	}

	body := b[LSAHeaderLen:]
	if header.Checksum != lsaChecksum(header, body) {
		return LSA{}, parseErr("LSA", ErrChecksum)
	}

	lsa := LSA{Header: header}
	switch header.Type {
	case LSATypeRouter:
		rb, err := parseRouterLSABody(body)
		if err != nil {
			return LSA{}, err
		}
		lsa.Router = &rb
	case LSATypeL1Summary:
		sb, err := parseSummaryLSABody(body)
		if err != nil {
			return LSA{}, err
		}
		lsa.L1Summary = &sb
	case LSATypeArea:
		ab, err := parseAreaLSABody(body)
		if err != nil {
			return LSA{}, err
		}
		lsa.Area = &ab
	case LSATypeL2Summary:
		sb, err := parseSummaryLSABody(body)
		if err != nil {
			return LSA{}, err
		}
		lsa.L2Summary = &sb
	default:
		return LSA{}, parseErr("LSA", ErrUnknownLSAType)
	}

	return lsa, nil
}
