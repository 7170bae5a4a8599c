// Package transport declares the packet substrate ospfd is built on: the
// interface ospf.Router sends and receives raw OSPF packets through. It is
// deliberately just an interface, generalized from a single
// Open/SendTo/Subscribe/Close socket to a multicast-plus-unicast,
// multi-interface model. UDPTransport in this package is one concrete
// implementation; others (a simulated network, whatever the driver embeds
// ospfd in) can live outside this module.
package transport

import "net/netip"

// AllRouters is the sentinel destination meaning "send to this link's
// Hello/flooding multicast group" rather than a specific neighbor unicast
// address. Callers compare against this with addr == AllRouters; it is the
// zero value of netip.AddrPort so iface.SendFunc's "zero addr means
// multicast" convention composes with it directly.
var AllRouters = netip.AddrPort{}

// Packet is one received datagram, tagged with the interface it arrived on
// so the router can attribute it to the right iface.Interface and LSDB
// area.
type Packet struct {
	Payload   []byte
	Source    netip.AddrPort
	Interface uint32
}

// Transport is the packet substrate ospfd consumes. Implementations bind
// one or more interfaces, send payloads to a multicast group or a neighbor
// unicast address, and deliver received packets through Receive.
type Transport interface {
	// Bind opens interface ifaceIndex with local address/mask local/mask
	// for sending and receiving OSPF packets.
	Bind(ifaceIndex uint32, local netip.AddrPort, mask uint32) error

	// Send transmits payload on ifaceIndex to dest. dest == AllRouters
	// means the link's Hello/flooding multicast group; any other address
	// is a neighbor unicast send.
	Send(ifaceIndex uint32, payload []byte, dest netip.AddrPort) error

	// Receive returns a channel of packets arriving on any bound
	// interface. The channel is closed when Close is called.
	Receive() <-chan Packet

	// InterfaceUp reports whether ifaceIndex currently has link. ospfd
	// polls this when config.AutoSyncInterfaces is set, rather than
	// requiring the substrate to push notifications.
	InterfaceUp(ifaceIndex uint32) (bool, error)

	// Close releases every bound interface and closes the Receive
	// channel.
	Close() error
}
