// Package fib declares the kernel/forwarding-table collaborator ospf.Router
// installs computed routes into: AddHostRoute/RemoveHostRoute/
// AddMulticastRoute. Like transport.Transport, this is an
// interface only — ospfd never owns a real forwarding table, it just
// diffs its computed routing set against what's installed and calls this
// API to reconcile the two.
package fib

import "net/netip"

// Table is the forwarding-table collaborator. Implementations translate
// these calls into whatever the host platform uses (a kernel routing
// table, a simulated network's global router, an in-memory table for
// tests).
type Table interface {
	// AddHostRoute installs a route to prefix via nextHop, reachable out
	// ifaceIndex, at the given metric. Despite the name it accepts any
	// prefix length, not just /32s: default-route injection
	// and L1/L2-Summary prefixes both go through this same call.
	AddHostRoute(prefix netip.Prefix, nextHop netip.Addr, ifaceIndex uint32, metric uint32) error

	// RemoveHostRoute withdraws a previously-installed route to prefix.
	RemoveHostRoute(prefix netip.Prefix) error

	// AddMulticastRoute installs a multicast forwarding entry: packets
	// from source (the zero netip.Addr means "any source") to group,
	// arriving on inputIface, are forwarded out each of outputIfaces.
	AddMulticastRoute(source netip.Addr, group netip.Addr, inputIface uint32, outputIfaces []uint32) error
}
