package transport

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"sync"

	"github.com/lstate/ospfd/internal/logger"
)

// udpReadBufferBytes is sized for the common Ethernet MTU, generous enough
// for a full Link-State-Update carrying several LSAs.
const udpReadBufferBytes = 1500

// UDPTransport is a concrete Transport backed by one *net.UDPConn per bound
// interface, multicasting Hello/flood traffic to multicastAddr and
// delivering every bound connection's datagrams onto a single shared
// Receive channel.
type UDPTransport struct {
	mu            sync.Mutex
	wg            sync.WaitGroup
	multicastAddr netip.AddrPort
	conns         map[uint32]*net.UDPConn
	recv          chan Packet
	quit          chan struct{}
	closed        bool
}

// NewUDPTransport returns a transport sending multicast traffic (any Send
// whose dest equals AllRouters) to multicastAddr, e.g. 224.0.0.5:OSPF_PORT.
func NewUDPTransport(multicastAddr netip.AddrPort) *UDPTransport {
	return &UDPTransport{
		multicastAddr: multicastAddr,
		conns:         make(map[uint32]*net.UDPConn),
		recv:          make(chan Packet, 64),
		quit:          make(chan struct{}),
	}
}

// Bind opens a UDP socket on local for ifaceIndex and starts reading from it
// in the background. mask is recorded by the caller, not this transport; a
// real link's subnet mask plays no part in routing a UDP datagram.
func (t *UDPTransport) Bind(ifaceIndex uint32, local netip.AddrPort, mask uint32) error {
	conn, err := net.ListenUDP("udp4", net.UDPAddrFromAddrPort(local))
	if err != nil {
		return fmt.Errorf("transport: bind interface %d on %v: %w", ifaceIndex, local, err)
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		conn.Close()
		return errors.New("transport: closed")
	}
	t.conns[ifaceIndex] = conn
	t.wg.Add(1)
	t.mu.Unlock()

	go t.readLoop(ifaceIndex, conn)
	return nil
}

func (t *UDPTransport) readLoop(ifaceIndex uint32, conn *net.UDPConn) {
	defer t.wg.Done()
	buf := make([]byte, udpReadBufferBytes)
	for {
		n, addr, err := conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Warnf("transport: read on interface %d failed: %v", ifaceIndex, err)
			continue
		}

		payload := make([]byte, n)
		copy(payload, buf[:n])

		select {
		case t.recv <- Packet{Payload: payload, Source: addr, Interface: ifaceIndex}:
		case <-t.quit:
			return
		}
	}
}

// Send transmits payload on ifaceIndex to dest, or to the configured
// multicast group when dest == AllRouters.
func (t *UDPTransport) Send(ifaceIndex uint32, payload []byte, dest netip.AddrPort) error {
	t.mu.Lock()
	conn, ok := t.conns[ifaceIndex]
	t.mu.Unlock()
	if !ok {
		return fmt.Errorf("transport: interface %d is not bound", ifaceIndex)
	}

	if dest == AllRouters {
		dest = t.multicastAddr
	}
	_, err := conn.WriteToUDPAddrPort(payload, dest)
	return err
}

// Receive returns the shared channel every bound interface's readLoop
// delivers onto. It is closed once Close is called.
func (t *UDPTransport) Receive() <-chan Packet { return t.recv }

// InterfaceUp reports whether ifaceIndex is currently bound. A real driver
// with link-state visibility would instead consult the kernel; a bound UDP
// socket has no concept of link carrier, so this is the closest analogue.
func (t *UDPTransport) InterfaceUp(ifaceIndex uint32) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.conns[ifaceIndex]
	return ok, nil
}

// Close closes every bound interface and the shared receive channel.
func (t *UDPTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	conns := t.conns
	t.conns = make(map[uint32]*net.UDPConn)
	close(t.quit)
	t.mu.Unlock()

	var firstErr error
	for _, conn := range conns {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	t.wg.Wait()
	close(t.recv)
	return firstErr
}
