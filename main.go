package main

import (
	"flag"
	"fmt"
	"net/netip"
	"os"

	"github.com/lstate/ospfd/cmd"
	"github.com/lstate/ospfd/cmd/inputreader"
	"github.com/lstate/ospfd/config"
	"github.com/lstate/ospfd/fib"
	"github.com/lstate/ospfd/internal/clock"
	"github.com/lstate/ospfd/internal/logger"
	"github.com/lstate/ospfd/ospf"
	"github.com/lstate/ospfd/transport"
)

func main() {
	routerID := flag.Uint("router-id", 1, "this router's 32-bit ID")
	localAddr := flag.String("local", "127.0.0.1:8900", "local address:port to bind interface 0 on")
	multicastAddr := flag.String("multicast", "239.255.0.5:8900", "OSPF all-routers multicast group")
	flag.Parse()

	local, err := netip.ParseAddrPort(*localAddr)
	if err != nil {
		logger.Errorf("invalid -local address: %v", err)
		os.Exit(1)
	}
	mcast, err := netip.ParseAddrPort(*multicastAddr)
	if err != nil {
		logger.Errorf("invalid -multicast address: %v", err)
		os.Exit(1)
	}

	t := transport.NewUDPTransport(mcast)
	f := fib.NewBartTable()
	router := ospf.New(uint32(*routerID), clock.RealClock{}, t, f)
	router.Configure(config.Default())

	if err := router.AddInterface(0, local, 0xFFFFFF00); err != nil {
		logger.Errorf("failed to add interface 0: %v", err)
		os.Exit(1)
	}
	router.Enable()

	stop := make(chan struct{})
	go router.Run(stop)

	cmd.SetGlobalVars(router)
	reader := inputreader.NewInputReader(func() string {
		return fmt.Sprintf("router %d", router.RouterID())
	})
	reader.AddHandler("lsdb", cmd.HandleLSDB)
	reader.AddHandler("arealsdb", cmd.HandleAreaLSDB)
	reader.AddHandler("routes", cmd.HandleRoutes)
	reader.AddHandler("area", cmd.HandleArea)
	reader.AddHandler("arealeader", cmd.HandleAreaLeader)
	reader.AddHandler("loglvl", cmd.HandleLogLevel)
	reader.AddHandler("exit", cmd.HandleExit)

	reader.InputLoop()
	close(stop)
	t.Close()
}
