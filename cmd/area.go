package cmd

import (
	"fmt"
	"strconv"

	"github.com/lstate/ospfd/internal/logger"
)

// HandleArea reassigns an interface to a different area.
// Usage: area <ifaceIndex> <areaID>
func HandleArea(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: area <ifaceIndex> <areaID>")
		return
	}
	ifaceIndex, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("interface index must be a number:", err)
		return
	}
	areaID, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		fmt.Println("area ID must be a number:", err)
		return
	}
	if router == nil {
		logger.Warnf("router is not initialized")
		return
	}
	if err := router.SetArea(uint32(ifaceIndex), uint32(areaID)); err != nil {
		fmt.Println("failed to set area:", err)
		return
	}
	fmt.Printf("interface %d now in area %d\n", ifaceIndex, areaID)
}

// HandleAreaLeader forces this router's area-leader status for its primary
// area, bypassing debounce. Intended for tests and demos, never production
// use.
// Usage: arealeader <true|false>
func HandleAreaLeader(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: arealeader <true|false>")
		return
	}
	want, err := strconv.ParseBool(args[0])
	if err != nil {
		fmt.Println("expected true or false:", err)
		return
	}
	if router == nil {
		logger.Warnf("router is not initialized")
		return
	}
	router.SetAreaLeader(want)
	fmt.Printf("area-leader override set to %v\n", want)
}
