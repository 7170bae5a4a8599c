package cmd

import (
	"fmt"
	"strconv"

	"github.com/lstate/ospfd/internal/logger"
)

// HandleLSDB prints the Router-LSAs and L1-Summary-LSAs known to areaID.
// Usage: lsdb <areaID>
func HandleLSDB(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: lsdb <areaID>")
		return
	}
	areaID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("area ID must be a number:", err)
		return
	}
	if router == nil {
		logger.Warnf("router is not initialized")
		return
	}

	fmt.Printf("Router-LSAs in area %d:\n", areaID)
	for _, lsa := range router.GetLSDB(uint32(areaID)) {
		fmt.Printf("  %+v\n", lsa.Header)
	}
	fmt.Printf("L1-Summary-LSAs in area %d:\n", areaID)
	for _, lsa := range router.GetL1SummaryLsdb(uint32(areaID)) {
		fmt.Printf("  %+v -> %v\n", lsa.Header, lsa.L1Summary)
	}
}

// HandleAreaLSDB prints the Area-LSAs and L2-Summary-LSAs known to this
// router, regardless of area.
// Usage: arealsdb
func HandleAreaLSDB(args []string) {
	if len(args) != 0 {
		fmt.Println("Usage: arealsdb")
		return
	}
	if router == nil {
		logger.Warnf("router is not initialized")
		return
	}

	fmt.Println("Area-LSAs:")
	for _, lsa := range router.GetAreaLsdb() {
		fmt.Printf("  %+v -> %v\n", lsa.Header, lsa.Area)
	}
	fmt.Println("L2-Summary-LSAs:")
	for _, lsa := range router.GetL2SummaryLsdb() {
		fmt.Printf("  %+v -> %v\n", lsa.Header, lsa.L2Summary)
	}
}
