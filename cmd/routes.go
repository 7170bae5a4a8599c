package cmd

import (
	"fmt"
	"os"

	"github.com/lstate/ospfd/internal/logger"
)

// HandleRoutes prints the router's current computed routing set by writing
// it to a temp file via Router.PrintRouting and echoing it to stdout.
// Usage: routes
func HandleRoutes(args []string) {
	if len(args) != 0 {
		fmt.Println("Usage: routes")
		return
	}
	if router == nil {
		logger.Warnf("router is not initialized")
		return
	}

	dir, err := os.MkdirTemp("", "ospfd-routes-*")
	if err != nil {
		fmt.Println("failed to create temp dir:", err)
		return
	}
	defer os.RemoveAll(dir)

	const fileName = "routes.txt"
	if err := router.PrintRouting(dir, fileName); err != nil {
		fmt.Println("failed to print routing table:", err)
		return
	}

	out, err := os.ReadFile(dir + "/" + fileName)
	if err != nil {
		fmt.Println("failed to read routing table:", err)
		return
	}
	fmt.Print(string(out))
}
