package cmd

import (
	"fmt"
	"strings"

	"github.com/lstate/ospfd/internal/logger"
)

// HandleLogLevel sets the process-wide log level.
// Usage: loglvl [NONE|WARN|INFO|DEBUG]
func HandleLogLevel(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: loglvl [NONE|WARN|INFO|DEBUG]")
		return
	}

	switch strings.ToUpper(args[0]) {
	case "NONE":
		logger.SetLevel(logger.NONE)
	case "WARN":
		logger.SetLevel(logger.WARN)
	case "INFO":
		logger.SetLevel(logger.INFO)
	case "DEBUG":
		logger.SetLevel(logger.DEBUG)
	default:
		fmt.Printf("invalid log level: %s\n", args[0])
		return
	}
	fmt.Printf("log level set to %s\n", strings.ToUpper(args[0]))
}
