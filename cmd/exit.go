package cmd

import "fmt"

// HandleExit disables the router before the process exits, stopping Hello
// origination and dead-timer tracking so any remaining flush of output
// isn't racing a live control loop.
// Usage: exit
func HandleExit(args []string) {
	if router == nil {
		return
	}
	router.Disable()
	fmt.Println("router disabled, exiting")
}
