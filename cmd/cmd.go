// Package cmd implements the ospfd operator console: one HandleX function
// per command, registered against an inputreader.InputReader in main. The
// shape (a package-global Router set once via SetGlobalVars, one file per
// command) carries over to routing introspection (lsdb, routes,
// arealeader) instead of the original chat-app commands.
package cmd

import "github.com/lstate/ospfd/ospf"

var router *ospf.Router

// SetGlobalVars wires the console's command handlers to r.
func SetGlobalVars(r *ospf.Router) {
	router = r
}
