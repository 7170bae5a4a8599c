// Package iface drives one link's Hello protocol: periodic Hello
// origination, neighbor discovery, and the Down/Init/TwoWay/Full adjacency
// state machine. Point-to-point links reach Full directly from TwoWay once
// the flood package finishes an initial full-LSDB exchange; there is no
// Database-Description/Link-State-Request negotiation.
//
// Grounded on a neighbor-by-address map and a connect/disconnect
// lifecycle, generalized into an explicit state machine driven by
// internal/clock instead of ad hoc timers.
package iface

import "fmt"

// State is a neighbor's position in the Down/Init/TwoWay/Full adjacency
// state machine.
type State int

const (
	Down State = iota
	Init
	TwoWay
	Full
)

func (s State) String() string {
	switch s {
	case Down:
		return "Down"
	case Init:
		return "Init"
	case TwoWay:
		return "TwoWay"
	case Full:
		return "Full"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
