// Package assert provides lightweight invariant checks for conditions that
// must never be false if the rest of the code is correct. Unlike error
// returns, a failed assertion indicates a bug in ospfd itself, not a
// malformed packet or a misbehaving peer.
package assert

import "fmt"

// Assert panics with a formatted message if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// IsNil panics if err is non-nil.
func IsNil(err error, args ...any) {
	if err != nil {
		msg := "expected nil error"
		if len(args) > 0 {
			if format, ok := args[0].(string); ok {
				msg = fmt.Sprintf(format, args[1:]...)
			}
		}
		panic(fmt.Sprintf("assertion failed: %s: %v", msg, err))
	}
}

// IsNotNil panics if v is nil.
func IsNotNil(v any, format string, args ...any) {
	if v == nil {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// Never panics unconditionally. Used to mark code paths that must be
// unreachable.
func Never(format string, args ...any) {
	panic(fmt.Sprintf("unreachable: "+format, args...))
}
