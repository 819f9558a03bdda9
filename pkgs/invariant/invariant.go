// Package invariant provides contract assertions for the Lilt front end.
//
// Assertions are a force multiplier for discovering bugs in the stateful
// parts of the pipeline, above all the indentation-stack automaton. Use
// Precondition/Postcondition to express function contracts, and Invariant
// for internal consistency checks such as unwind-loop progress.
//
// All functions panic on violation - these are programming errors, not
// diagnostics to be reported to the user.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func (p *Preparser) push(e stackEntry) {
//	    invariant.Precondition(e.indent >= 0, "indent must not be negative")
//	    // ... work ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Use this for loop progress checks and state consistency, e.g. that the
// indentation stack stays ordered by line while unwinding:
//
//	prevDepth := len(p.stack)
//	for p.unwindOnce() {
//	    invariant.Invariant(len(p.stack) < prevDepth, "unwind must pop")
//	    prevDepth = len(p.stack)
//	}
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil.
// This is a precondition check for pointer arguments.
func NotNil(value interface{}, name string) {
	if value == nil {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

// fail panics with a formatted message including call stack context.
func fail(kind, format string, args ...interface{}) {
	// Capture call stack (skip fail() and wrapper function)
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	// Build violation message
	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)

	// Add first frame for context (file:line where violation occurred)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
