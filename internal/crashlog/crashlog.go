// Package crashlog gives every producer goroutine in dtop the same panic
// safety net the teacher applied ad hoc per-goroutine: a recovered panic is
// written to a crash log with a full stack dump instead of taking the
// whole process down, and the goroutine that hit it simply stops.
package crashlog

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"
)

// Path is where crash reports are appended. Overridable in tests.
var Path = filepath.Join(os.TempDir(), "dtop-crash.log")

// Write appends a crash report for a recovered panic value r, tagged with
// the name of the goroutine that produced it.
func Write(r any, goroutineName string) {
	if r == nil {
		return
	}

	f, err := os.OpenFile(Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		f = os.Stderr
	} else {
		defer f.Close()
	}

	fmt.Fprintf(f, "\n\n=== crash report: %s ===\n", time.Now().Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(f, "goroutine: %s\n", goroutineName)
	fmt.Fprintf(f, "error: %v\n\n", r)
	fmt.Fprintf(f, "stack:\n%s\n", debug.Stack())

	buf := make([]byte, 1<<20)
	n := runtime.Stack(buf, true)
	fmt.Fprintf(f, "all goroutines:\n%s\n", buf[:n])

	if f != os.Stderr {
		fmt.Fprintf(os.Stderr, "dtop: recovered panic in %s, see %s\n", goroutineName, Path)
	}
}

// Recover is meant to be deferred directly at the top of a goroutine:
//
//	defer crashlog.Recover("dockerhost.Manager(host)")
//
// It writes a crash report and swallows the panic rather than letting it
// escape the goroutine.
func Recover(goroutineName string) {
	if r := recover(); r != nil {
		Write(r, goroutineName)
	}
}

// SafeGo starts fn in a new goroutine guarded by Recover, so a panic in a
// background producer never takes the rest of the program down with it.
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name)
		fn()
	}()
}
