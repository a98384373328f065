package log

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
)

// DefaultFlags are the standard logger's initial flags
const DefaultFlags = log.LstdFlags

var debug atomic.Bool

// SetOutput sets the destination of the standard logger
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetFlags sets the flags of the standard logger
func SetFlags(flags int) {
	log.SetFlags(flags)
}

// SetDebug enables or disables Debug output
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// Print calls the standard log.Print()
func Print(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Warnf calls the standard log.Printf() with a [WARN] prefix
func Warnf(format string, v ...interface{}) {
	log.Output(2, "[WARN] "+fmt.Sprintf(format, v...))
}

// Debug calls the standard log.Print() with a [DEBUG] prefix
func Debug(v ...interface{}) {
	if !debug.Load() {
		return
	}
	log.Output(2, "[DEBUG] "+fmt.Sprint(v...))
}

// Debugf calls the standard log.Printf() with a [DEBUG] prefix
func Debugf(format string, v ...interface{}) {
	if !debug.Load() {
		return
	}
	log.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
}
