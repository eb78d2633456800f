// Package logging provides file/line/function-annotated debug output for
// the driver station protocol core, gated on a package-level debug flag.
// Set DEBUG_MODE true (via config.Load) to enable verbose output during
// development; production builds leave it false and only Error and Panic
// still log.
package logging

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
)

// DEBUG_MODE controls whether Print produces output. Error and Panic
// always log, Error verbosely when DEBUG_MODE is set.
var DEBUG_MODE = false

// Print logs a debug message with an automatic file:line[func] prefix.
// No-op unless DEBUG_MODE is set.
func Print(format string, args ...interface{}) {
	if !DEBUG_MODE {
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Printf("DEBUG: "+format+"\n", args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())

	log.Printf("[%s:%d %s]: "+format+"\n", append([]interface{}{filename, line, funcName}, args...)...)
}

// Error logs an error with caller info when DEBUG_MODE is set, or a bare
// message otherwise. Errors are always worth logging, so unlike Print this
// has no silent path.
func Error(err error) {
	if err == nil {
		return
	}

	if !DEBUG_MODE {
		log.Printf("ERROR: %v\n", err)
		return
	}

	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Printf("ERROR: %v\n", err)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())
	log.Printf("ERROR [%s:%d %s]: %v\n", filename, line, funcName, err)
}

// Panic logs with caller info and panics. Reserved for programmer errors
// (duplicate adapter registration, nil factory) that should never occur
// in a correctly wired program.
func Panic(format string, args ...interface{}) {
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		log.Panicf("PANIC: "+format, args...)
		return
	}

	filename := filepath.Base(file)
	funcName := getShortFuncName(runtime.FuncForPC(pc).Name())
	log.Panicf("PANIC [%s:%d %s]: "+format, append([]interface{}{filename, line, funcName}, args...)...)
}

func getShortFuncName(fullName string) string {
	if lastSlash := strings.LastIndex(fullName, "/"); lastSlash >= 0 {
		fullName = fullName[lastSlash+1:]
	}
	if lastDot := strings.LastIndex(fullName, "."); lastDot >= 0 {
		return fullName[lastDot+1:]
	}
	return fullName
}
