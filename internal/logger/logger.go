// Package logger provides the leveled logging used across ospfd. Every
// component logs through here instead of calling fmt/log directly, so a
// single LOG_LEVEL environment variable governs verbosity for the whole
// daemon.
package logger

import (
	"fmt"
	"log"
	"os"
)

type LogLevel int

const (
	NONE LogLevel = iota
	WARN
	INFO
	DEBUG
)

const LOG_LEVEL_ENV = "LOG_LEVEL"

var (
	logLevel LogLevel
	enabled  = true
)

func init() {
	envvar, present := os.LookupEnv(LOG_LEVEL_ENV)
	if !present {
		logLevel = INFO
		return
	}

	switch envvar {
	case "NONE":
		logLevel = NONE
	case "WARN":
		logLevel = WARN
	case "INFO":
		logLevel = INFO
	case "DEBUG":
		logLevel = DEBUG
	default:
		logLevel = INFO
		Warnf("Unknown log level '%s', defaulting to INFO", envvar)
	}
}

// SetEnable toggles logging on or off entirely, independent of level. Used
// to quiet noisy hot paths (e.g. per-packet retransmission scans) without
// losing the configured level.
func SetEnable(e bool) {
	enabled = e
}

// SetLevel overrides the log level programmatically, e.g. from a driver's
// Configure call.
func SetLevel(l LogLevel) {
	logLevel = l
}

// Warnf prints a message prefixed with "[WARN] ".
func Warnf(format string, v ...any) {
	if !enabled || logLevel < WARN {
		return
	}
	log.Printf(fmt.Sprintf("[WARN] %s", format), v...)
}

// Infof prints an informational message prefixed with "[INFO] ".
func Infof(format string, v ...any) {
	if !enabled || logLevel < INFO {
		return
	}
	log.Printf(fmt.Sprintf("[INFO] %s", format), v...)
}

// Debugf prints a debug message prefixed with "[DEBUG] ".
func Debugf(format string, v ...any) {
	if !enabled || logLevel < DEBUG {
		return
	}
	log.Printf(fmt.Sprintf("[DEBUG] %s", format), v...)
}

// Errorf prints an error-level message prefixed with "[ERROR] " without
// aborting the process. Protocol-level errors never escalate past here;
// log lines are the only record of them, as ospf keeps no error counters.
func Errorf(format string, v ...any) {
	if !enabled || logLevel < WARN {
		return
	}
	log.Printf(fmt.Sprintf("[ERROR] %s", format), v...)
}
