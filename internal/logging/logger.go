// Package logging writes one JSON object per log line: level, timestamp,
// message and any caller-supplied fields.
package logging

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Fields carries structured key/value context attached to a log entry.
type Fields map[string]interface{}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelError
	levelFatal
)

var levelNames = [...]string{"debug", "info", "error", "fatal"}

var minLevel = levelInfo

// SetLevel sets the minimum severity that will be emitted. Unknown names
// keep the current level.
func SetLevel(name string) {
	for i, n := range levelNames {
		if n == name {
			minLevel = level(i)
			return
		}
	}
}

var out = log.New(os.Stderr, "", 0)

// emit builds the entry in a fresh map so callers can reuse their Fields.
func emit(lv level, msg string, err error, fields Fields) {
	if lv < minLevel {
		return
	}
	entry := make(Fields, len(fields)+4)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = levelNames[lv]
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["msg"] = msg
	if err != nil {
		entry["error"] = err.Error()
	}
	b, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		// A field that won't marshal still deserves a line.
		out.Printf("%s: %s (%v)", levelNames[lv], msg, fields)
		return
	}
	out.Println(string(b))
}

// Debug logs a verbose diagnostic message with optional fields.
func Debug(msg string, fields Fields) {
	emit(levelDebug, msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	emit(levelInfo, msg, nil, fields)
}

// Error logs an error message; a non-nil err lands in the "error" field.
func Error(msg string, err error, fields Fields) {
	emit(levelError, msg, err, fields)
}

// Fatal logs like Error and then exits the process.
func Fatal(msg string, err error, fields Fields) {
	emit(levelFatal, msg, err, fields)
	os.Exit(1)
}
