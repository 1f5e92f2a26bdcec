package core

import (
	"fmt"

	"github.com/golang/glog"
)

// Logging convention for the binding layer:
// Urgent:
//     unrecoverable or programmer-error conditions surfaced outside the
//     normal error-return path (publisher failures, teardown races)
// Info:
//     infrequent lifecycle events useful for monitoring (subscription
//     rebuilds on store swap)
// Debug:
//     per-update trace events keyed by instance id; frequent, off by default

const (
	LogLevelUrgent = 0
	LogLevelInfo   = 50
	LogLevelDebug  = 100
)

// GlobalLogLevel gates all binding-layer logging. Silent on normal operation.
var GlobalLogLevel = LogLevelUrgent

// LogFunction is a leveled, tagged printf.
type LogFunction func(format string, a ...any)

// LogFn returns a LogFunction that emits through glog at the given level
// with a fixed tag prefix.
func LogFn(level int, tag string) LogFunction {
	return func(format string, a ...any) {
		if level > GlobalLogLevel {
			return
		}
		m := fmt.Sprintf(format, a...)
		switch {
		case level <= LogLevelUrgent:
			glog.Errorf("%s: %s", tag, m)
		case level <= LogLevelInfo:
			glog.Infof("%s: %s", tag, m)
		default:
			glog.V(2).Infof("%s: %s", tag, m)
		}
	}
}
