package dvid

import "time"

// ModeFlag is a logging severity threshold.
type ModeFlag uint

const (
	DebugMode ModeFlag = iota
	InfoMode
	WarningMode
	ErrorMode
	SilentMode
)

// mode is the minimum severity that gets logged.
var mode = InfoMode

// Logger receives printf-style messages that passed the severity threshold.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	// Shutdown flushes and closes any log file.
	Shutdown()
}

// SetLogMode sets the lowest severity that gets logged, e.g., WarningMode keeps warnings
// and errors.  SilentMode turns logging off.
func SetLogMode(newMode ModeFlag) {
	mode = newMode
}

// logAt sends a message to the given level of the logger if the mode allows it.
func logAt(level ModeFlag, l Logger, format string, args []interface{}) {
	if mode > level {
		return
	}
	switch level {
	case DebugMode:
		l.Debugf(format, args...)
	case InfoMode:
		l.Infof(format, args...)
	case WarningMode:
		l.Warningf(format, args...)
	default:
		l.Errorf(format, args...)
	}
}

func Debugf(format string, args ...interface{})   { logAt(DebugMode, logger, format, args) }
func Infof(format string, args ...interface{})    { logAt(InfoMode, logger, format, args) }
func Warningf(format string, args ...interface{}) { logAt(WarningMode, logger, format, args) }
func Errorf(format string, args ...interface{})   { logAt(ErrorMode, logger, format, args) }

// Shutdown closes any log file.
func Shutdown() {
	logger.Shutdown()
}

// TimeLog appends the time elapsed since its creation to each message:
//
//	timedLog := dvid.NewTimeLog()
//	...
//	timedLog.Infof("Copied %d planes", n)  // "Copied 12 planes: 1.2s"
type TimeLog struct {
	logger Logger
	start  time.Time
}

func NewTimeLog() TimeLog {
	return TimeLog{logger, time.Now()}
}

func (t TimeLog) Debugf(format string, args ...interface{}) {
	logAt(DebugMode, t.logger, format+": %s\n", append(args, time.Since(t.start)))
}

func (t TimeLog) Infof(format string, args ...interface{}) {
	logAt(InfoMode, t.logger, format+": %s\n", append(args, time.Since(t.start)))
}
