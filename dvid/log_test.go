package dvid

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) record(level, format string, args ...interface{}) {
	r.messages = append(r.messages, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) { r.record("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...interface{})  { r.record("INFO", format, args...) }
func (r *recordingLogger) Warningf(format string, args ...interface{}) {
	r.record("WARNING", format, args...)
}
func (r *recordingLogger) Errorf(format string, args ...interface{}) { r.record("ERROR", format, args...) }
func (r *recordingLogger) Shutdown()                                 {}

func TestLogMode(t *testing.T) {
	saved := mode
	defer SetLogMode(saved)

	rec := &recordingLogger{}
	SetLogMode(WarningMode)
	for _, level := range []ModeFlag{DebugMode, InfoMode, WarningMode, ErrorMode} {
		logAt(level, rec, "level %d", []interface{}{level})
	}
	expected := []string{"WARNING level 2", "ERROR level 3"}
	if strings.Join(rec.messages, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v\n", expected, rec.messages)
	}

	rec.messages = nil
	SetLogMode(SilentMode)
	logAt(ErrorMode, rec, "dropped", nil)
	if len(rec.messages) != 0 {
		t.Errorf("expected silent mode to drop errors, got %v\n", rec.messages)
	}
}

func TestTimeLog(t *testing.T) {
	saved := mode
	defer SetLogMode(saved)
	SetLogMode(InfoMode)

	rec := &recordingLogger{}
	timedLog := TimeLog{logger: rec, start: time.Now().Add(-time.Second)}
	timedLog.Debugf("hidden")
	timedLog.Infof("copied %d planes", 3)
	if len(rec.messages) != 1 || !strings.HasPrefix(rec.messages[0], "INFO copied 3 planes: 1") {
		t.Errorf("expected one info message with elapsed time, got %v\n", rec.messages)
	}
}
