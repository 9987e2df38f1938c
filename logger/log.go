package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"
)

// Logger writes leveled, tagged log messages into its parent backend.
type Logger struct {
	level   uint32
	tag     string
	backend *Backend
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.level))
}

// SetLevel changes the logging level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.level, uint32(level))
}

// Tracef formats message according to format specifier and writes it at
// the trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.print(LevelTrace, format, args...)
}

// Debugf formats message according to format specifier and writes it at
// the debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.print(LevelDebug, format, args...)
}

// Infof formats message according to format specifier and writes it at
// the info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.print(LevelInfo, format, args...)
}

// Warnf formats message according to format specifier and writes it at
// the warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.print(LevelWarn, format, args...)
}

// Errorf formats message according to format specifier and writes it at
// the error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.print(LevelError, format, args...)
}

// Criticalf formats message according to format specifier and writes it at
// the critical level.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.print(LevelCritical, format, args...)
}

func (l *Logger) print(level Level, format string, args ...interface{}) {
	if level < l.Level() {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	message := fmt.Sprintf(format, args...)

	callsite := ""
	if l.backend.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		callsite = " " + l.callsite()
	}

	formatted := fmt.Sprintf("%s [%s] %s:%s %s\n", timestamp, level, l.tag, callsite, message)
	l.backend.write(level, []byte(formatted))

	if level == LevelCritical {
		_, _ = fmt.Fprint(os.Stderr, formatted)
	}
}

func (l *Logger) callsite() string {
	// Three frames up: callsite -> print -> leveled method -> caller.
	_, file, line, ok := runtime.Caller(3)
	if !ok {
		return "???:0"
	}
	if l.backend.flag&LogFlagShortFile != 0 {
		file = filepath.Base(file)
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// LogAndMeasureExecutionTime logs the start of functionName at the debug
// level and returns a closure that logs its end together with the elapsed
// time.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s start", functionName)
	return func() {
		log.Debugf("%s end. Took: %s", functionName, time.Since(start))
	}
}
