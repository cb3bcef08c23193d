package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type (
	LogStatus int
	LogLevel  int
)

const (
	VERBOSE LogStatus = iota
	DEBUG
	INFO
	SUCCESS
	NEW
	REMOVE
	STOP
	WARNING
	ERROR
	FATAL
)

const (
	LevelVerbose LogLevel = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

func (e LogStatus) String() string {
	return []string{
		"V",
		"D",
		"I",
		"✓",
		"+",
		"-",
		"X",
		"!",
		"!!",
		"PANIC",
	}[e]
}

func (e LogStatus) Color() *color.Color {
	return []*color.Color{
		color.New(color.FgWhite, color.Italic),                //Verbose
		color.New(color.FgWhite, color.Italic),                //Debug
		color.New(color.FgWhite),                              //Info
		color.New(color.FgHiGreen),                            //Success
		color.New(color.FgGreen, color.Italic),                //New
		color.New(color.FgYellow, color.Italic),               //Remove
		color.New(color.FgHiYellow),                           //Stop
		color.New(color.FgYellow, color.Underline),            //Warning
		color.New(color.FgHiRed, color.Bold),                  //Error
		color.New(color.FgHiRed, color.Bold, color.Underline), //PANIC
	}[e]
}

// Level returns the minimum logging level at which
// messages with this status are emitted.
func (e LogStatus) Level() LogLevel {
	switch e {
	case VERBOSE:
		return LevelVerbose
	case DEBUG:
		return LevelDebug
	case WARNING:
		return LevelWarning
	case ERROR:
		return LevelError
	case FATAL:
		return LevelFatal
	default:
		return LevelInfo
	}
}

// ParseLevel converts a textual level (as found in config files and
// environment variables) in to a LogLevel.
func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "verbose":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}

	return LevelInfo, fmt.Errorf("unknown log level '%s'", level)
}

type Logger interface {
	Emit(LogStatus, string, ...any)

	Verbosef(string, ...any)
	Debugf(string, ...any)
	Infof(string, ...any)
	Successf(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
	Fatalf(string, ...any)

	// Printf is provided so a Logger can be handed to libraries
	// which expect a stdlib-like logger (e.g. goose).
	Printf(string, ...any)
}

type loggerImpl struct {
	name string
}

func (l *loggerImpl) Emit(status LogStatus, message string, interpolations ...any) {
	Log.Emit(status, l.name, message, interpolations...)
}

func (l *loggerImpl) Verbosef(m string, i ...any) { l.Emit(VERBOSE, m, i...) }
func (l *loggerImpl) Debugf(m string, i ...any)   { l.Emit(DEBUG, m, i...) }
func (l *loggerImpl) Infof(m string, i ...any)    { l.Emit(INFO, m, i...) }
func (l *loggerImpl) Successf(m string, i ...any) { l.Emit(SUCCESS, m, i...) }
func (l *loggerImpl) Warnf(m string, i ...any)    { l.Emit(WARNING, m, i...) }
func (l *loggerImpl) Errorf(m string, i ...any)   { l.Emit(ERROR, m, i...) }
func (l *loggerImpl) Fatalf(m string, i ...any)   { l.Emit(FATAL, m, i...) }
func (l *loggerImpl) Printf(m string, i ...any)   { l.Emit(INFO, ensureNewline(m), i...) }

type LoggerManager interface {
	GetLogger(string) Logger
	Emit(LogStatus, string, string, ...any)
	SetMinLevel(LogLevel)
	SetOutput(io.Writer)
}

var Log LoggerManager = &loggerMgr{
	offset:   0,
	minLevel: LevelInfo,
	out:      os.Stdout,
}

type loggerMgr struct {
	sync.Mutex
	offset   int
	minLevel LogLevel
	out      io.Writer
}

func (l *loggerMgr) GetLogger(name string) Logger {
	return &loggerImpl{name: name}
}

func (l *loggerMgr) Emit(status LogStatus, name string, message string, interpolations ...any) {
	l.Lock()
	defer l.Unlock()

	if status.Level() < l.minLevel {
		return
	}

	l.setNameOffset(len(name))
	padding := strings.Repeat(" ", l.offset-len(name))
	msg := fmt.Sprintf("[%s] %s(%s) %s", name, padding, status, fmt.Sprintf(message, interpolations...))

	status.Color().Fprint(l.out, msg)
}

func (l *loggerMgr) SetMinLevel(level LogLevel) {
	l.Lock()
	defer l.Unlock()
	l.minLevel = level
}

func (l *loggerMgr) SetOutput(w io.Writer) {
	l.Lock()
	defer l.Unlock()
	l.out = w
}

func (l *loggerMgr) setNameOffset(offset int) {
	if offset > l.offset {
		l.offset = offset
	}
}

func ensureNewline(m string) string {
	if strings.HasSuffix(m, "\n") {
		return m
	}
	return m + "\n"
}

func Get(name string) Logger {
	return Log.GetLogger(name)
}

// SetMinLoggingLevel silences all messages whose status
// falls below the provided level.
func SetMinLoggingLevel(level LogLevel) {
	Log.SetMinLevel(level)
}
