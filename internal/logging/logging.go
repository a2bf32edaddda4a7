// Package logging provides the printf-style error, warning and debug
// helpers shared by the tacmap binaries. Output goes to stdout and, on the
// first message of each kind, to a timestamped file under the log dir.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	logDir = "logs"
	out    io.Writer = os.Stdout

	errorLogger  *log.Logger
	errorLogPath string
	errorLogOnce sync.Once

	debugLogger  *log.Logger
	debugLogPath string
	debugLogOnce sync.Once

	// Silent suppresses the OnMessage hook, used while running headless.
	Silent bool

	// OnMessage, when set, receives every error and warning line so a host
	// can mirror it into an on-screen console.
	OnMessage func(string)
)

// Setup prepares the error logger and toggles debug logging. An empty dir
// disables log files entirely.
func Setup(dir string, debug bool) {
	mu.Lock()
	defer mu.Unlock()
	logDir = dir
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("could not create log directory: %v", err)
		}
	}
	ts := time.Now().Format("20060102-150405")

	errorLogPath = ""
	if logDir != "" {
		errorLogPath = filepath.Join(logDir, fmt.Sprintf("error-%s.log", ts))
	}
	errorLogOnce = sync.Once{}
	errorLogger = log.New(out, "", log.LstdFlags)
	log.SetOutput(errorLogger.Writer())

	setDebugLocked(debug)
}

// SetOutput redirects console output, mainly for tests and the terminal
// viewer which owns stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	if errorLogger != nil {
		errorLogger.SetOutput(w)
	}
	if debugLogger != nil {
		debugLogger.SetOutput(w)
	}
}

// SetDebug turns debug logging on or off.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	setDebugLocked(enabled)
}

func setDebugLocked(enabled bool) {
	if !enabled {
		debugLogger = nil
		return
	}
	debugLogPath = ""
	if logDir != "" {
		ts := time.Now().Format("20060102-150405")
		debugLogPath = filepath.Join(logDir, fmt.Sprintf("debug-%s.log", ts))
	}
	debugLogOnce = sync.Once{}
	debugLogger = log.New(out, "", log.LstdFlags)
}

// DebugEnabled reports whether Debug output is active.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debugLogger != nil
}

func openErrorFile() {
	errorLogOnce.Do(func() {
		if errorLogPath == "" {
			return
		}
		if f, err := os.Create(errorLogPath); err == nil {
			errorLogger.SetOutput(io.MultiWriter(out, f))
			log.SetOutput(errorLogger.Writer())
		}
	})
}

func Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	mu.Lock()
	if errorLogger != nil {
		openErrorFile()
		errorLogger.Print(msg)
	}
	hook := OnMessage
	mu.Unlock()
	if hook != nil && !Silent {
		hook(msg)
	}
}

func Warn(format string, v ...interface{}) {
	msg := "warning: " + fmt.Sprintf(format, v...)
	mu.Lock()
	if errorLogger != nil {
		openErrorFile()
		errorLogger.Print(msg)
	}
	hook := OnMessage
	mu.Unlock()
	if hook != nil && !Silent {
		hook(msg)
	}
}

func Debug(format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if debugLogger == nil {
		return
	}
	debugLogOnce.Do(func() {
		if debugLogPath == "" {
			return
		}
		if f, err := os.Create(debugLogPath); err == nil {
			debugLogger.SetOutput(io.MultiWriter(out, f))
		}
	})
	debugLogger.Printf(format, v...)
}
