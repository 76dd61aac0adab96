package logging

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var debugMode bool

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		debugMode = false
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	// configure stdlib logger
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// configure Bubble Tea logger
	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, err
	}
	debugMode = true

	// cleanup closes both files
	cleanup = func() {
		debugMode = false
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// IsDebugMode reports whether a debug log file is active.
func IsDebugMode() bool { return debugMode }

func Debug(msg string) {
	if debugMode {
		log.Output(2, "DEBUG "+msg)
	}
}

func Debugf(format string, args ...any) {
	if debugMode {
		log.Output(2, "DEBUG "+sprintf(format, args...))
	}
}

func Infof(format string, args ...any) {
	log.Output(2, "INFO "+sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	log.Output(2, "WARN "+sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	log.Output(2, "ERROR "+sprintf(format, args...))
}
