package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path"
	"path/filepath"

	"github.com/op/go-logging"
)

/*
InitLogger creates and returns a logger suitable for logging
human-readable message. Also returns the path to the log file.
*/
func InitLogger(logDir string, logLevel logging.Level) (*logging.Logger, string) {
	processName := path.Base(os.Args[0])
	filename := fmt.Sprintf("%s.log", processName)
	filename = filepath.Join(logDir, filename)
	writer, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open log file '%s': %v\n", filename, err)
		os.Exit(1)
	}
	log := logging.MustGetLogger(processName)
	format := logging.MustStringFormatter("[%{level}] %{message}")
	logging.SetFormatter(format)
	logging.SetLevel(logLevel, processName)
	logBackend := logging.NewLogBackend(writer, "", stdlog.LstdFlags|stdlog.LUTC)
	logging.SetBackend(logBackend)
	return log, filename
}

// InitConsoleLogger logs to both the process log file and stderr,
// for command-line tools where the operator is watching.
func InitConsoleLogger(logDir string, logLevel logging.Level) (*logging.Logger, string) {
	log, filename := InitLogger(logDir, logLevel)
	writer, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return log, filename
	}
	fileBackend := logging.NewLogBackend(writer, "", stdlog.LstdFlags|stdlog.LUTC)
	consoleBackend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(logging.MultiLogger(fileBackend, consoleBackend))
	leveled.SetLevel(logLevel, "")
	log.SetBackend(leveled)
	return log, filename
}

// DiscardLogger returns a logger that writes nowhere. Use this in
// tests.
func DiscardLogger(module string) *logging.Logger {
	log := logging.MustGetLogger(module)
	devnull := logging.NewLogBackend(io.Discard, "", 0)
	backend := logging.AddModuleLevel(devnull)
	backend.SetLevel(logging.CRITICAL, module)
	log.SetBackend(backend)
	return log
}
