package logger

import (
	"github.com/op/go-logging"
)

// ProgressLogger logs the progress of long transfers. It implements
// io.Writer so it can sit behind an io.TeeReader.
type ProgressLogger struct {
	logger         *logging.Logger
	totalBytes     int64
	fileSize       int64
	lastPctPrinted float64
	prefix         string
}

const _100MB = int64(104857600)
const _1GB = int64(1073741824)
const _10GB = int64(10737418240)

// NewProgressLogger creates a new ProgressLogger.
func NewProgressLogger(logger *logging.Logger, prefix string, fileSize int64) *ProgressLogger {
	return &ProgressLogger{
		logger:   logger,
		prefix:   prefix,
		fileSize: fileSize,
	}
}

// Write counts the bytes in p and logs progress now and then. It
// never fails.
func (e *ProgressLogger) Write(p []byte) (n int, err error) {
	e.totalBytes += int64(len(p))
	if e.fileSize <= 0 {
		return len(p), nil
	}
	pctComplete := (float64(e.totalBytes) / float64(e.fileSize)) * 100
	if e.shouldPrint(pctComplete) {
		e.logger.Infof("%s : %d of %d bytes, %3.2f%% complete",
			e.prefix, e.totalBytes, e.fileSize, pctComplete)
		e.lastPctPrinted = pctComplete
	}
	return len(p), nil
}

// TotalBytes returns the number of bytes written so far.
func (e *ProgressLogger) TotalBytes() int64 {
	return e.totalBytes
}

// shouldPrint returns true if the logger should print a message to the log.
// Small files copy quickly, so we don't log them at all.
func (e *ProgressLogger) shouldPrint(pctComplete float64) bool {
	diff := pctComplete - e.lastPctPrinted
	if e.fileSize > _10GB {
		return diff >= float64(1.0)
	}
	if e.fileSize > _1GB {
		return diff >= 5.0
	}
	if e.fileSize > _100MB {
		return diff >= 20.0
	}
	return false
}
