package logger

import (
	"strings"

	"github.com/op/go-logging"
)

// Tracer writes HTTP trace output, such as the minio client's
// TraceOn dumps, to a logger at DEBUG level.
type Tracer struct {
	logger *logging.Logger
}

func NewTracer(logger *logging.Logger) *Tracer {
	return &Tracer{logger: logger}
}

func (t *Tracer) Write(p []byte) (n int, err error) {
	t.logger.Debug(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
