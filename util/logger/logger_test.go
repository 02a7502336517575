package logger_test

import (
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/APTrust/fedora-services/util/logger"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	dir := t.TempDir()
	log, filename := logger.InitLogger(dir, logging.INFO)
	require.NotNil(t, log)
	assert.Equal(t, filepath.Join(dir, path.Base(os.Args[0])+".log"), filename)

	log.Info("Ingested test:1.")
	data, err := os.ReadFile(filename)
	require.Nil(t, err)
	assert.Contains(t, string(data), "[INFO] Ingested test:1.")
}

func TestDiscardLogger(t *testing.T) {
	log := logger.DiscardLogger("discard_test")
	require.NotNil(t, log)
	// Nothing to assert, except that this doesn't blow up.
	log.Error("This goes nowhere")
}

func TestProgressLogger(t *testing.T) {
	log := logger.DiscardLogger("progress_test")
	progress := logger.NewProgressLogger(log, "s3://staging/file.tif", 1000)
	n, err := progress.Write(make([]byte, 300))
	assert.Nil(t, err)
	assert.Equal(t, 300, n)
	progress.Write(make([]byte, 700))
	assert.EqualValues(t, 1000, progress.TotalBytes())

	// Unknown size is fine too.
	progress = logger.NewProgressLogger(log, "unknown", -1)
	progress.Write(make([]byte, 10))
	assert.EqualValues(t, 10, progress.TotalBytes())
}

func TestTracer(t *testing.T) {
	log := logging.MustGetLogger("tracer_test")
	memory := logging.NewMemoryBackend(8)
	leveled := logging.AddModuleLevel(memory)
	leveled.SetLevel(logging.DEBUG, "tracer_test")
	log.SetBackend(leveled)

	tracer := logger.NewTracer(log)
	line := []byte("GET /staging/?list-type=2 HTTP/1.1\n")
	n, err := tracer.Write(line)
	require.Nil(t, err)
	assert.Equal(t, len(line), n)
	require.NotNil(t, memory.Head())
	assert.Equal(t, "GET /staging/?list-type=2 HTTP/1.1", memory.Head().Record.Message())
	assert.Equal(t, logging.DEBUG, memory.Head().Record.Level)
}
