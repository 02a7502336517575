package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/APTrust/fedora-services/models"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/util"
	"github.com/APTrust/fedora-services/util/logger"
	"github.com/spf13/cobra"
)

var EnvMessage = `If you don't set --config-dir and --config-name on the command line,
this reads the following environment vars:

FEDORA_CONFIG_DIR - Path to the directory containing the .env settings file.

FEDORA_CONFIG_NAME - Name of the configuration to load. For example:
    test - Loads .env.test from FEDORA_CONFIG_DIR
    prod - Loads .env.prod from FEDORA_CONFIG_DIR

If neither is set, the app talks to Fedora at http://localhost:8080
as fedoraAdmin/fedoraAdmin. Any setting can also be overridden by an
environment variable of the same name, such as FEDORA_URL.
`

var ErrNoS3 = errors.New("S3 staging requested, but S3_HOST is not set")

// ConfigFlags are the flags every app accepts for choosing a
// settings file.
type ConfigFlags struct {
	ConfigDir  string
	ConfigName string
}

// AddConfigFlags registers --config-dir and --config-name on cmd.
func AddConfigFlags(cmd *cobra.Command, flags *ConfigFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigDir, "config-dir", os.Getenv("FEDORA_CONFIG_DIR"),
		"Directory containing the .env.<config-name> settings file")
	cmd.PersistentFlags().StringVar(&flags.ConfigName, "config-name", os.Getenv("FEDORA_CONFIG_NAME"),
		"Name of the settings file to load, e.g. test loads .env.test")
}

// NewContext loads the config named by flags, creates the log and
// pid directories, and returns a context that logs to the process
// log file and to stderr.
func NewContext(flags *ConfigFlags) (*models.Context, error) {
	config, err := common.LoadConfig(flags.ConfigDir, flags.ConfigName)
	if err != nil {
		return nil, err
	}
	if err := config.MakeDirs(); err != nil {
		return nil, err
	}
	log, filename := logger.InitConsoleLogger(config.LogDir, config.LogLevel)
	log.Infof("Config %s, logging to %s", config.ConfigName, filename)
	return models.NewContext(config, log)
}

// LockBatch takes the pid file lock for this process in
// config.PidFileDir. The returned function releases it.
func LockBatch(config *common.Config) (func(), error) {
	name := filepath.Base(os.Args[0])
	pidFile, err := util.AcquirePidFile(config.PidFileDir, name)
	if err != nil {
		return nil, err
	}
	return func() { util.DeletePidFile(pidFile) }, nil
}

// Execute runs cmd and exits with status 1 if it fails.
func Execute(cmd *cobra.Command) {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// PrintRecords writes one line per record to stdout, so operators
// can see which pid went with which source.
func PrintRecords(records []*fedora.IngestRecord) {
	WriteRecords(os.Stdout, records)
}

// WriteRecords writes one tab-separated line per record to w:
// source, pid, sequence, and either "ok" or the error.
func WriteRecords(w io.Writer, records []*fedora.IngestRecord) {
	for _, record := range records {
		status := "ok"
		if !record.Succeeded() {
			status = record.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", record.Source, record.PID, record.Sequence, status)
	}
}
