package ingest

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/network"
	"github.com/spf13/afero"
)

// ApplyPolicy attaches the XACML document at policyPath to pid as
// its POLICY datastream.
func ApplyPolicy(client network.FedoraClientInterface, pid, policyPath string) error {
	return client.AddManagedDatastream(
		fedora.NewManagedDatastream(pid, constants.DatastreamPolicy, policyPath))
}

// PidFromLine extracts the pid from a "prefix/pid" line, such as
// "objects/test:6". The pid is the second slash-delimited field.
func PidFromLine(line string) (string, error) {
	fields := strings.Split(strings.TrimSpace(line), "/")
	if len(fields) < 2 || strings.TrimSpace(fields[1]) == "" {
		return "", common.NewValidationError(common.ErrInvalidPidLine,
			"Line %q should look like prefix/pid.", line)
	}
	return strings.TrimSpace(fields[1]), nil
}

// ReadPidList returns the pids listed in the file at listPath, one
// "prefix/pid" per line. Blank lines are skipped. Any other line
// that doesn't parse fails the whole list.
func ReadPidList(fs afero.Fs, listPath string) ([]string, error) {
	file, err := fs.Open(listPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	pids := make([]string, 0)
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		pid, err := PidFromLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", listPath, lineNumber, err)
		}
		pids = append(pids, pid)
	}
	return pids, scanner.Err()
}
