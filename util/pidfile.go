package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// IsRunningInOtherProcess returns true if the pid file at pathToFile
// names a live process other than this one. A pid file left behind
// by a crashed batch does not count.
func IsRunningInOtherProcess(pathToFile string) bool {
	if !FileExists(pathToFile) {
		return false
	}
	pid := ReadPidFile(pathToFile)
	return pid > 0 && pid != os.Getpid() && ProcessIsRunning(pid)
}

// ReadPidFile returns the pid from the specified file, or zero if
// the file can't be read or parsed.
func ReadPidFile(pathToFile string) int {
	if data, err := os.ReadFile(pathToFile); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
			return pid
		}
	}
	return 0
}

// WritePidFile writes this process' pid to the specified file.
func WritePidFile(pathToFile string) error {
	pidStr := strconv.Itoa(os.Getpid())
	return os.WriteFile(pathToFile, []byte(pidStr), 0664)
}

// DeletePidFile deletes the specified pid file, if it looks safe to delete.
func DeletePidFile(pathToFile string) error {
	if LooksSafeToDelete(pathToFile, 12, 2) {
		return os.Remove(pathToFile)
	}
	return fmt.Errorf("Pid file %s does not look safe to delete", pathToFile)
}

// AcquirePidFile writes <dir>/<name>.pid unless another live process
// already holds it. Batch apps call this so two batches can't write
// into the same repository at once. Returns the path to the pid file,
// which the caller should pass to DeletePidFile when done.
func AcquirePidFile(dir, name string) (string, error) {
	pathToFile := filepath.Join(dir, name+".pid")
	if IsRunningInOtherProcess(pathToFile) {
		return "", fmt.Errorf("%s is already running as pid %d (see %s)",
			name, ReadPidFile(pathToFile), pathToFile)
	}
	return pathToFile, WritePidFile(pathToFile)
}

// ProcessIsRunning returns true if the process with pid is running.
// This uses go-ps internally because golang's os.FindProcess always
// returns a process on *nix, even when no process with that pid is
// running.
func ProcessIsRunning(pid int) bool {
	proc, _ := ps.FindProcess(pid)
	return proc != nil
}
