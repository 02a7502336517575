package util

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// StringListContains returns true if the list of strings contains item.
func StringListContains(list []string, item string) bool {
	if list != nil {
		for i := range list {
			if list[i] == item {
				return true
			}
		}
	}
	return false
}

// ExpandTilde expands a leading tilde in filePath to the user's
// home directory.
func ExpandTilde(filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "~") {
		return filePath, nil
	}
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(usr.HomeDir, filePath[1:]), nil
}

// FileExists returns true if a file or directory exists at filePath.
func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// LooksSafeToDelete returns true if filePath is an absolute path
// at least minLength characters long with at least minSeparators
// path separators. This keeps us from deleting things like "/" or
// "/usr" because of a bad setting.
func LooksSafeToDelete(filePath string, minLength, minSeparators int) bool {
	separators := strings.Count(filePath, string(os.PathSeparator))
	return filepath.IsAbs(filePath) &&
		len(filePath) >= minLength &&
		separators >= minSeparators
}

// IsHiddenFile returns true if the base name of filePath starts
// with a dot, like .DS_Store.
func IsHiddenFile(filePath string) bool {
	return strings.HasPrefix(filepath.Base(filePath), ".")
}

// SequencePredicateSuffix converts a pid like "wallace:12" to the
// "wallace_12" form used in sequence number predicates.
func SequencePredicateSuffix(pid string) string {
	return strings.Replace(pid, ":", "_", -1)
}
