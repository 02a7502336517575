package util_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/APTrust/fedora-services/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListContains(t *testing.T) {
	list := []string{"apple", "orange", "banana"}
	assert.True(t, util.StringListContains(list, "orange"))
	assert.False(t, util.StringListContains(list, "wedgie"))
	// Don't crash on nil list
	assert.False(t, util.StringListContains(nil, "mars"))
}

func TestExpandTilde(t *testing.T) {
	expanded, err := util.ExpandTilde("~/tmp")
	require.Nil(t, err)
	assert.True(t, len(expanded) > 5)
	assert.True(t, strings.HasSuffix(expanded, "tmp"))
	assert.False(t, strings.HasPrefix(expanded, "~"))

	expanded, err = util.ExpandTilde("/nothing/to/expand")
	require.Nil(t, err)
	assert.Equal(t, "/nothing/to/expand", expanded)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, util.FileExists(dir))
	assert.False(t, util.FileExists(filepath.Join(dir, "nope.txt")))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "yup.txt"), []byte("x"), 0644))
	assert.True(t, util.FileExists(filepath.Join(dir, "yup.txt")))
}

func TestLooksSafeToDelete(t *testing.T) {
	assert.True(t, util.LooksSafeToDelete("/mnt/data/logs/file.pid", 12, 3))
	assert.False(t, util.LooksSafeToDelete("/usr", 12, 3))
	assert.False(t, util.LooksSafeToDelete("relative/path/to/file.pid", 12, 2))
}

func TestIsHiddenFile(t *testing.T) {
	assert.True(t, util.IsHiddenFile(".DS_Store"))
	assert.True(t, util.IsHiddenFile("/data/dataset/.hidden"))
	assert.False(t, util.IsHiddenFile("/data/.dataset/visible.csv"))
	assert.False(t, util.IsHiddenFile("visible.csv"))
}

func TestSequencePredicateSuffix(t *testing.T) {
	assert.Equal(t, "wallace_12", util.SequencePredicateSuffix("wallace:12"))
	assert.Equal(t, "nocolon", util.SequencePredicateSuffix("nocolon"))
}
