package testutil_test

import (
	"testing"

	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAssets(t *testing.T) {
	fs := afero.NewMemMapFs()
	config := common.DefaultConfig()
	require.Nil(t, testutil.WriteAssets(fs, config))
	for _, filePath := range []string{
		config.ThumbnailPath,
		config.PolicyPath,
		config.RestrictionPolicyPath,
		config.ModsPath,
		config.DCPath,
	} {
		exists, err := afero.Exists(fs, filePath)
		require.Nil(t, err)
		assert.True(t, exists, filePath)
	}
}

func TestWriteDataset(t *testing.T) {
	fs := afero.NewMemMapFs()
	paths, err := testutil.WriteDataset(fs, "/data/set1", "a.csv", "b.csv")
	require.Nil(t, err)
	assert.Equal(t, []string{"/data/set1/a.csv", "/data/set1/b.csv"}, paths)
	data, err := afero.ReadFile(fs, paths[1])
	require.Nil(t, err)
	assert.Contains(t, string(data), "b.csv")
}

func TestModsDocument(t *testing.T) {
	assert.Contains(t, string(testutil.ModsDocument("Letters of A")), "<title>Letters of A</title>")
}
