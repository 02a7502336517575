package common_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := common.DefaultConfig()
	assert.Equal(t, "default", config.ConfigName)
	assert.Equal(t, constants.DefaultFedoraURL, config.FedoraURL)
	assert.Equal(t, constants.DefaultFedoraUser, config.FedoraUser)
	assert.Equal(t, constants.DefaultFedoraPassword, config.FedoraPassword)
	assert.Equal(t, constants.DefaultThumbnailPath, config.ThumbnailPath)
	assert.Equal(t, constants.DefaultPolicyPath, config.PolicyPath)
	assert.Equal(t, constants.DefaultRestrictionPolicyPath, config.RestrictionPolicyPath)
	assert.Equal(t, constants.DefaultModsPath, config.ModsPath)
	assert.Equal(t, constants.DefaultDCPath, config.DCPath)
	assert.Equal(t, logging.INFO, config.LogLevel)
	assert.False(t, config.UsesRedis())
	assert.False(t, config.UsesS3())
	assert.NotContains(t, config.LogDir, "~")
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	settings := []byte(`FEDORA_URL=http://fedora.example.com:8080/
FEDORA_USER=ingest
FEDORA_PASSWORD=secret
FEDORA_NAMESPACE=wallace
FEDORA_COLLECTION=collections:wallace
LOG_LEVEL=debug
REDIS_URL=localhost:6379
`)
	require.Nil(t, os.WriteFile(filepath.Join(dir, ".env.test"), settings, 0644))

	config, err := common.LoadConfig(dir, "test")
	require.Nil(t, err)
	assert.Equal(t, "test", config.ConfigName)
	assert.Equal(t, "http://fedora.example.com:8080", config.FedoraURL)
	assert.Equal(t, "ingest", config.FedoraUser)
	assert.Equal(t, "secret", config.FedoraPassword)
	assert.Equal(t, "wallace", config.Namespace)
	assert.Equal(t, "collections:wallace", config.Collection)
	assert.Equal(t, logging.DEBUG, config.LogLevel)
	assert.True(t, config.UsesRedis())

	// Settings not in the file keep their defaults.
	assert.Equal(t, constants.DefaultThumbnailPath, config.ThumbnailPath)
	assert.Equal(t, constants.TopicRestrict, config.NsqRestrictTopic)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := common.LoadConfig(t.TempDir(), "does-not-exist")
	assert.NotNil(t, err)
}

func TestLoadConfigNoName(t *testing.T) {
	config, err := common.LoadConfig("", "")
	require.Nil(t, err)
	assert.Equal(t, "default", config.ConfigName)
	assert.Equal(t, constants.DefaultFedoraURL, config.FedoraURL)
}

func TestLoadConfigSanityCheck(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, ".env.bad"), []byte("FEDORA_PASSWORD=\n"), 0644))
	_, err := common.LoadConfig(dir, "bad")
	assert.NotNil(t, err)
}
