package models_test

import (
	"testing"

	"github.com/APTrust/fedora-services/models"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util/logger"
	"github.com/APTrust/fedora-services/util/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextDefaults(t *testing.T) {
	config := common.DefaultConfig()
	context, err := models.NewContextWithFs(config, logger.DiscardLogger("context_test"), afero.NewMemMapFs())
	require.Nil(t, err)
	require.NotNil(t, context)
	assert.NotNil(t, context.FedoraClient)
	assert.Equal(t, config.FedoraURL, context.FedoraClient.HostURL)
	assert.Nil(t, context.RedisClient)
	assert.Nil(t, context.NSQClient)
	assert.Nil(t, context.S3Client)
}

func TestNewContextOptionalServices(t *testing.T) {
	redisServer := testutil.NewRedisServer()
	defer redisServer.Close()
	s3Server := testutil.NewS3Server()
	defer s3Server.Close()

	config := common.DefaultConfig()
	config.RedisURL = redisServer.Addr()
	config.NsqURL = "http://localhost:4151"
	config.S3Host = s3Server.Host()
	config.S3Key = testutil.S3Key
	config.S3Secret = testutil.S3Secret
	config.S3UseSSL = false

	context, err := models.NewContextWithFs(config, logger.DiscardLogger("context_test"), afero.NewMemMapFs())
	require.Nil(t, err)
	require.NotNil(t, context.RedisClient)
	response, err := context.RedisClient.Ping()
	require.Nil(t, err)
	assert.Equal(t, "PONG", response)
	assert.NotNil(t, context.NSQClient)
	assert.NotNil(t, context.S3Client)
}

func TestNewContextBadConfig(t *testing.T) {
	config := common.DefaultConfig()
	config.FedoraURL = ""
	_, err := models.NewContextWithFs(config, logger.DiscardLogger("context_test"), afero.NewMemMapFs())
	assert.NotNil(t, err)
}
