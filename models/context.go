package models

import (
	"fmt"

	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/network"
	"github.com/APTrust/fedora-services/util"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

// Context carries the config, logger, filesystem and service clients
// each app needs. Redis, NSQ and S3 clients are nil unless the config
// names a host for them.
type Context struct {
	Config       *common.Config
	Logger       *logging.Logger
	Fs           afero.Fs
	FedoraClient *network.FedoraClient
	NSQClient    network.NSQClientInterface
	RedisClient  *network.RedisClient
	S3Client     *minio.Client
}

// NewContext builds a context on the local filesystem.
func NewContext(config *common.Config, logger *logging.Logger) (*Context, error) {
	return NewContextWithFs(config, logger, afero.NewOsFs())
}

// NewContextWithFs builds a context that reads files from fs. Tests
// pass an afero.MemMapFs here.
func NewContextWithFs(config *common.Config, logger *logging.Logger, fs afero.Fs) (*Context, error) {
	fedoraClient, err := network.NewFedoraClient(
		config.FedoraURL,
		config.FedoraUser,
		config.FedoraPassword,
		fs,
		util.NewFormatIdentifier(),
		logger)
	if err != nil {
		return nil, fmt.Errorf("Could not initialize Fedora client: %v", err)
	}
	context := &Context{
		Config:       config,
		Logger:       logger,
		Fs:           fs,
		FedoraClient: fedoraClient,
	}
	if config.UsesRedis() {
		context.RedisClient = network.NewRedisClient(
			config.RedisURL,
			config.RedisPassword,
			config.RedisDefaultDB)
	}
	if config.NsqURL != "" {
		context.NSQClient = network.NewNSQClient(config.NsqURL)
	}
	if config.UsesS3() {
		context.S3Client, err = getS3Client(config)
		if err != nil {
			return nil, fmt.Errorf("Could not initialize S3 client: %v", err)
		}
	}
	return context, nil
}

func getS3Client(config *common.Config) (*minio.Client, error) {
	// Note there's also credentials.NewStaticV2 for providers
	// who don't support V4.
	return minio.New(
		config.S3Host,
		&minio.Options{
			Creds:  credentials.NewStaticV4(config.S3Key, config.S3Secret, ""),
			Secure: config.S3UseSSL,
		})
}
