package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/util"
	"github.com/op/go-logging"
	"github.com/spf13/viper"
)

// Config holds everything the clients and ingestors need to know.
// It is built once per process and passed into constructors.
// See DefaultConfig for default values.
type Config struct {
	ConfigName            string
	Collection            string
	DCPath                string
	FedoraPassword        string
	FedoraURL             string
	FedoraUser            string
	LogDir                string
	LogLevel              logging.Level
	ModsPath              string
	Namespace             string
	NsqIngestedTopic      string
	NsqLookupd            string
	NsqRestrictTopic      string
	NsqURL                string
	PidFileDir            string
	PolicyPath            string
	RedisDefaultDB        int
	RedisPassword         string
	RedisURL              string
	RestrictionPolicyPath string
	S3Host                string
	S3Key                 string
	S3Secret              string
	S3UseSSL              bool
	ThumbnailPath         string
}

var logLevels = map[string]logging.Level{
	"CRITICAL": logging.CRITICAL,
	"ERROR":    logging.ERROR,
	"WARNING":  logging.WARNING,
	"NOTICE":   logging.NOTICE,
	"INFO":     logging.INFO,
	"DEBUG":    logging.DEBUG,
}

// defaults maps each setting name to its default value. Settings
// with an empty default are optional: Redis, NSQ and S3 are used
// only when configured.
var defaults = map[string]interface{}{
	"FEDORA_COLLECTION":       "",
	"DC_PATH":                 constants.DefaultDCPath,
	"FEDORA_PASSWORD":         constants.DefaultFedoraPassword,
	"FEDORA_URL":              constants.DefaultFedoraURL,
	"FEDORA_USER":             constants.DefaultFedoraUser,
	"LOG_DIR":                 "~/.fedora-services/logs",
	"LOG_LEVEL":               "INFO",
	"MODS_PATH":               constants.DefaultModsPath,
	"FEDORA_NAMESPACE":        "",
	"NSQ_INGESTED_TOPIC":      "",
	"NSQ_LOOKUPD":             "",
	"NSQ_RESTRICT_TOPIC":      constants.TopicRestrict,
	"NSQ_URL":                 "",
	"PID_FILE_DIR":            "~/.fedora-services",
	"POLICY_PATH":             constants.DefaultPolicyPath,
	"REDIS_DEFAULT_DB":        0,
	"REDIS_PASSWORD":          "",
	"REDIS_URL":               "",
	"RESTRICTION_POLICY_PATH": constants.DefaultRestrictionPolicyPath,
	"S3_HOST":                 "",
	"S3_KEY":                  "",
	"S3_SECRET":               "",
	"S3_USE_SSL":              true,
	"THUMBNAIL_PATH":          constants.DefaultThumbnailPath,
}

// DefaultConfig returns a config that talks to a local Fedora at
// http://localhost:8080 as fedoraAdmin/fedoraAdmin, reads the
// auxiliary assets from their conventional relative paths, and
// has Redis, NSQ and S3 turned off.
func DefaultConfig() *Config {
	config := fromViper(newViper(), "default")
	config.expandPaths()
	return config
}

// NewConfig returns a config based on the env vars FEDORA_CONFIG_DIR
// and FEDORA_CONFIG_NAME. If those are not set, you get the defaults.
// This panics if the settings file can't be read.
func NewConfig() *Config {
	config, err := LoadConfig(os.Getenv("FEDORA_CONFIG_DIR"), os.Getenv("FEDORA_CONFIG_NAME"))
	if err != nil {
		panic(fmt.Errorf("Fatal error config file: %s \n", err))
	}
	return config
}

// LoadConfig reads .env.<configName> from configDir on top of the
// defaults. If configName is empty, this skips the file and returns
// the defaults.
func LoadConfig(configDir, configName string) (*Config, error) {
	v := newViper()
	if configName == "" {
		configName = "default"
	} else {
		if configDir == "" {
			configDir = "."
		}
		v.AddConfigPath(configDir)
		v.SetConfigName(".env." + configName)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	config := fromViper(v, configName)
	if err := config.expandPaths(); err != nil {
		return nil, err
	}
	if err := config.sanityCheck(); err != nil {
		return nil, err
	}
	return config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper, configName string) *Config {
	return &Config{
		ConfigName:            configName,
		Collection:            v.GetString("FEDORA_COLLECTION"),
		DCPath:                v.GetString("DC_PATH"),
		FedoraPassword:        v.GetString("FEDORA_PASSWORD"),
		FedoraURL:             strings.TrimSuffix(v.GetString("FEDORA_URL"), "/"),
		FedoraUser:            v.GetString("FEDORA_USER"),
		LogDir:                v.GetString("LOG_DIR"),
		LogLevel:              logLevel(v.GetString("LOG_LEVEL")),
		ModsPath:              v.GetString("MODS_PATH"),
		Namespace:             v.GetString("FEDORA_NAMESPACE"),
		NsqIngestedTopic:      v.GetString("NSQ_INGESTED_TOPIC"),
		NsqLookupd:            v.GetString("NSQ_LOOKUPD"),
		NsqRestrictTopic:      v.GetString("NSQ_RESTRICT_TOPIC"),
		NsqURL:                v.GetString("NSQ_URL"),
		PidFileDir:            v.GetString("PID_FILE_DIR"),
		PolicyPath:            v.GetString("POLICY_PATH"),
		RedisDefaultDB:        v.GetInt("REDIS_DEFAULT_DB"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisURL:              v.GetString("REDIS_URL"),
		RestrictionPolicyPath: v.GetString("RESTRICTION_POLICY_PATH"),
		S3Host:                v.GetString("S3_HOST"),
		S3Key:                 v.GetString("S3_KEY"),
		S3Secret:              v.GetString("S3_SECRET"),
		S3UseSSL:              v.GetBool("S3_USE_SSL"),
		ThumbnailPath:         v.GetString("THUMBNAIL_PATH"),
	}
}

func logLevel(name string) logging.Level {
	if level, ok := logLevels[strings.ToUpper(name)]; ok {
		return level
	}
	return logging.INFO
}

// Expand ~ to home dir in path settings.
func (c *Config) expandPaths() error {
	var err error
	for _, setting := range []*string{&c.LogDir, &c.PidFileDir} {
		if *setting, err = util.ExpandTilde(*setting); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) sanityCheck() error {
	if c.FedoraURL == "" {
		return fmt.Errorf("Config %s: FEDORA_URL cannot be empty", c.ConfigName)
	}
	if c.FedoraUser == "" || c.FedoraPassword == "" {
		return fmt.Errorf("Config %s: FEDORA_USER and FEDORA_PASSWORD cannot be empty", c.ConfigName)
	}
	return nil
}

// MakeDirs creates the log and pid file directories.
func (c *Config) MakeDirs() error {
	for _, dir := range []string{c.LogDir, c.PidFileDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// UsesRedis returns true if ingest records should go to Redis.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}

// UsesS3 returns true if an S3 host is configured for staging.
func (c *Config) UsesS3() bool {
	return c.S3Host != ""
}
