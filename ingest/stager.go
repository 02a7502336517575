package ingest

import (
	ctx "context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/APTrust/fedora-services/util"
	"github.com/APTrust/fedora-services/util/logger"
	"github.com/minio/minio-go/v7"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

// Stager copies a dataset from S3 to a local directory so a parts
// batch can run over it.
type Stager struct {
	Client *minio.Client
	Fs     afero.Fs
	Logger *logging.Logger
}

// NewStager creates a new Stager.
func NewStager(client *minio.Client, fs afero.Fs, logger *logging.Logger) *Stager {
	return &Stager{
		Client: client,
		Fs:     fs,
		Logger: logger,
	}
}

// Stage downloads each object directly under bucket/prefix into
// localDir and returns the local paths. Objects in deeper "folders"
// and hidden files are skipped, matching what IngestParts picks up
// from a local directory.
func (s *Stager) Stage(bucket, prefix, localDir string) ([]string, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix = prefix + "/"
	}
	if err := s.Fs.MkdirAll(localDir, 0755); err != nil {
		return nil, err
	}
	options := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}
	if s.Logger.IsEnabledFor(logging.DEBUG) {
		s.Client.TraceOn(logger.NewTracer(s.Logger))
		defer s.Client.TraceOff()
	}
	staged := make([]string, 0)
	for objInfo := range s.Client.ListObjects(ctx.Background(), bucket, options) {
		if objInfo.Err != nil {
			return staged, fmt.Errorf("Error listing %s/%s: %w", bucket, prefix, objInfo.Err)
		}
		if strings.HasSuffix(objInfo.Key, "/") || util.IsHiddenFile(objInfo.Key) {
			continue
		}
		localPath := filepath.Join(localDir, path.Base(objInfo.Key))
		if err := s.download(bucket, objInfo, localPath); err != nil {
			return staged, err
		}
		staged = append(staged, localPath)
	}
	s.Logger.Infof("Staged %d files from %s/%s to %s", len(staged), bucket, prefix, localDir)
	return staged, nil
}

func (s *Stager) download(bucket string, objInfo minio.ObjectInfo, localPath string) error {
	obj, err := s.Client.GetObject(ctx.Background(), bucket, objInfo.Key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("Error getting %s/%s: %w", bucket, objInfo.Key, err)
	}
	defer obj.Close()

	file, err := s.Fs.Create(localPath)
	if err != nil {
		return err
	}
	defer file.Close()

	progress := logger.NewProgressLogger(s.Logger, objInfo.Key, objInfo.Size)
	if _, err = io.Copy(file, io.TeeReader(obj, progress)); err != nil {
		return fmt.Errorf("Error copying %s/%s to %s: %w", bucket, objInfo.Key, localPath, err)
	}
	s.Logger.Infof("Copied %s/%s to %s (%d bytes)", bucket, objInfo.Key, localPath, progress.TotalBytes())
	return nil
}
