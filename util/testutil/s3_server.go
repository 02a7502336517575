package testutil

import (
	"net/http/httptest"
	"strings"

	"github.com/johannesboyne/gofakes3"
	"github.com/johannesboyne/gofakes3/backend/s3mem"
)

const StagingBucket = "staging"
const S3Key = "test-key"
const S3Secret = "test-secret"

// S3Server is an in-memory S3 endpoint for staging tests.
type S3Server struct {
	server *httptest.Server
	URL    string
}

func NewS3Server() *S3Server {
	backend := s3mem.New()
	backend.CreateBucket(StagingBucket)
	faker := gofakes3.New(backend)
	server := httptest.NewServer(faker.Server())
	return &S3Server{
		server: server,
		URL:    server.URL,
	}
}

// Host returns host:port, which is what the minio client wants.
func (s *S3Server) Host() string {
	return strings.TrimPrefix(s.URL, "http://")
}

func (s *S3Server) Close() {
	s.server.Close()
}
