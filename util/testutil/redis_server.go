package testutil

import (
	"github.com/alicebob/miniredis/v2"
)

// RedisServer is an in-memory Redis for tests that record
// ingest progress.
type RedisServer struct {
	server *miniredis.Miniredis
}

func NewRedisServer() *RedisServer {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	return &RedisServer{
		server: server,
	}
}

func (s *RedisServer) Addr() string {
	return s.server.Addr()
}

// Keys returns all keys currently in the store.
func (s *RedisServer) Keys() []string {
	return s.server.Keys()
}

func (s *RedisServer) Close() {
	s.server.Close()
}
