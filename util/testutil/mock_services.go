package testutil

import (
	"io"
	"net/http"
	"sync"
)

// These functions allow us to mock http responses from nsqd and
// other simple HTTP services.

var EmptyHeaders = make(map[string]string, 0)

// Returns an http handler function that returns the specified
// string, along with the specified headers.
func HttpStringResponder(headers map[string]string, data string) http.HandlerFunc {
	f := func(w http.ResponseWriter, r *http.Request) {
		setHeaders(w, headers)
		w.Write([]byte(data))
	}
	return http.HandlerFunc(f)
}

// Returns an http handler function that responds with the given
// status code and body.
func HttpStatusResponder(status int, data string) http.HandlerFunc {
	f := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(data))
	}
	return http.HandlerFunc(f)
}

// RequestRecorder is an http.Handler that remembers the URL and
// body of each request and replies 200 OK.
type RequestRecorder struct {
	mutex  sync.Mutex
	URLs   []string
	Bodies []string
}

func (rr *RequestRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()
	rr.mutex.Lock()
	rr.URLs = append(rr.URLs, r.URL.String())
	rr.Bodies = append(rr.Bodies, string(body))
	rr.mutex.Unlock()
	w.Write([]byte("OK"))
}

func setHeaders(w http.ResponseWriter, headers map[string]string) {
	if headers != nil {
		for key, value := range headers {
			w.Header().Set(key, value)
		}
	}
}
