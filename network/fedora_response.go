package network

import (
	"io"
	"net/http"
)

// FedoraResponse holds the request, the response, and the raw
// response body of a single call to the Fedora REST API.
type FedoraResponse struct {
	// The HTTP request that was (or would have been) sent to
	// Fedora. This is useful for logging and debugging.
	Request *http.Request

	// The HTTP Response from the server. You can get the
	// HTTP status code, headers, etc. through this.
	//
	// Do not try to read Response.Body, since it's already been read
	// and the stream has been closed. Use the RawResponseData()
	// method instead.
	Response *http.Response

	// The error, if any, that occurred while sending the request
	// or reading the response. Non-2xx statuses are not recorded
	// here; the caller decides which status counts as success.
	Error error

	// Indicates whether the HTTP response body has been
	// read (and closed).
	hasBeenRead bool

	// The raw data contained in the body of the HTTP
	// response.
	data []byte
}

// NewFedoraResponse creates a new FedoraResponse and returns a pointer to it.
func NewFedoraResponse() *FedoraResponse {
	return &FedoraResponse{}
}

// RawResponseData returns the raw body of the HTTP response as a
// byte slice. The return value may be nil.
func (resp *FedoraResponse) RawResponseData() ([]byte, error) {
	if !resp.hasBeenRead {
		resp.readResponse()
	}
	return resp.data, resp.Error
}

// StatusCode returns the HTTP status code, or zero if there was
// no response.
func (resp *FedoraResponse) StatusCode() int {
	if resp.Response == nil {
		return 0
	}
	return resp.Response.StatusCode
}

// Body returns the response body as a string.
func (resp *FedoraResponse) Body() string {
	data, _ := resp.RawResponseData()
	return string(data)
}

// Reads the body of an HTTP response object, closes the stream, and
// returns a byte array. The body MUST be closed, or you'll wind up
// with a lot of open network connections.
func (resp *FedoraResponse) readResponse() {
	if !resp.hasBeenRead && resp.Response != nil && resp.Response.Body != nil {
		resp.data, resp.Error = io.ReadAll(resp.Response.Body)
		resp.Response.Body.Close()
		resp.hasBeenRead = true
	}
}
