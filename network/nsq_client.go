package network

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

type NSQClient struct {
	URL string
}

// Formally define this so we can generate mocks for testing.
type NSQClientInterface interface {
	Enqueue(topic, pid string) error
}

// NewNSQClient returns a new NSQ client that will connect to the NSQ
// server at the specified url. The URL is typically available through
// Config.NsqURL, and usually ends with :4151. This is the URL to which
// we post the pids of new objects, and from which the restriction
// worker reads.
//
// Note that this client provides write access to queue, so we can
// add things. It does not provide read access. The workers do the
// reading.
func NewNSQClient(url string) *NSQClient {
	return &NSQClient{URL: url}
}

// Enqueue posts a pid to the given NSQ topic.
func (client *NSQClient) Enqueue(topic, pid string) error {
	pubURL := fmt.Sprintf("%s/pub?topic=%s", client.URL, url.QueryEscape(topic))
	resp, err := http.Post(pubURL, "text/plain", bytes.NewBufferString(pid))
	if err != nil {
		return fmt.Errorf("Nsqd returned an error when queuing %s: %v", pid, err)
	}
	if resp == nil {
		return fmt.Errorf("No response from nsqd at '%s'. Is it running?", pubURL)
	}

	// nsqd sends a simple OK. We have to read the response body,
	// or the connection will hang open forever.
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyText := "[no response body]"
		if len(body) > 0 {
			bodyText = string(body)
		}
		return fmt.Errorf("nsqd returned status code %d when attempting to queue %s. "+
			"Response body: %s", resp.StatusCode, pid, bodyText)
	}
	return nil
}
