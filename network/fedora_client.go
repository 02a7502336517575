package network

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

// FedoraClientInterface lists the primitive repository operations,
// so ingestors can accept any implementation.
type FedoraClientInterface interface {
	CreateObject(namespace, label string, state fedora.ObjectState) (string, error)
	AddRelationship(pid string, rel *fedora.Relationship) error
	SetVersioning(pid, dsid string, versionable bool) error
	AddManagedDatastream(ds *fedora.Datastream) error
	ReplaceDatastream(pid, dsid, filePath string) error
}

// MimeTypeDetector figures out the mime type of a file from its
// contents. util.FormatIdentifier implements this.
type MimeTypeDetector interface {
	MimeTypeOfFile(fs afero.Fs, filePath string) (string, error)
}

// FedoraClient supports the handful of Fedora 3 REST API calls we
// need to build objects: ingest, addRelationship, modifyDatastream
// and addDatastream. Every call is synchronous and made exactly once.
type FedoraClient struct {
	HostURL    string
	User       string
	Password   string
	fs         afero.Fs
	detector   MimeTypeDetector
	httpClient *http.Client
	logger     *logging.Logger
}

// NewFedoraClient creates a new Fedora client. Param hostURL is the
// scheme, host and port of the Fedora server, e.g.
// "http://localhost:8080". Upload files are read from fs and their
// mime types come from detector.
func NewFedoraClient(hostURL, user, password string, fs afero.Fs, detector MimeTypeDetector, logger *logging.Logger) (*FedoraClient, error) {
	if hostURL == "" {
		return nil, common.NewValidationError(common.ErrMissingParam, "Fedora URL cannot be empty.")
	}
	if _, err := url.Parse(hostURL); err != nil {
		return nil, fmt.Errorf("Invalid Fedora URL %s: %v", hostURL, err)
	}
	if fs == nil || detector == nil || logger == nil {
		return nil, common.NewValidationError(common.ErrMissingParam,
			"Fedora client needs a filesystem, a mime type detector and a logger.")
	}
	return &FedoraClient{
		HostURL:    strings.TrimSuffix(hostURL, "/"),
		User:       user,
		Password:   password,
		fs:         fs,
		detector:   detector,
		httpClient: &http.Client{Transport: &http.Transport{ForceAttemptHTTP2: true}},
		logger:     logger,
	}, nil
}

// CreateObject creates a new, empty object and returns the pid
// Fedora assigned to it. Param state must be fedora.Active or
// fedora.Inactive; anything else fails without contacting Fedora.
func (client *FedoraClient) CreateObject(namespace, label string, state fedora.ObjectState) (string, error) {
	if err := state.Validate(); err != nil {
		return "", common.NewValidationError(common.ErrInvalidState,
			"State specified for new digital object based on label: %s is not valid. Must be 'A' or 'I'.", label)
	}
	params := url.Values{}
	params.Set("namespace", namespace)
	params.Set("label", label)
	params.Set("state", string(state))
	absoluteURL := client.BuildURL("/fedora/objects/new?" + params.Encode())

	resp := NewFedoraResponse()
	client.DoRequest(resp, http.MethodPost, absoluteURL, nil, "")
	if err := client.checkStatus(resp, http.StatusCreated,
		"Request to ingest object with label `%s` failed", label); err != nil {
		return "", err
	}
	data, err := resp.RawResponseData()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// AddRelationship adds rel to the RELS-EXT of object pid.
func (client *FedoraClient) AddRelationship(pid string, rel *fedora.Relationship) error {
	params := url.Values{}
	params.Set("subject", rel.Subject)
	params.Set("predicate", rel.Predicate)
	params.Set("object", rel.Object)
	params.Set("isLiteral", strconv.FormatBool(rel.IsLiteral))
	relativeURL := fmt.Sprintf("/fedora/objects/%s/relationships/new?%s",
		url.PathEscape(pid), params.Encode())

	resp := NewFedoraResponse()
	client.DoRequest(resp, http.MethodPost, client.BuildURL(relativeURL), nil, "")
	return client.checkStatus(resp, http.StatusOK,
		"Unable to add relationship on %s with %s", pid, rel.String())
}

// SetVersioning turns versioning of datastream dsid on or off.
func (client *FedoraClient) SetVersioning(pid, dsid string, versionable bool) error {
	params := url.Values{}
	params.Set("versionable", strconv.FormatBool(versionable))
	relativeURL := fmt.Sprintf("/fedora/objects/%s/datastreams/%s?%s",
		url.PathEscape(pid), url.PathEscape(dsid), params.Encode())

	resp := NewFedoraResponse()
	client.DoRequest(resp, http.MethodPut, client.BuildURL(relativeURL), nil, "")
	return client.checkStatus(resp, http.StatusOK,
		"Unable to change versioning of the %s datastream on %s to %t", dsid, pid, versionable)
}

// AddManagedDatastream uploads ds.FilePath as a new internally
// managed (control group M) datastream. The checksum type is checked
// before anything is read or sent.
func (client *FedoraClient) AddManagedDatastream(ds *fedora.Datastream) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	params := url.Values{}
	params.Set("controlGroup", constants.ControlGroupManaged)
	params.Set("dsLabel", ds.EffectiveLabel())
	params.Set("versionable", strconv.FormatBool(ds.Versionable))
	params.Set("dsState", ds.EffectiveState())
	params.Set("checksumType", ds.ChecksumType)
	relativeURL := fmt.Sprintf("/fedora/objects/%s/datastreams/%s?%s",
		url.PathEscape(ds.PID), url.PathEscape(ds.DSID), params.Encode())

	resp := NewFedoraResponse()
	if err := client.upload(resp, client.BuildURL(relativeURL), ds.FilePath); err != nil {
		return err
	}
	return client.checkStatus(resp, http.StatusCreated,
		"Failed to create %s datastream on %s with %s as content", ds.DSID, ds.PID, ds.FilePath)
}

// ReplaceDatastream overwrites the content of an existing datastream
// with the contents of filePath. The datastream label becomes the
// file's base name.
func (client *FedoraClient) ReplaceDatastream(pid, dsid, filePath string) error {
	params := url.Values{}
	params.Set("dsLabel", filepath.Base(filePath))
	relativeURL := fmt.Sprintf("/fedora/objects/%s/datastreams/%s?%s",
		url.PathEscape(pid), url.PathEscape(dsid), params.Encode())

	resp := NewFedoraResponse()
	if err := client.upload(resp, client.BuildURL(relativeURL), filePath); err != nil {
		return err
	}
	return client.checkStatus(resp, http.StatusCreated,
		"Failed to replace %s datastream on %s with %s as content", dsid, pid, filePath)
}

// -------------------------------------------------------------------------
// Utility Methods
// -------------------------------------------------------------------------

// BuildURL combines the host and protocol in client.HostURL with
// relativeURL to create an absolute URL. For example, if client.HostURL
// is "http://localhost:8080", then client.BuildURL("/fedora/objects/new")
// would return "http://localhost:8080/fedora/objects/new".
func (client *FedoraClient) BuildURL(relativeURL string) string {
	return client.HostURL + relativeURL
}

// NewRequest returns a new request carrying the client's basic auth
// credentials. Param contentType may be empty for requests with no
// body.
func (client *FedoraClient) NewRequest(method, absoluteURL string, requestData io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequest(method, absoluteURL, requestData)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(client.User, client.Password)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// DoRequest issues an HTTP request, reads the response, and closes the
// connection to the remote server.
//
// If the request can't be sent, or the response can't be read, the
// error will be recorded in resp.Error. Status codes are left for the
// caller to judge.
func (client *FedoraClient) DoRequest(resp *FedoraResponse, method, absoluteURL string, requestData io.Reader, contentType string) {
	// Build the request
	request, err := client.NewRequest(method, absoluteURL, requestData, contentType)
	resp.Request = request
	if err != nil {
		resp.Error = fmt.Errorf("%s %s: %s", method, absoluteURL, err.Error())
		return
	}

	// Issue the HTTP request
	reqTime := time.Now()
	resp.Response, resp.Error = client.httpClient.Do(request)
	client.logger.Infof("%s %s completed in %s", method, absoluteURL, time.Since(reqTime))
	if resp.Error != nil {
		resp.Error = fmt.Errorf("%s %s: %s", method, absoluteURL, resp.Error.Error())
		return
	}

	// Read the response data and close the response body.
	// That's the only way to close the remote HTTP connection,
	// which will otherwise stay open indefinitely, causing
	// the system to eventually have too many open files.
	resp.readResponse()
}

// checkStatus turns a failed request, or a response with any status
// other than expected, into an HttpError. The message is built from
// format and args, and the status code is appended.
func (client *FedoraClient) checkStatus(resp *FedoraResponse, expected int, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	method, absoluteURL := "", ""
	if resp.Request != nil {
		method = resp.Request.Method
		absoluteURL = resp.Request.URL.String()
	}
	if resp.Error != nil {
		return common.NewHttpError(
			fmt.Sprintf("%s: %s", message, resp.Error.Error()),
			resp.Error, method, absoluteURL, resp.StatusCode())
	}
	if resp.StatusCode() == expected {
		return nil
	}
	httpErr := common.NewHttpError(
		fmt.Sprintf("%s. Fedora returned status code %d.", message, resp.StatusCode()),
		nil, method, absoluteURL, resp.StatusCode())
	httpErr.Body = resp.Body()
	client.logger.Error(httpErr.Detail())
	return httpErr
}

// upload streams filePath to absoluteURL as a multipart/form-data
// POST with a single part named "file". The file is open only for
// the duration of the request.
//
// This returns an error only if the file can't be read. Request
// errors go into resp.
func (client *FedoraClient) upload(resp *FedoraResponse, absoluteURL, filePath string) error {
	mimeType, err := client.detector.MimeTypeOfFile(client.fs, filePath)
	if err != nil {
		return err
	}
	file, err := client.fs.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)
	done := make(chan struct{})
	go func() {
		defer close(done)
		pipeWriter.CloseWithError(writeFilePart(writer, filePath, mimeType, file))
	}()

	client.DoRequest(resp, http.MethodPost, absoluteURL, pipeReader, writer.FormDataContentType())

	// If the request ended before the body was fully sent, this
	// unblocks the writer so we can close the file.
	pipeReader.Close()
	<-done
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(writer *multipart.Writer, filePath, mimeType string, file io.Reader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`,
		quoteEscaper.Replace(filepath.Base(filePath))))
	header.Set("Content-Type", mimeType)
	header.Set("Expires", "0")
	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err = io.Copy(part, file); err != nil {
		return err
	}
	return writer.Close()
}
