package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/APTrust/fedora-services/constants"
	"github.com/gorilla/mux"
)

// Names of the Fedora API methods the fake server understands.
const (
	OpAddDatastream    = "addDatastream"
	OpAddRelationship  = "addRelationship"
	OpIngest           = "ingest"
	OpModifyDatastream = "modifyDatastream"
)

// RecordedRequest is what FedoraServer remembers about each call.
type RecordedRequest struct {
	Op          string
	Method      string
	PID         string
	DSID        string
	Query       url.Values
	User        string
	Password    string
	FileName    string
	ContentType string
	Expires     string
	Content     []byte
}

// Predicate returns the relationship predicate for addRelationship calls.
func (r *RecordedRequest) Predicate() string {
	return r.Query.Get("predicate")
}

// FedoraServer is a stand-in for the Fedora 3 REST API. It mints
// pids in order, answers with the status codes Fedora uses, and
// records every request so tests can check what was sent and in
// what order.
type FedoraServer struct {
	URL      string
	User     string
	Password string

	mutex    sync.Mutex
	server   *httptest.Server
	nextPid  int
	requests []*RecordedRequest
	failures []failure
}

type failure struct {
	match  func(*RecordedRequest) bool
	status int
}

func NewFedoraServer() *FedoraServer {
	fs := &FedoraServer{
		User:     constants.DefaultFedoraUser,
		Password: constants.DefaultFedoraPassword,
		nextPid:  1,
	}
	router := mux.NewRouter()
	router.HandleFunc("/fedora/objects/new", fs.handle(OpIngest, http.StatusCreated)).Methods(http.MethodPost)
	router.HandleFunc("/fedora/objects/{pid}/relationships/new", fs.handle(OpAddRelationship, http.StatusOK)).Methods(http.MethodPost)
	router.HandleFunc("/fedora/objects/{pid}/datastreams/{dsid}", fs.handle(OpModifyDatastream, http.StatusOK)).Methods(http.MethodPut)
	router.HandleFunc("/fedora/objects/{pid}/datastreams/{dsid}", fs.handle(OpAddDatastream, http.StatusCreated)).Methods(http.MethodPost)
	fs.server = httptest.NewServer(router)
	fs.URL = fs.server.URL
	return fs
}

// FailWhen makes the server answer with status for every request
// that match returns true for.
func (fs *FedoraServer) FailWhen(match func(*RecordedRequest) bool, status int) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	fs.failures = append(fs.failures, failure{match: match, status: status})
}

// Requests returns a copy of the requests received so far.
func (fs *FedoraServer) Requests() []*RecordedRequest {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return append([]*RecordedRequest{}, fs.requests...)
}

// RequestsFor returns requests received for the given pid.
func (fs *FedoraServer) RequestsFor(pid string) []*RecordedRequest {
	matching := make([]*RecordedRequest, 0)
	for _, req := range fs.Requests() {
		if req.PID == pid {
			matching = append(matching, req)
		}
	}
	return matching
}

// RequestCount returns the number of requests received so far.
func (fs *FedoraServer) RequestCount() int {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	return len(fs.requests)
}

func (fs *FedoraServer) Close() {
	fs.server.Close()
}

func (fs *FedoraServer) handle(op string, successStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		rec := &RecordedRequest{
			Op:     op,
			Method: r.Method,
			PID:    vars["pid"],
			DSID:   vars["dsid"],
			Query:  r.URL.Query(),
		}
		rec.User, rec.Password, _ = r.BasicAuth()
		if op == OpAddDatastream {
			if err := readUpload(r, rec); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		fs.mutex.Lock()
		if op == OpIngest {
			rec.PID = fmt.Sprintf("%s:%d", rec.Query.Get("namespace"), fs.nextPid)
		}
		fs.requests = append(fs.requests, rec)
		status := successStatus
		for _, f := range fs.failures {
			if f.match(rec) {
				status = f.status
				break
			}
		}
		if status == successStatus && op == OpIngest {
			fs.nextPid++
		}
		fs.mutex.Unlock()

		if rec.User != fs.User || rec.Password != fs.Password {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		w.WriteHeader(status)
		if status == http.StatusCreated && op == OpIngest {
			w.Write([]byte(rec.PID))
		} else if status >= 400 {
			w.Write([]byte(fmt.Sprintf("Fedora error %d for %s on %s", status, op, rec.PID)))
		}
	}
}

func readUpload(r *http.Request, rec *RecordedRequest) error {
	reader, err := r.MultipartReader()
	if err != nil {
		return err
	}
	part, err := reader.NextPart()
	if err != nil {
		return err
	}
	defer part.Close()
	rec.FileName = part.FileName()
	rec.ContentType = part.Header.Get("Content-Type")
	rec.Expires = part.Header.Get("Expires")
	rec.Content, err = io.ReadAll(part)
	return err
}
