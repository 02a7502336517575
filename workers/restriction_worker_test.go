package workers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/network"
	"github.com/APTrust/fedora-services/util/logger"
	"github.com/APTrust/fedora-services/util/testutil"
	"github.com/APTrust/fedora-services/workers"
	"github.com/nsqio/go-nsq"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorker(t *testing.T, server *testutil.FedoraServer, redisAddr string) *workers.RestrictionWorker {
	config := common.DefaultConfig()
	config.FedoraURL = server.URL
	config.RedisURL = redisAddr
	fs := afero.NewMemMapFs()
	require.Nil(t, testutil.WriteAssets(fs, config))
	context, err := models.NewContextWithFs(config, logger.DiscardLogger("worker_test"), fs)
	require.Nil(t, err)
	return workers.NewRestrictionWorker(context)
}

func message(body string) *nsq.Message {
	var id nsq.MessageID
	copy(id[:], "0123456789abcdef")
	return nsq.NewMessage(id, []byte(body))
}

func TestNewRestrictionWorker(t *testing.T) {
	server := testutil.NewFedoraServer()
	defer server.Close()
	worker := newWorker(t, server, "")
	assert.Equal(t, constants.TopicRestrict, worker.NSQTopic)
	assert.Equal(t, constants.ChannelRestrict, worker.NSQChannel)
	assert.Equal(t, constants.DefaultRestrictionPolicyPath, worker.PolicyPath)
	assert.NotEmpty(t, worker.WorkerID)
	assert.Nil(t, worker.Recorder)
}

func TestPidFromMessage(t *testing.T) {
	pid, err := workers.PidFromMessage("test:6\n")
	require.Nil(t, err)
	assert.Equal(t, "test:6", pid)

	pid, err = workers.PidFromMessage("objects/test:7")
	require.Nil(t, err)
	assert.Equal(t, "test:7", pid)

	for _, body := range []string{"", "   ", "not-a-pid", "objects/"} {
		_, err = workers.PidFromMessage(body)
		require.NotNil(t, err, body)
		assert.True(t, errors.Is(err, common.ErrInvalidPidLine))
	}
}

func TestHandleMessage(t *testing.T) {
	server := testutil.NewFedoraServer()
	defer server.Close()
	redisServer := testutil.NewRedisServer()
	defer redisServer.Close()
	worker := newWorker(t, server, redisServer.Addr())
	require.NotNil(t, worker.Recorder)

	assert.Nil(t, worker.HandleMessage(message("objects/test:6")))
	requests := server.Requests()
	require.Equal(t, 1, len(requests))
	assert.Equal(t, "test:6", requests[0].PID)
	assert.Equal(t, constants.DatastreamPolicy, requests[0].DSID)
	assert.Equal(t, "NAGPRA_POLICY.xml", requests[0].FileName)

	redisClient := network.NewRedisClient(redisServer.Addr(), "", 0)
	record, err := redisClient.IngestRecordGet(worker.WorkerID, "objects/test:6")
	require.Nil(t, err)
	assert.Equal(t, "test:6", record.PID)
	assert.True(t, record.Succeeded())
}

func TestHandleMessageFailures(t *testing.T) {
	server := testutil.NewFedoraServer()
	defer server.Close()
	server.FailWhen(func(r *testutil.RecordedRequest) bool { return r.PID == "test:9" }, http.StatusNotFound)
	worker := newWorker(t, server, "")

	// Failures are never handed back to NSQ for requeue.
	assert.Nil(t, worker.HandleMessage(message("test:9")))
	assert.Nil(t, worker.HandleMessage(message("garbage")))
	assert.Equal(t, 1, server.RequestCount())

	record := worker.Restrict("test:9")
	assert.False(t, record.Succeeded())
	assert.Contains(t, record.Error, "404")
	assert.Equal(t, constants.ItemKindPolicy, record.Kind)
}

func TestRegisterWithoutLookupd(t *testing.T) {
	server := testutil.NewFedoraServer()
	defer server.Close()
	worker := newWorker(t, server, "")
	err := worker.RegisterAsNsqConsumer()
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingParam))
}

func TestHandleMessageSkipsDuplicates(t *testing.T) {
	server := testutil.NewFedoraServer()
	defer server.Close()
	worker := newWorker(t, server, "")

	assert.Nil(t, worker.HandleMessage(message("test:6")))
	assert.Nil(t, worker.HandleMessage(message("objects/test:6")))
	assert.Equal(t, 1, server.RequestCount())
	assert.True(t, worker.Restricted.Contains("test:6"))

	// Failed pids are not remembered, so a later message retries them.
	server.FailWhen(func(r *testutil.RecordedRequest) bool { return r.PID == "test:7" }, http.StatusInternalServerError)
	assert.Nil(t, worker.HandleMessage(message("test:7")))
	assert.Nil(t, worker.HandleMessage(message("test:7")))
	assert.Equal(t, 3, server.RequestCount())
	assert.False(t, worker.Restricted.Contains("test:7"))
}
