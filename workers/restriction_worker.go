package workers

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/ingest"
	"github.com/APTrust/fedora-services/models"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/util"
	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"
)

// RestrictionWorker reads pids from NSQ and attaches the restriction
// policy to each one. It handles one message at a time and never
// requeues. A pid that fails is logged and recorded, and someone has
// to look at it.
type RestrictionWorker struct {
	// Context contains the config, logger and the Fedora client,
	// plus Redis if configured.
	Context *models.Context

	// WorkerID is the batch id on records this worker saves.
	WorkerID string

	// NSQTopic and NSQChannel are where messages come from.
	NSQTopic   string
	NSQChannel string

	// PolicyPath is the XACML document to attach as POLICY.
	PolicyPath string

	// Recorder saves an IngestRecord for each message. May be nil.
	Recorder ingest.Recorder

	// NSQConsumer implements HandleMessage to receive messages from NSQ.
	NSQConsumer *nsq.Consumer

	// KillChannel handles SIGTERM and SIGINT.
	KillChannel chan os.Signal

	// Restricted holds recently restricted pids. NSQ does not dedupe
	// messages, so the worker must.
	Restricted *util.RingList
}

// NewRestrictionWorker returns a worker set up from context.Config.
func NewRestrictionWorker(context *models.Context) *RestrictionWorker {
	worker := &RestrictionWorker{
		Context:     context,
		WorkerID:    uuid.New().String(),
		NSQTopic:    context.Config.NsqRestrictTopic,
		NSQChannel:  constants.ChannelRestrict,
		PolicyPath:  context.Config.RestrictionPolicyPath,
		KillChannel: make(chan os.Signal, 1),
		Restricted:  util.NewRingList(1000),
	}
	if context.RedisClient != nil {
		worker.Recorder = context.RedisClient
	}
	return worker
}

// RegisterAsNsqConsumer registers this worker as an NSQ consumer on
// NSQTopic and NSQChannel. Note that as soon as you call this, your
// worker will start handling messages if any are available.
func (w *RestrictionWorker) RegisterAsNsqConsumer() error {
	if w.Context.Config.NsqLookupd == "" {
		return common.NewValidationError(common.ErrMissingParam, "NSQ_LOOKUPD is not set.")
	}
	config := nsq.NewConfig()
	config.Set("heartbeat_interval", "10s")
	config.Set("max_in_flight", 1)
	consumer, err := nsq.NewConsumer(w.NSQTopic, w.NSQChannel, config)
	if err != nil {
		return err
	}
	w.NSQConsumer = consumer
	w.NSQConsumer.AddHandler(w)
	if err := w.NSQConsumer.ConnectToNSQLookupd(w.Context.Config.NsqLookupd); err != nil {
		return err
	}
	w.Context.Logger.Infof("Registered as NSQ consumer on %s/%s", w.NSQTopic, w.NSQChannel)
	return nil
}

// Run registers with NSQ and blocks until the process receives
// SIGINT or SIGTERM. It then stops the consumer and waits for the
// message in flight to finish.
func (w *RestrictionWorker) Run() error {
	if err := w.RegisterAsNsqConsumer(); err != nil {
		return err
	}
	signal.Notify(w.KillChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-w.KillChannel
	w.Context.Logger.Infof("Received %s, stopping", sig)
	w.NSQConsumer.Stop()
	<-w.NSQConsumer.StopChan
	return nil
}

// HandleMessage applies the policy to the pid in the message body,
// unless this worker restricted that pid recently. It always returns
// nil, so NSQ marks every message finished.
func (w *RestrictionWorker) HandleMessage(message *nsq.Message) error {
	if pid, err := PidFromMessage(string(message.Body)); err == nil && w.Restricted.Contains(pid) {
		w.Context.Logger.Infof("Skipping %s, which was restricted recently", pid)
		return nil
	}
	record := w.Restrict(string(message.Body))
	if record.Error != "" {
		w.Context.Logger.Errorf("Message %s: %s", string(message.ID[:]), record.Error)
	}
	return nil
}

// Restrict applies the policy to the pid in body, which is either a
// bare pid or a "prefix/pid" line.
func (w *RestrictionWorker) Restrict(body string) *fedora.IngestRecord {
	record := fedora.NewIngestRecord(w.WorkerID, constants.ItemKindPolicy, strings.TrimSpace(body))
	pid, err := PidFromMessage(body)
	if err == nil {
		err = ingest.ApplyPolicy(w.Context.FedoraClient, pid, w.PolicyPath)
	}
	record.Finish(pid, err)
	if err == nil {
		w.Restricted.Add(pid)
		w.Context.Logger.Infof("Restricted %s", pid)
	}
	if w.Recorder != nil {
		if saveErr := w.Recorder.IngestRecordSave(record); saveErr != nil {
			w.Context.Logger.Errorf("Failed to save ingest record for %s to redis: %s",
				record.Source, saveErr.Error())
		}
	}
	return record
}

// PidFromMessage returns the pid in an NSQ message body.
func PidFromMessage(body string) (string, error) {
	body = strings.TrimSpace(body)
	if strings.Contains(body, "/") {
		return ingest.PidFromLine(body)
	}
	if body == "" || !strings.Contains(body, ":") {
		return "", common.NewValidationError(common.ErrInvalidPidLine,
			"Message %q does not contain a pid.", body)
	}
	return body, nil
}
