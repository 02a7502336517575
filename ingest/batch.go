package ingest

import (
	"fmt"
	"path/filepath"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/network"
	"github.com/APTrust/fedora-services/util"
	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/spf13/afero"
)

// Recorder saves the outcome of each item in a batch.
// network.RedisClient implements this.
type Recorder interface {
	IngestRecordSave(record *fedora.IngestRecord) error
}

// BatchDriver runs the part, compound and policy ingestors over a
// set of inputs, one item at a time, and stops at the first item
// that fails. Items that succeeded before the failure stay in Fedora.
//
// Recorder and Publisher are optional. When set, each item's record
// is saved, and the pid of each new object is published to
// IngestedTopic.
type BatchDriver struct {
	BatchID               string
	Client                network.FedoraClientInterface
	Fs                    afero.Fs
	Logger                *logging.Logger
	Namespace             string
	Collection            string
	State                 fedora.ObjectState
	Assets                fedora.Assets
	RestrictionPolicyPath string
	Recorder              Recorder
	Publisher             network.NSQClientInterface
	IngestedTopic         string
}

// NewBatchDriver returns a driver with a new batch id, configured
// from context. Namespace, collection and asset paths come from the
// config, and callers may override them.
func NewBatchDriver(context *models.Context) *BatchDriver {
	config := context.Config
	driver := &BatchDriver{
		BatchID:    uuid.New().String(),
		Client:     context.FedoraClient,
		Fs:         context.Fs,
		Logger:     context.Logger,
		Namespace:  config.Namespace,
		Collection: config.Collection,
		State:      fedora.Active,
		Assets: fedora.Assets{
			ThumbnailPath: config.ThumbnailPath,
			PolicyPath:    config.PolicyPath,
			ModsPath:      config.ModsPath,
		},
		RestrictionPolicyPath: config.RestrictionPolicyPath,
		IngestedTopic:         config.NsqIngestedTopic,
	}
	if context.RedisClient != nil {
		driver.Recorder = context.RedisClient
	}
	if context.NSQClient != nil && config.NsqIngestedTopic != "" {
		driver.Publisher = context.NSQClient
	}
	return driver
}

// IngestParts ingests every regular, non-hidden file directly inside
// dir as a part of parent. Files go in name order and are numbered
// from startSeq. A startSeq below 1 is treated as 1.
//
// This returns the records of all items attempted, including the
// one that failed.
func (d *BatchDriver) IngestParts(dir, parent string, startSeq int) ([]*fedora.IngestRecord, error) {
	files, err := d.listFiles(dir)
	if err != nil {
		return nil, err
	}
	if startSeq < 1 {
		startSeq = 1
	}
	d.Logger.Infof("Batch %s: ingesting %d parts of %s from %s", d.BatchID, len(files), parent, dir)
	records := make([]*fedora.IngestRecord, 0, len(files))
	for i, filePath := range files {
		record := fedora.NewIngestRecord(d.BatchID, constants.ItemKindPart, filePath)
		record.Sequence = startSeq + i
		part := &fedora.Part{
			Path:       filePath,
			Namespace:  d.Namespace,
			Collection: d.Collection,
			State:      d.State,
			Parent:     parent,
			Sequence:   record.Sequence,
			Assets:     d.Assets,
		}
		pid, err := IngestPart(d.Client, part)
		records = append(records, d.finish(record, pid, err))
		if err != nil {
			return records, err
		}
		d.Logger.Infof("Ingested %s as %s, sequence %d", filePath, pid, record.Sequence)
	}
	return records, nil
}

// IngestCompounds creates one compound object for each MODS file in
// modsDir, paired with the Dublin Core file of the same name in dcDir.
func (d *BatchDriver) IngestCompounds(modsDir, dcDir string) ([]*fedora.IngestRecord, error) {
	files, err := d.listFiles(modsDir)
	if err != nil {
		return nil, err
	}
	d.Logger.Infof("Batch %s: ingesting %d compounds from %s", d.BatchID, len(files), modsDir)
	records := make([]*fedora.IngestRecord, 0, len(files))
	for _, modsPath := range files {
		record := fedora.NewIngestRecord(d.BatchID, constants.ItemKindCompound, modsPath)
		compound := &fedora.Compound{
			ModsPath:   modsPath,
			DCPath:     filepath.Join(dcDir, filepath.Base(modsPath)),
			Namespace:  d.Namespace,
			Collection: d.Collection,
			State:      d.State,
		}
		pid, err := IngestCompound(d.Client, d.Fs, compound)
		records = append(records, d.finish(record, pid, err))
		if err != nil {
			return records, err
		}
		d.Logger.Infof("Ingested compound %s as %s", modsPath, pid)
	}
	return records, nil
}

// Restrict attaches the restriction policy to every pid in the list
// at listPath. The whole list is parsed first, so a bad line means
// no policy is applied at all.
func (d *BatchDriver) Restrict(listPath string) ([]*fedora.IngestRecord, error) {
	pids, err := ReadPidList(d.Fs, listPath)
	if err != nil {
		return nil, err
	}
	d.Logger.Infof("Batch %s: applying %s to %d objects", d.BatchID, d.RestrictionPolicyPath, len(pids))
	records := make([]*fedora.IngestRecord, 0, len(pids))
	for _, pid := range pids {
		record := fedora.NewIngestRecord(d.BatchID, constants.ItemKindPolicy, pid)
		err := ApplyPolicy(d.Client, pid, d.RestrictionPolicyPath)
		records = append(records, d.finish(record, pid, err))
		if err != nil {
			return records, err
		}
		d.Logger.Infof("Restricted %s", pid)
	}
	return records, nil
}

// finish completes the record, saves it and publishes the pid if
// this driver has somewhere to save and publish. Failures here are
// logged and do not stop the batch, since the object itself is done.
func (d *BatchDriver) finish(record *fedora.IngestRecord, pid string, err error) *fedora.IngestRecord {
	record.Finish(pid, err)
	if err != nil {
		d.Logger.Errorf("Batch %s: %s failed: %s", d.BatchID, record.Source, err.Error())
	}
	if d.Recorder != nil {
		if saveErr := d.Recorder.IngestRecordSave(record); saveErr != nil {
			d.Logger.Errorf("Failed to save ingest record for %s to redis: %s",
				record.Source, saveErr.Error())
		}
	}
	if d.Publisher != nil && err == nil && record.Kind != constants.ItemKindPolicy {
		if pubErr := d.Publisher.Enqueue(d.IngestedTopic, pid); pubErr != nil {
			d.Logger.Errorf("Failed to queue %s in %s: %s", pid, d.IngestedTopic, pubErr.Error())
		}
	}
	return record
}

// listFiles returns the regular, non-hidden files directly inside
// dir. afero.ReadDir sorts entries by name.
func (d *BatchDriver) listFiles(dir string) ([]string, error) {
	entries, err := afero.ReadDir(d.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("Cannot read directory %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() || util.IsHiddenFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
