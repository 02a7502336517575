package fedora

import (
	"encoding/json"
	"time"
)

// IngestRecord tracks one item of a batch: which source it came
// from, which pid Fedora assigned, and whether every step finished.
// A record with a PID and an Error describes a partially built
// object that an operator needs to look at.
type IngestRecord struct {
	BatchID     string    `json:"batch_id"`
	Kind        string    `json:"kind"`
	Source      string    `json:"source"`
	PID         string    `json:"pid,omitempty"`
	Sequence    int       `json:"sequence,omitempty"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// NewIngestRecord returns a record marked as started now.
func NewIngestRecord(batchID, kind, source string) *IngestRecord {
	return &IngestRecord{
		BatchID:   batchID,
		Kind:      kind,
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

// IngestRecordFromJSON converts JSON to an IngestRecord.
func IngestRecordFromJSON(jsonData string) (*IngestRecord, error) {
	record := &IngestRecord{}
	err := json.Unmarshal([]byte(jsonData), record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ToJSON returns the record as JSON.
func (r *IngestRecord) ToJSON() (string, error) {
	bytes, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Finish records the outcome. A nil err means success.
func (r *IngestRecord) Finish(pid string, err error) {
	r.PID = pid
	r.CompletedAt = time.Now().UTC()
	if err != nil {
		r.Error = err.Error()
	}
}

// Succeeded returns true if the item finished without error.
func (r *IngestRecord) Succeeded() bool {
	return !r.CompletedAt.IsZero() && r.Error == ""
}
