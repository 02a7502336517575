package fedora

import (
	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util"
)

// Datastream describes an internally managed datastream to be
// attached to an existing object. The bytes come from FilePath.
type Datastream struct {
	PID          string
	DSID         string
	FilePath     string
	Label        string
	Versionable  bool
	State        string
	ChecksumType string
}

// NewManagedDatastream returns a versionable, active datastream with
// Fedora's default checksum type and a label equal to its dsid.
func NewManagedDatastream(pid, dsid, filePath string) *Datastream {
	return &Datastream{
		PID:          pid,
		DSID:         dsid,
		FilePath:     filePath,
		Versionable:  true,
		State:        constants.StateActive,
		ChecksumType: constants.ChecksumDefault,
	}
}

// Validate checks the checksum type against the list Fedora accepts.
// This is purely local; it never touches the network.
func (ds *Datastream) Validate() error {
	if !util.StringListContains(constants.ChecksumTypes, ds.ChecksumType) {
		return common.NewValidationError(common.ErrInvalidChecksumType,
			"Invalid checksum type %q specified for %s when adding the %s datastream with %s "+
				"content. Must be one of: DEFAULT, DISABLED, MD5, SHA-1, SHA-256, SHA-385, SHA-512.",
			ds.ChecksumType, ds.PID, ds.DSID, ds.FilePath)
	}
	return nil
}

// EffectiveLabel returns Label, or DSID if Label is empty.
func (ds *Datastream) EffectiveLabel() string {
	if ds.Label == "" {
		return ds.DSID
	}
	return ds.Label
}

// EffectiveState returns State, or "A" if State is empty.
func (ds *Datastream) EffectiveState() string {
	if ds.State == "" {
		return constants.StateActive
	}
	return ds.State
}
