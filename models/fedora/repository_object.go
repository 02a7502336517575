package fedora

import (
	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util"
)

// ObjectState is the state of a Fedora object: "A" (Active) or
// "I" (Inactive). Fedora also knows "D" (Deleted), but we never
// create deleted objects.
type ObjectState string

const (
	Active   ObjectState = constants.StateActive
	Inactive ObjectState = constants.StateInactive
)

// Validate returns a ValidationError wrapping common.ErrInvalidState
// if s is not one of the states we can create objects in.
func (s ObjectState) Validate() error {
	if !util.StringListContains(constants.ObjectStates, string(s)) {
		return common.NewValidationError(common.ErrInvalidState,
			"State %q is not valid. Must be 'A' or 'I'.", string(s))
	}
	return nil
}

// RepositoryObject describes an object in Fedora. PID is empty until
// Fedora assigns one.
type RepositoryObject struct {
	PID       string
	Namespace string
	Label     string
	State     ObjectState
}

// URI returns the object's identifier in info:fedora/ form, which is
// how relationships refer to it.
func (obj *RepositoryObject) URI() string {
	return URI(obj.PID)
}

// URI returns pid in info:fedora/ form.
func URI(pid string) string {
	return constants.FedoraURIPrefix + pid
}
