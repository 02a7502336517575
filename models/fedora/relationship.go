package fedora

import (
	"fmt"
	"strconv"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/util"
)

// Relationship is one triple in an object's RELS-EXT graph. Subject
// is always the object's own info:fedora/ URI.
type Relationship struct {
	Subject   string
	Predicate string
	Object    string
	IsLiteral bool
}

func (r *Relationship) String() string {
	return fmt.Sprintf("subject=%s, predicate=%s, object=%s, isLiteral=%t",
		r.Subject, r.Predicate, r.Object, r.IsLiteral)
}

// MemberOfCollection puts pid into collection.
func MemberOfCollection(pid, collection string) *Relationship {
	return &Relationship{
		Subject:   URI(pid),
		Predicate: constants.PredicateIsMemberOfCollection,
		Object:    URI(collection),
	}
}

// HasModel assigns a content model, such as constants.ModelCompound.
func HasModel(pid, model string) *Relationship {
	return &Relationship{
		Subject:   URI(pid),
		Predicate: constants.PredicateHasModel,
		Object:    model,
	}
}

// ConstituentOf makes pid a child of parent.
func ConstituentOf(pid, parent string) *Relationship {
	return &Relationship{
		Subject:   URI(pid),
		Predicate: constants.PredicateIsConstituentOf,
		Object:    URI(parent),
	}
}

// SequenceNumberOf gives pid its position among parent's children.
// The predicate embeds the parent pid with ':' replaced by '_'.
func SequenceNumberOf(pid, parent string, sequence int) *Relationship {
	return &Relationship{
		Subject:   URI(pid),
		Predicate: constants.PredicateSequenceNumberPrefix + util.SequencePredicateSuffix(parent),
		Object:    strconv.Itoa(sequence),
		IsLiteral: true,
	}
}
