package ingest

import (
	"fmt"
	"path/filepath"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/network"
)

// IngestPart creates one object for the file at part.Path and links
// it to part.Parent. The calls go out in this order:
//
// 1. Create the object.
//
// 2. Add it to part.Collection.
//
// 3. Give it the binary object content model.
//
// 4. Turn on versioning of RELS-EXT.
//
// 5. Upload the file as OBJ, then the thumbnail as TN, the policy
// as POLICY and the metadata record as MODS.
//
// 6. Make it a constituent of part.Parent with sequence number
// part.Sequence.
//
// The first failure stops the sequence. Nothing is rolled back, so
// when the object was created, the pid comes back along with the
// error and the object stays in Fedora partly built.
func IngestPart(client network.FedoraClientInterface, part *fedora.Part) (string, error) {
	pid, err := client.CreateObject(part.Namespace, part.EffectiveLabel(), part.State)
	if err != nil {
		return "", fmt.Errorf("Could not create object for %s: %w", part.Path, err)
	}

	obj := fedora.NewManagedDatastream(pid, constants.DatastreamOBJ, part.Path)
	obj.Label = filepath.Base(part.Path)

	steps := []func() error{
		func() error {
			return client.AddRelationship(pid, fedora.MemberOfCollection(pid, part.Collection))
		},
		func() error {
			return client.AddRelationship(pid, fedora.HasModel(pid, constants.ModelBinaryObject))
		},
		func() error {
			return client.SetVersioning(pid, constants.DatastreamRelsExt, true)
		},
		func() error {
			return client.AddManagedDatastream(obj)
		},
		func() error {
			return client.AddManagedDatastream(
				fedora.NewManagedDatastream(pid, constants.DatastreamThumb, part.Assets.ThumbnailPath))
		},
		func() error {
			return client.AddManagedDatastream(
				fedora.NewManagedDatastream(pid, constants.DatastreamPolicy, part.Assets.PolicyPath))
		},
		func() error {
			return client.AddManagedDatastream(
				fedora.NewManagedDatastream(pid, constants.DatastreamMODS, part.Assets.ModsPath))
		},
		func() error {
			return client.AddRelationship(pid, fedora.ConstituentOf(pid, part.Parent))
		},
		func() error {
			return client.AddRelationship(pid, fedora.SequenceNumberOf(pid, part.Parent, part.Sequence))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return pid, fmt.Errorf("Ingest of %s as %s stopped: %w", part.Path, pid, err)
		}
	}
	return pid, nil
}
