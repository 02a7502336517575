package ingest

import (
	"fmt"

	"github.com/APTrust/fedora-services/constants"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/network"
	"github.com/spf13/afero"
)

// IngestCompound creates an aggregation object labelled with the
// title from compound.ModsPath, adds it to compound.Collection with
// the compound content model, and attaches the MODS and DC records.
//
// The title is read before anything is sent, so a bad MODS record
// leaves Fedora untouched. After that, as with IngestPart, the first
// failure stops the sequence and the pid comes back with the error.
func IngestCompound(client network.FedoraClientInterface, fs afero.Fs, compound *fedora.Compound) (string, error) {
	label, err := TitleFromMods(fs, compound.ModsPath)
	if err != nil {
		return "", err
	}
	pid, err := client.CreateObject(compound.Namespace, label, compound.State)
	if err != nil {
		return "", fmt.Errorf("Could not create compound object for %s: %w", compound.ModsPath, err)
	}
	steps := []func() error{
		func() error {
			return client.AddRelationship(pid, fedora.MemberOfCollection(pid, compound.Collection))
		},
		func() error {
			return client.AddRelationship(pid, fedora.HasModel(pid, constants.ModelCompound))
		},
		func() error {
			return client.SetVersioning(pid, constants.DatastreamRelsExt, true)
		},
		func() error {
			return client.AddManagedDatastream(
				fedora.NewManagedDatastream(pid, constants.DatastreamMODS, compound.ModsPath))
		},
		func() error {
			return client.AddManagedDatastream(
				fedora.NewManagedDatastream(pid, constants.DatastreamDC, compound.DCPath))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return pid, fmt.Errorf("Ingest of compound %s as %s stopped: %w", compound.ModsPath, pid, err)
		}
	}
	return pid, nil
}
