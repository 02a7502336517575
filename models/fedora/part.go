package fedora

import (
	"path/filepath"
)

// Assets are the fixed auxiliary files attached to every part.
type Assets struct {
	ThumbnailPath string
	PolicyPath    string
	ModsPath      string
}

// Part is a single file of a dataset, ingested as its own object
// and linked to an existing parent object.
type Part struct {
	Path       string
	Namespace  string
	Label      string
	Collection string
	State      ObjectState
	Parent     string
	Sequence   int
	Assets     Assets
}

// EffectiveLabel returns Label, or the base name of Path.
func (p *Part) EffectiveLabel() string {
	if p.Label == "" {
		return filepath.Base(p.Path)
	}
	return p.Label
}

// Compound is an aggregation object described by a MODS record and a
// Dublin Core record. Its label comes from the MODS title.
type Compound struct {
	ModsPath   string
	DCPath     string
	Namespace  string
	Collection string
	State      ObjectState
}
