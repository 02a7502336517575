package ingest_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/APTrust/fedora-services/ingest"
	"github.com/APTrust/fedora-services/models/common"
	"github.com/APTrust/fedora-services/util/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleFromMods(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.Nil(t, testutil.WriteFile(memFs, "mods/a.xml", testutil.ModsDocument("  Letters of A\n ")))
	title, err := ingest.TitleFromMods(memFs, "mods/a.xml")
	require.Nil(t, err)
	assert.Equal(t, "Letters of A", title)
}

func TestTitleFromModsPrefixed(t *testing.T) {
	memFs := afero.NewMemMapFs()
	doc := `<?xml version="1.0"?>
<mods:mods xmlns:mods="http://www.loc.gov/mods/v3">
  <mods:titleInfo type="abbreviated"><mods:title></mods:title></mods:titleInfo>
  <mods:titleInfo><mods:title>Field notes, 1921</mods:title></mods:titleInfo>
  <mods:titleInfo><mods:title>Second title</mods:title></mods:titleInfo>
</mods:mods>`
	require.Nil(t, testutil.WriteFile(memFs, "mods/b.xml", []byte(doc)))
	title, err := ingest.TitleFromMods(memFs, "mods/b.xml")
	require.Nil(t, err)
	assert.Equal(t, "Field notes, 1921", title)
}

func TestTitleFromModsNoTitle(t *testing.T) {
	memFs := afero.NewMemMapFs()
	doc := `<mods xmlns="http://www.loc.gov/mods/v3"><typeOfResource>text</typeOfResource></mods>`
	require.Nil(t, testutil.WriteFile(memFs, "mods/c.xml", []byte(doc)))
	_, err := ingest.TitleFromMods(memFs, "mods/c.xml")
	require.NotNil(t, err)
	assert.Equal(t, common.KindMetadataParse, common.KindOf(err))
	assert.Contains(t, err.Error(), "mods/c.xml")
}

func TestTitleFromModsMalformed(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.Nil(t, testutil.WriteFile(memFs, "mods/d.xml", []byte("<mods><titleInfo><title>Oops")))
	_, err := ingest.TitleFromMods(memFs, "mods/d.xml")
	require.NotNil(t, err)
	assert.Equal(t, common.KindMetadataParse, common.KindOf(err))

	require.Nil(t, testutil.WriteFile(memFs, "mods/e.xml", testutil.DublinCoreDocument("Not MODS")))
	_, err = ingest.TitleFromMods(memFs, "mods/e.xml")
	require.NotNil(t, err)
	assert.Equal(t, common.KindMetadataParse, common.KindOf(err))
}

func TestTitleFromModsMissingFile(t *testing.T) {
	_, err := ingest.TitleFromMods(afero.NewMemMapFs(), "mods/missing.xml")
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, common.KindUnknown, common.KindOf(err))
}
