package testutil

import (
	"encoding/base64"
	"fmt"
	"path"

	"github.com/APTrust/fedora-services/models/common"
	"github.com/spf13/afero"
)

// A complete 1x1 transparent PNG, used as the thumbnail fixture.
const ThumbnailPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

const PolicyXML = `<?xml version="1.0" encoding="UTF-8"?>
<Policy xmlns="urn:oasis:names:tc:xacml:1.0:policy" PolicyId="islandora-xacml-editor-v1" RuleCombiningAlgId="urn:oasis:names:tc:xacml:1.0:rule-combining-algorithm:first-applicable">
  <Target><Subjects><AnySubject/></Subjects><Resources><AnyResource/></Resources><Actions><AnyAction/></Actions></Target>
  <Rule RuleId="permit-everything-else" Effect="Permit"/>
</Policy>
`

const DublinCoreXML = `<?xml version="1.0" encoding="UTF-8"?>
<oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>%s</dc:title>
</oai_dc:dc>
`

const ModsXML = `<?xml version="1.0" encoding="UTF-8"?>
<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink" version="3.5">
  <titleInfo>
    <title>%s</title>
  </titleInfo>
  <typeOfResource>text</typeOfResource>
</mods>
`

// ModsDocument returns a minimal MODS record with the given title.
func ModsDocument(title string) []byte {
	return []byte(fmt.Sprintf(ModsXML, title))
}

// DublinCoreDocument returns a minimal oai_dc record with the given title.
func DublinCoreDocument(title string) []byte {
	return []byte(fmt.Sprintf(DublinCoreXML, title))
}

// WriteAssets writes the thumbnail, policy, restriction policy,
// MODS and DC fixtures to the paths named in config.
func WriteAssets(fs afero.Fs, config *common.Config) error {
	thumbnail, err := base64.StdEncoding.DecodeString(ThumbnailPNG)
	if err != nil {
		return err
	}
	files := map[string][]byte{
		config.ThumbnailPath:         thumbnail,
		config.PolicyPath:            []byte(PolicyXML),
		config.RestrictionPolicyPath: []byte(PolicyXML),
		config.ModsPath:              ModsDocument("Dataset part"),
		config.DCPath:                DublinCoreDocument("Dataset part"),
	}
	for filePath, data := range files {
		if err := WriteFile(fs, filePath, data); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes data to filePath, creating parent directories.
func WriteFile(fs afero.Fs, filePath string, data []byte) error {
	if err := fs.MkdirAll(path.Dir(filePath), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, filePath, data, 0644)
}

// WriteDataset writes one small text file per name into dir and
// returns the full paths.
func WriteDataset(fs afero.Fs, dir string, names ...string) ([]string, error) {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = path.Join(dir, name)
		data := []byte(fmt.Sprintf("station,reading\n%s,%d\n", name, i))
		if err := WriteFile(fs, paths[i], data); err != nil {
			return nil, err
		}
	}
	return paths, nil
}
