package ingest

import (
	"encoding/xml"
	"strings"

	"github.com/APTrust/fedora-services/models/common"
	"github.com/spf13/afero"
)

// modsRecord holds the part of a MODS document we care about.
// Element names match regardless of namespace prefix.
type modsRecord struct {
	XMLName    xml.Name        `xml:"mods"`
	TitleInfos []modsTitleInfo `xml:"titleInfo"`
}

type modsTitleInfo struct {
	Title string `xml:"title"`
}

// TitleFromMods returns the text of mods/titleInfo/title from the
// MODS document at filePath, trimmed of surrounding whitespace. If
// there are several titleInfo elements, the first non-empty title
// wins.
//
// A missing file returns the filesystem's error. A document that
// is not MODS, or that has no title, returns a MetadataError.
func TitleFromMods(fs afero.Fs, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	record := &modsRecord{}
	if err := xml.NewDecoder(file).Decode(record); err != nil {
		return "", common.NewMetadataError(filePath, "cannot parse MODS", err)
	}
	for _, titleInfo := range record.TitleInfos {
		title := strings.TrimSpace(titleInfo.Title)
		if title != "" {
			return title, nil
		}
	}
	return "", common.NewMetadataError(filePath, "MODS record has no mods/titleInfo/title", nil)
}
