package util

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/richardlehane/siegfried"
	"github.com/richardlehane/siegfried/pkg/static"
	"github.com/spf13/afero"
)

const DefaultMimeType = "application/octet-stream"

// headerSize is the number of leading bytes we keep for the
// fallback sniffer.
const headerSize = 512

// FormatIdentifier determines a file's mime type by looking at its
// bytes, never at its name. It uses Siegfried with the PRONOM
// signatures compiled into the binary, and falls back to the
// net/http content sniffer when PRONOM has no mime type for a match.
type FormatIdentifier struct {
	once sync.Once
	sf   *siegfried.Siegfried
}

// NewFormatIdentifier returns a new FormatIdentifier. The signature
// file is loaded on first use.
func NewFormatIdentifier() *FormatIdentifier {
	return &FormatIdentifier{}
}

func (f *FormatIdentifier) loadSiegfried() *siegfried.Siegfried {
	f.once.Do(func() {
		f.sf = static.New()
	})
	return f.sf
}

// MimeType reads r and returns its mime type. This consumes r.
func (f *FormatIdentifier) MimeType(r io.Reader) (string, error) {
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", err
	}
	header = header[:n]
	if n == 0 {
		return DefaultMimeType, nil
	}
	sf := f.loadSiegfried()
	ids, err := sf.Identify(io.MultiReader(bytes.NewReader(header), r), "", "")
	if err == nil {
		for _, id := range ids {
			for _, pair := range sf.Label(id) {
				if pair[0] == "mime" && pair[1] != "" {
					return pair[1], nil
				}
			}
		}
	}
	return http.DetectContentType(header), nil
}

// MimeTypeOfFile opens filePath on fs and returns its mime type.
// The file is closed before this returns.
func (f *FormatIdentifier) MimeTypeOfFile(fs afero.Fs, filePath string) (string, error) {
	file, err := fs.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return f.MimeType(file)
}
