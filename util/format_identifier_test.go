package util_test

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/APTrust/fedora-services/util"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A complete 1x1 transparent PNG.
const pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

var formatIdentifier = util.NewFormatIdentifier()

func TestMimeTypePNG(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(pngBase64)
	require.Nil(t, err)
	mimeType, err := formatIdentifier.MimeType(bytes.NewReader(data))
	require.Nil(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestMimeTypeText(t *testing.T) {
	text := strings.Repeat("Letters of A, 1862-1865. ", 20)
	mimeType, err := formatIdentifier.MimeType(strings.NewReader(text))
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(mimeType, "text/plain"), mimeType)
}

func TestMimeTypeEmpty(t *testing.T) {
	mimeType, err := formatIdentifier.MimeType(bytes.NewReader(nil))
	require.Nil(t, err)
	assert.Equal(t, util.DefaultMimeType, mimeType)
}

func TestMimeTypeIgnoresFileName(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(pngBase64)
	require.Nil(t, err)
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/data/not_really.txt", data, 0644))

	mimeType, err := formatIdentifier.MimeTypeOfFile(fs, "/data/not_really.txt")
	require.Nil(t, err)
	assert.Equal(t, "image/png", mimeType)
}

func TestMimeTypeOfMissingFile(t *testing.T) {
	_, err := formatIdentifier.MimeTypeOfFile(afero.NewMemMapFs(), "/data/missing.png")
	assert.NotNil(t, err)
}
