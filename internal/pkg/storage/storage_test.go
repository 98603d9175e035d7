package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG header is enough for content sniffing
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateImage(t *testing.T) {
	require.NoError(t, ValidateImage("pothole.png", pngHeader))

	assert.ErrorIs(t, ValidateImage("empty.png", nil), ErrEmptyImage)
	assert.Error(t, ValidateImage("notes.pdf", pngHeader))
	assert.Error(t, ValidateImage("fake.png", []byte("<html><body>hi</body></html>")))

	big := bytes.Repeat([]byte{0}, int(MaxImageSize)+1)
	assert.Error(t, ValidateImage("big.png", big))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(pngHeader))
	assert.Equal(t, "image/jpeg", ContentType([]byte("plain text")))
}
