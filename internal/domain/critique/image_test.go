package critique

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDataURL_PNG(t *testing.T) {
	img := ParseDataURL("data:image/png;base64,iVBORw0KGgo=")
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, "iVBORw0KGgo=", img.Data)
	assert.Equal(t, "png", img.Extension())
}

func TestParseDataURL_JPEG(t *testing.T) {
	img := ParseDataURL("data:image/jpeg;base64,/9j/4AAQ")
	assert.Equal(t, "image/jpeg", img.MediaType)
	assert.Equal(t, "/9j/4AAQ", img.Data)
	assert.Equal(t, "jpg", img.Extension())
}

func TestParseDataURL_BarePayload(t *testing.T) {
	img := ParseDataURL("iVBORw0KGgo=")
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, "iVBORw0KGgo=", img.Data)
}

func TestParseDataURL_EmptyPayloadKeepsInput(t *testing.T) {
	img := ParseDataURL("data:image/webp;base64,")
	assert.Equal(t, "image/webp", img.MediaType)
	assert.Equal(t, "data:image/webp;base64,", img.Data)
}

func TestIsDataURL(t *testing.T) {
	assert.True(t, IsDataURL("data:image/png;base64,AAAA"))
	assert.False(t, IsDataURL("https://cdn.example.com/shot.png"))
}
