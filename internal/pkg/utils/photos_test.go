package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodePhotos(t *testing.T) {
	raw := EncodePhotos([]string{" a.jpg", "", "b.jpg"})
	assert.Equal(t, `["a.jpg","b.jpg"]`, raw)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, DecodePhotos(raw))
}

func TestDecodePhotos_Legacy(t *testing.T) {
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, DecodePhotos("a.jpg, b.jpg"))
	assert.Empty(t, DecodePhotos(""))
	assert.Equal(t, "[]", EncodePhotos(nil))
}
