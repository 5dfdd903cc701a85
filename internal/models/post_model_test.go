package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePostType(t *testing.T) {
	for _, valid := range []string{"photo", "carousel", "video", "reel"} {
		pt, err := ParsePostType(valid)
		assert.NoError(t, err)
		assert.Equal(t, PostType(valid), pt)
	}

	for _, invalid := range []string{"", "story", "Photo", "PHOTO"} {
		_, err := ParsePostType(invalid)
		assert.Error(t, err, invalid)
	}
}
