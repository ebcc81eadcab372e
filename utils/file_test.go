package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadRootConfigurable(t *testing.T) {
	defer SetUploadRoot("uploads")

	SetUploadRoot("media")
	assert.Equal(t, "media", UploadRoot())
	assert.Equal(t, filepath.Join("media", "avatars", "a.png"), GetUploadPath("avatars/a.png"))

	// empty override keeps the current root
	SetUploadRoot("")
	assert.Equal(t, "media", UploadRoot())
}
