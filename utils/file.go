package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

var uploadRoot = "uploads"

// SetUploadRoot overrides the local media directory. Empty input keeps the
// current root.
func SetUploadRoot(dir string) {
	if dir != "" {
		uploadRoot = dir
	}
}

// UploadRoot returns the local media directory.
func UploadRoot() string {
	return uploadRoot
}

// EnsureUploadDir creates the local media directory if it is missing.
func EnsureUploadDir() error {
	return os.MkdirAll(uploadRoot, os.ModePerm)
}

// SaveFile writes an uploaded file to destPath, creating parent directories
// as needed.
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// GetUploadPath maps a media key (e.g. "avatars/abc.png") to its on-disk
// path under the upload root.
func GetUploadPath(key string) string {
	return filepath.Join(uploadRoot, key)
}
