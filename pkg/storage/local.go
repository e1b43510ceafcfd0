package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocumentsDir is the subdirectory of the upload dir that holds workflow
// documents. The static route mounts the upload dir at /uploads, so files
// written here resolve as {base}/uploads/documents/{file}.
const DocumentsDir = "documents"

// LocalAdapter writes documents under a directory served by the static
// file route.
type LocalAdapter struct {
	uploadDir string
	baseURL   string
}

func NewLocalAdapter(uploadDir, baseURL string) *LocalAdapter {
	return &LocalAdapter{
		uploadDir: uploadDir,
		baseURL:   baseURL,
	}
}

func (a *LocalAdapter) Save(ctx context.Context, key string, content []byte) (string, error) {
	dir := filepath.Join(a.uploadDir, DocumentsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	// Keys come from callers as userId_documentType_timestamp.ext; strip
	// anything that could escape the upload directory.
	filename := filepath.Base(key)
	dstPath := filepath.Join(dir, filename)

	if err := os.WriteFile(dstPath, content, 0644); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/documents/%s", a.baseURL, filename), nil
}

func (a *LocalAdapter) Delete(ctx context.Context, url string) error {
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return fmt.Errorf("malformed document url: %s", url)
	}
	filename := filepath.Base(url[idx+1:])

	err := os.Remove(filepath.Join(a.uploadDir, DocumentsDir, filename))
	if os.IsNotExist(err) {
		// Already gone; compensation is idempotent
		return nil
	}
	return err
}
