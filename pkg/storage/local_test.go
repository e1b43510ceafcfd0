package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// The static route serves the upload dir at /uploads, so the path segment
// of a returned URL after /uploads/ must exist relative to the upload dir.
func TestLocalAdapterURLMatchesStoredPath(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLocalAdapter(dir, "http://localhost:3000")

	url, err := adapter.Save(context.Background(), "user1_identity_123.pdf", []byte("content"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	prefix := "http://localhost:3000/uploads/"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("url %q not under static mount %q", url, prefix)
	}

	rel := strings.TrimPrefix(url, prefix)
	onDisk := filepath.Join(dir, filepath.FromSlash(rel))
	if _, err := os.Stat(onDisk); err != nil {
		t.Errorf("url %q does not resolve to a stored file: %v", url, err)
	}
}

func TestLocalAdapterDelete(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLocalAdapter(dir, "http://localhost:3000")

	url, err := adapter.Save(context.Background(), "user1_identity_123.pdf", []byte("content"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := adapter.Delete(context.Background(), url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, DocumentsDir, "user1_identity_123.pdf")); !os.IsNotExist(err) {
		t.Errorf("file still present after Delete")
	}

	// Compensation may run twice; a second delete is a no-op.
	if err := adapter.Delete(context.Background(), url); err != nil {
		t.Errorf("repeated Delete returned %v, want nil", err)
	}
}

func TestLocalAdapterSanitizesKey(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLocalAdapter(dir, "http://localhost:3000")

	url, err := adapter.Save(context.Background(), "../../escape.pdf", []byte("content"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(url, "/uploads/"+DocumentsDir+"/escape.pdf") {
		t.Errorf("traversal segments survived in url %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, DocumentsDir, "escape.pdf")); err != nil {
		t.Errorf("sanitized file missing: %v", err)
	}
}
