package handlers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateUploadExt(t *testing.T) {
	cases := []struct {
		filename string
		kind     string
		wantErr  bool
	}{
		{"horse.jpg", "photo", false},
		{"horse.JPG", "photo", false},
		{"horse.webp", "photo", false},
		{"horse.mp4", "photo", true},
		{"clip.mp4", "video", false},
		{"clip.mov", "video", false},
		{"clip.png", "video", true},
		{"noext", "photo", true},
		{"horse.jpg", "document", true},
	}
	for _, tc := range cases {
		_, err := validateUploadExt(tc.filename, tc.kind)
		if (err != nil) != tc.wantErr {
			t.Fatalf("validateUploadExt(%q, %q) error = %v, wantErr %v", tc.filename, tc.kind, err, tc.wantErr)
		}
	}
}

func TestSafeDeleteUploadRefusesOutsideUploads(t *testing.T) {
	root := t.TempDir()

	if err := safeDeleteUpload(root, "secrets/key.pem"); err == nil {
		t.Fatal("expected refusal for non-upload path")
	}
	if err := safeDeleteUpload(root, "uploads/../secrets/key.pem"); err == nil {
		t.Fatal("expected refusal for traversal path")
	}
}

func TestSafeDeleteUploadRemovesFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads", "riders")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(dir, "photo.jpg")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := safeDeleteUpload(root, "uploads/riders/photo.jpg"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("file still exists after delete")
	}

	// Deleting a missing file is not an error.
	if err := safeDeleteUpload(root, "uploads/riders/photo.jpg"); err != nil {
		t.Fatalf("second delete returned error: %v", err)
	}
}
