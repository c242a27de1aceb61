package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".webm": {},
}

const (
	maxPhotoSize = 5 << 20
	maxVideoSize = 50 << 20
)

// validateUploadExt checks the extension against the allowed set for kind
// ("photo" or "video") and returns it lowercased.
func validateUploadExt(filename, kind string) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if extension == "" {
		return "", fmt.Errorf("file extension is required")
	}
	switch kind {
	case "photo":
		if _, ok := photoExtensions[extension]; !ok {
			return "", fmt.Errorf("unsupported photo type: %s", extension)
		}
	case "video":
		if _, ok := videoExtensions[extension]; !ok {
			return "", fmt.Errorf("unsupported video type: %s", extension)
		}
	default:
		return "", fmt.Errorf("unknown upload kind: %s", kind)
	}
	return extension, nil
}

func maxUploadSize(kind string) int64 {
	if kind == "video" {
		return maxVideoSize
	}
	return maxPhotoSize
}

// saveUpload writes the file under root/uploads/<subdir> and returns the
// relative path stored in the document.
func saveUpload(root string, file *multipart.FileHeader, kind, subdir string) (string, error) {
	extension, err := validateUploadExt(file.Filename, kind)
	if err != nil {
		return "", err
	}
	if file.Size > maxUploadSize(kind) {
		return "", fmt.Errorf("%s file too large", kind)
	}

	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(root, "uploads", subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)
	log.Printf("[UPLOAD] saveUpload: filename=%s ext=%s fullPath=%s", filename, extension, fullPath)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", subdir, filename)), nil
}

// safeDeleteUpload removes a previously stored upload. Only paths under
// uploads/ inside root are accepted.
func safeDeleteUpload(root, relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")

	if !strings.HasPrefix(cleanRel, "uploads/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	cleanBase := filepath.Clean(root)
	targetPath := filepath.Join(cleanBase, filepath.FromSlash(cleanRel))
	cleanTarget := filepath.Clean(targetPath)
	if cleanTarget != cleanBase && !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", relPath)
	}

	if err := os.Remove(cleanTarget); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
