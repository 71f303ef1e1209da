package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"samad-backend/internal/logger"
	"samad-backend/internal/utils"
)

// Saver writes uploaded images to disk under a single directory and hands
// back the public "/uploads/<name>" path. Filenames are regenerated so an
// uploaded name can never traverse or collide.
type Saver struct {
	dir      string
	maxBytes int64
	logger   *logger.Logger
}

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func NewSaver(dir string, maxBytes int64, log *logger.Logger) (*Saver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Saver{dir: dir, maxBytes: maxBytes, logger: log}, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *Saver) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file size cap.
func (s *Saver) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates and stores one uploaded image, returning its public path.
func (s *Saver) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", fmt.Errorf("file too large: max %d bytes", s.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	expectedMIME, ok := allowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q: only jpg, jpeg, png, gif and webp are allowed", ext)
	}

	if declared := header.Header.Get("Content-Type"); declared != "" && declared != expectedMIME {
		// .jpg/.jpeg both map to image/jpeg so a mismatch here is a real
		// type lie, not an alias.
		return "", fmt.Errorf("content type %q does not match extension %q", declared, ext)
	}

	name := utils.NewID() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxBytes+1)); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	s.logger.Info("UPLOADS", fmt.Sprintf("Stored %s (%d bytes) as %s", header.Filename, header.Size, name))
	return "/uploads/" + name, nil
}
