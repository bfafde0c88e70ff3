package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/batchbinder/content-service/internal/models"
)

// MaxFileSize is the upload ceiling.
const MaxFileSize = 50 * 1024 * 1024

// allowedExtensions is the upload allow-list, checked case-insensitively.
var allowedExtensions = []string{"pdf", "doc", "docx", "ppt", "pptx", "xls", "xlsx", "txt"}

var mimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"txt":  "text/plain",
}

// Rejection errors carry the client-facing message directly.
var (
	ErrFileTooLarge = fmt.Errorf("File size too large. Maximum size is %dMB", MaxFileSize/(1024*1024))
	ErrTypeNotAllowed = fmt.Errorf("File type not allowed. Allowed types: %s",
		strings.Join(allowedExtensions, ", "))
)

// IsRejectionError reports whether err is an upload validation failure (as
// opposed to an I/O problem).
func IsRejectionError(err error) bool {
	return errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrTypeNotAllowed)
}

// FileStore writes uploads into a fixed directory under collision-resistant
// names and answers MIME lookups for downloads.
type FileStore struct {
	dir string
}

// NewFileStore ensures the upload directory exists.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the upload directory.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Save validates and stores one uploaded file, returning the metadata that
// gets embedded in the content record. Names follow
// {unixtime}_{random}.{ext} so discoverability is only via the database.
func (fs *FileStore) Save(header *multipart.FileHeader) (*models.FileMeta, error) {
	if header.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !extensionAllowed(ext) {
		return nil, ErrTypeNotAllowed
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	filename := fmt.Sprintf("%d_%s.%s", time.Now().Unix(), randomSuffix(), ext)
	path := filepath.Join(fs.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &models.FileMeta{
		Filename:     filename,
		Filepath:     path,
		OriginalName: header.Filename,
		Size:         size,
		Extension:    ext,
	}, nil
}

func extensionAllowed(ext string) bool {
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// MimeTypeForExtension maps a file extension to the Content-Type served on
// download; unknown extensions fall back to a generic byte stream.
func MimeTypeForExtension(ext string) string {
	if mime, ok := mimeTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return mime
	}
	return "application/octet-stream"
}
