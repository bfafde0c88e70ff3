package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadHeader builds a real multipart.FileHeader the way Gin would hand it
// to us.
func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSaveStoresFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	meta, err := fs.Save(uploadHeader(t, "os-notes.PDF", "fake pdf body"))
	require.NoError(t, err)

	assert.Equal(t, "os-notes.PDF", meta.OriginalName)
	assert.Equal(t, "pdf", meta.Extension)
	assert.Equal(t, int64(len("fake pdf body")), meta.Size)
	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f]{12}\.pdf$`), meta.Filename)
	assert.Equal(t, filepath.Join(fs.Dir(), meta.Filename), meta.Filepath)

	body, err := os.ReadFile(meta.Filepath)
	require.NoError(t, err)
	assert.Equal(t, "fake pdf body", string(body))
}

func TestSaveRejectsDisallowedExtensions(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, filename := range []string{
		"malware.exe",
		"archive.zip",
		"notes.PDF.sh",
		"noextension",
		"image.Jpeg",
	} {
		t.Run(filename, func(t *testing.T) {
			_, err := fs.Save(uploadHeader(t, filename, "body"))
			assert.ErrorIs(t, err, ErrTypeNotAllowed)
			assert.True(t, IsRejectionError(err))
		})
	}
}

func TestSaveAcceptsAllowListCaseInsensitively(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, filename := range []string{
		"a.pdf", "b.DOC", "c.Docx", "d.ppt", "e.PPTX", "f.xls", "g.XLSX", "h.txt",
	} {
		t.Run(filename, func(t *testing.T) {
			meta, err := fs.Save(uploadHeader(t, filename, "body"))
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(filepath.Ext(filename)[1:]), meta.Extension)
		})
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	header := uploadHeader(t, "big.pdf", "body")
	header.Size = MaxFileSize + 1

	_, err = fs.Save(header)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.True(t, IsRejectionError(err))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		meta, err := fs.Save(uploadHeader(t, "same-name.txt", "body"))
		require.NoError(t, err)
		assert.False(t, seen[meta.Filename], "duplicate generated name %s", meta.Filename)
		seen[meta.Filename] = true
	}
}

func TestMimeTypeForExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"pdf", "application/pdf"},
		{".pdf", "application/pdf"},
		{"DOCX", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"txt", "text/plain"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"weird", "application/octet-stream"},
		{"", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MimeTypeForExtension(tt.ext), "ext %q", tt.ext)
	}
}
