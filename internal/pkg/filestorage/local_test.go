package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/notes", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestSaveFileKeepsExtension(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	saved, err := storage.SaveFile(multipartFileHeader(t, "week5-notes.pdf", []byte("pdf-bytes")))
	require.NoError(t, err)
	assert.Equal(t, ".pdf", filepath.Ext(saved))
	assert.NotEqual(t, "week5-notes.pdf", saved)

	data, err := os.ReadFile(filepath.Join(storage.basePath, saved))
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), data)
}

func TestSaveFileGeneratesUniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	first, err := storage.SaveFile(multipartFileHeader(t, "notes.pdf", []byte("a")))
	require.NoError(t, err)
	second, err := storage.SaveFile(multipartFileHeader(t, "notes.pdf", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteFileIsIdempotent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	saved, err := storage.SaveFile(multipartFileHeader(t, "notes.pdf", []byte("a")))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(saved))
	assert.NoFileExists(t, filepath.Join(storage.basePath, saved))

	// A second delete of the same file is not an error
	assert.NoError(t, storage.DeleteFile(saved))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestFileURL(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/uploads/9d3f.pdf", storage.FileURL("9d3f.pdf"))
	assert.Equal(t, "", storage.FileURL(""))
}
