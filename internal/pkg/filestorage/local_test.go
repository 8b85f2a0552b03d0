package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestObjectName(t *testing.T) {
	first := ObjectName("lecture notes.pdf")
	second := ObjectName("lecture notes.pdf")

	assert.True(t, strings.HasSuffix(first, ".pdf"))
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, " ")

	noExt := ObjectName("README")
	assert.NotEmpty(t, noExt)
	assert.NotContains(t, noExt, ".")
}

func TestSaveFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	header := uploadedFile(t, "notes.pdf", "file body")
	stored, err := storage.SaveFile(header)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, "uploads"+string(os.PathSeparator)))

	physical := filepath.Join(dir, filepath.Base(stored))
	content, err := os.ReadFile(physical)
	require.NoError(t, err)
	assert.Equal(t, "file body", string(content))

	require.NoError(t, storage.DeleteFile(stored))
	_, err = os.Stat(physical)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveFileWithBaseURL(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	header := uploadedFile(t, "report.docx", "contents")
	stored, err := storage.SaveFileWithPath(header, "resources")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, "http://localhost:8080/uploads/resources/"))
	assert.True(t, strings.HasSuffix(stored, ".docx"))

	physical := filepath.Join(dir, "resources", filepath.Base(stored))
	_, err = os.Stat(physical)
	assert.NoError(t, err)
}

func TestSaveNilFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	stored, err := storage.SaveFile(nil)
	assert.NoError(t, err)
	assert.Empty(t, stored)
}

func TestDeleteFileToleratesMissing(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.NoError(t, storage.DeleteFile("uploads/never-existed.pdf"))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestGetFullPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "file.pdf"), storage.GetFullPath("http://localhost:8080/uploads/file.pdf"))
	assert.Equal(t, filepath.Join(dir, "file.pdf"), storage.GetFullPath("uploads/file.pdf"))
}
