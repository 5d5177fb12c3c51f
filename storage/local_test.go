package storage

import (
	"bytes"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalBlobStore {
	return NewLocalBlobStore(t.TempDir(), "test-secret", "http://localhost:3000")
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["file"][0]
}

func TestUploadAndDelete(t *testing.T) {
	store := newTestStore(t)

	path, err := store.Upload(makeFileHeader(t, "essay.pdf", "hello"), "submissions")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "submissions"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	data, err := os.ReadFile(store.FilePath(path))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(path))
	_, err = os.Stat(store.FilePath(path))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(path))
}

func TestUploadKeepsContentPerObject(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Upload(makeFileHeader(t, "a.txt", "one"), "content")
	require.NoError(t, err)
	second, err := store.Upload(makeFileHeader(t, "a.txt", "two"), "content")
	require.NoError(t, err)

	// Random object names: same filename never collides
	assert.NotEqual(t, first, second)
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t)

	signed, err := store.SignedURL("submissions/essay.pdf", time.Hour)
	require.NoError(t, err)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/submissions/essay.pdf", parsed.Path)

	exp := parsed.Query().Get("exp")
	sig := parsed.Query().Get("sig")
	assert.True(t, store.VerifySignature("submissions/essay.pdf", exp, sig))

	// Signature is bound to the path
	assert.False(t, store.VerifySignature("submissions/other.pdf", exp, sig))

	// Tampered expiry breaks the signature
	assert.False(t, store.VerifySignature("submissions/essay.pdf", "9999999999", sig))

	// A different secret rejects the signature
	other := NewLocalBlobStore(store.Dir, "other-secret", store.BaseURL)
	assert.False(t, other.VerifySignature("submissions/essay.pdf", exp, sig))
}

func TestSignedURLExpiry(t *testing.T) {
	store := newTestStore(t)

	exp := time.Now().Add(-time.Minute).Unix()
	sig := store.sign("submissions/essay.pdf", exp)
	assert.False(t, store.VerifySignature("submissions/essay.pdf", strconv.FormatInt(exp, 10), sig))
}

func TestVerifySignatureBadExp(t *testing.T) {
	store := newTestStore(t)
	assert.False(t, store.VerifySignature("submissions/essay.pdf", "not-a-number", "deadbeef"))
}
