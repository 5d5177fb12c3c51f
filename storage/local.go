package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LocalBlobStore keeps objects on the local filesystem and serves them
// through HMAC-signed, expiring download URLs.
type LocalBlobStore struct {
	Dir     string
	Secret  []byte
	BaseURL string // e.g. http://localhost:3000
}

func NewLocalBlobStore(dir, secret, baseURL string) *LocalBlobStore {
	return &LocalBlobStore{Dir: dir, Secret: []byte(secret), BaseURL: baseURL}
}

// Upload saves the uploaded file under a random name and returns its object path
func (s *LocalBlobStore) Upload(file *multipart.FileHeader, prefix string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(s.Dir, prefix)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	objectName := uuid.NewString() + ext
	path := filepath.Join(prefix, objectName)

	dst, err := os.Create(filepath.Join(s.Dir, path))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return path, nil
}

// Delete removes the object; a missing object is not an error
func (s *LocalBlobStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.Dir, path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SignedURL builds a download URL valid until now+expiry
func (s *LocalBlobStore) SignedURL(path string, expiry time.Duration) (string, error) {
	exp := time.Now().Add(expiry).Unix()
	sig := s.sign(path, exp)
	return fmt.Sprintf("%s/uploads/%s?exp=%d&sig=%s", s.BaseURL, path, exp, sig), nil
}

// VerifySignature checks the signature and expiry of a download request
func (s *LocalBlobStore) VerifySignature(path, expStr, sig string) bool {
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > exp {
		return false
	}
	return hmac.Equal([]byte(s.sign(path, exp)), []byte(sig))
}

// FilePath resolves an object path to its location on disk
func (s *LocalBlobStore) FilePath(path string) string {
	return filepath.Join(s.Dir, path)
}

func (s *LocalBlobStore) sign(path string, exp int64) string {
	mac := hmac.New(sha256.New, s.Secret)
	fmt.Fprintf(mac, "%s:%d", path, exp)
	return hex.EncodeToString(mac.Sum(nil))
}
