// Package storage keeps uploaded episode images on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrNotImage    = errors.New("file must be an image")
	ErrFileTooBig  = errors.New("file exceeds the upload size limit")
	ErrEmptyUpload = errors.New("uploaded file is empty")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore writes images under Dir and hands out URLs under URLPrefix.
type ImageStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

func NewImageStore(dir, urlPrefix string, maxBytes int64) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &ImageStore{dir: dir, urlPrefix: urlPrefix, maxBytes: maxBytes}, nil
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Save sniffs the content type from the data itself, rejects anything that
// is not an image, and stores the file under a fresh uuid name. It returns
// the public URL.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if n == 0 {
		return "", ErrEmptyUpload
	}
	head = head[:n]

	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		return "", ErrNotImage
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(s.dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}

	written, err := f.Write(head)
	if err == nil {
		var rest int64
		// one byte past the limit tells us the upload is too big
		rest, err = io.Copy(f, io.LimitReader(r, s.maxBytes-int64(written)+1))
		if err == nil && int64(written)+rest > s.maxBytes {
			err = ErrFileTooBig
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return "", err
	}

	return path.Join(s.urlPrefix, name), nil
}
