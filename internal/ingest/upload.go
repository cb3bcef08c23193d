package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var errPayloadTooLarge = errors.New("payload exceeds maximum size")

type (
	// Upload describes an uploaded file as declared by the client. The
	// bytes are only read once Open is called.
	Upload struct {
		ContentType string
		Size        int64
		Open        func() (io.ReadCloser, error)
	}

	// UploadSource lazily produces the Upload for a request. The service
	// invokes it only after the requester has been authorized, so that
	// a forbidden request never causes the request body to be read.
	UploadSource func() (*Upload, error)

	// limitedReader is like io.LimitedReader, except that reading past the
	// limit yields errPayloadTooLarge rather than a silent EOF. This guards
	// against clients which understate the size of their upload.
	limitedReader struct {
		r         io.Reader
		remaining int64
	}
)

func newLimitedReader(r io.Reader, limit int64) *limitedReader {
	return &limitedReader{r: r, remaining: limit}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, errPayloadTooLarge
	}

	// Allow one byte past the limit through so that we can tell the
	// difference between a payload of exactly the limit and one beyond it.
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}

	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, errPayloadTooLarge
	}

	return n, err
}

// extensionForContentType returns the file extension for a content
// type, e.g. 'video/mp4' -> 'mp4', 'image/jpeg' -> 'jpeg'.
func extensionForContentType(contentType string) (string, error) {
	_, subtype, ok := strings.Cut(contentType, "/")
	if !ok || subtype == "" {
		return "", fmt.Errorf("%w: content type '%s' has no subtype", ErrInvalidInput, contentType)
	}

	return subtype, nil
}
