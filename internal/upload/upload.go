// Package upload forwards user-supplied files to the hosting providers.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrMissingFileID is returned when the file host answers 2xx without a file id.
var ErrMissingFileID = errors.New("upload response has no file id")

// ImageHost stores product images and returns their public HTTPS URL.
type ImageHost interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// FileHost stores arbitrary files and returns the provider's file id.
type FileHost interface {
	UploadFile(ctx context.Context, filename string, data []byte) (string, error)
}

// ProviderError is a rejection reported by a hosting provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s status %d)", e.Message, e.Provider, e.StatusCode)
}
