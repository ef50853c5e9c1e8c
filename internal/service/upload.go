package service

import (
	"context"
	"io"

	"github.com/hyjain/hyjain-api/internal/metrics"
	"github.com/hyjain/hyjain-api/internal/upload"
)

// UploadService forwards uploads to the image and file hosts.
type UploadService struct {
	images  upload.ImageHost
	files   upload.FileHost
	metrics metrics.Recorder
}

// NewUploadService creates a new UploadService.
func NewUploadService(images upload.ImageHost, files upload.FileHost, recorder metrics.Recorder) *UploadService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UploadService{images: images, files: files, metrics: recorder}
}

// UploadImage returns the hosted HTTPS URL of the image.
func (s *UploadService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	url, err := s.images.UploadImage(ctx, filename, r)
	s.record("image", err)
	return url, err
}

// UploadFile returns the provider's id for the stored file.
func (s *UploadService) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	id, err := s.files.UploadFile(ctx, filename, data)
	s.record("file", err)
	return id, err
}

// RejectMissing records an upload request that carried no file.
func (s *UploadService) RejectMissing(target string) {
	s.metrics.IncUpload(target, metrics.StatusRejected)
}

func (s *UploadService) record(target string, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	s.metrics.IncUpload(target, status)
}
