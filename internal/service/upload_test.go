package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hyjain/hyjain-api/internal/metrics"
)

type fakeImageHost struct {
	url string
	err error
}

func (f *fakeImageHost) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return f.url, f.err
}

type fakeFileHost struct {
	id  string
	err error
}

func (f *fakeFileHost) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	return f.id, f.err
}

func TestUploadService_RecordsOutcomes(t *testing.T) {
	recorder := metrics.NewInMemory()
	svc := NewUploadService(
		&fakeImageHost{url: "https://res.cloudinary.com/demo/a.png"},
		&fakeFileHost{err: errors.New("403")},
		recorder,
	)

	url, err := svc.UploadImage(context.Background(), "a.png", strings.NewReader("x"))
	if err != nil || url != "https://res.cloudinary.com/demo/a.png" {
		t.Fatalf("UploadImage = %q, %v", url, err)
	}
	if _, err := svc.UploadFile(context.Background(), "a.pdf", []byte("x")); err == nil {
		t.Fatal("expected file upload error")
	}
	svc.RejectMissing("image")

	snap := recorder.Snapshot().Uploads
	if snap["image/"+metrics.StatusSuccess] != 1 ||
		snap["file/"+metrics.StatusError] != 1 ||
		snap["image/"+metrics.StatusRejected] != 1 {
		t.Errorf("unexpected counters %v", snap)
	}
}
