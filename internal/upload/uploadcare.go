package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/hyjain/hyjain-api/internal/outbound"
)

// DefaultUploadcareURL is Uploadcare's direct upload endpoint.
const DefaultUploadcareURL = "https://upload.uploadcare.com/base/"

const maxProviderBody = 64 << 10

// Uploadcare uploads files through Uploadcare's direct upload API.
type Uploadcare struct {
	httpClient *http.Client
	uploadURL  string
	publicKey  string
}

// NewUploadcare creates an Uploadcare client. A nil client uses the outbound defaults.
func NewUploadcare(uploadURL, publicKey string, client *http.Client) *Uploadcare {
	if uploadURL == "" {
		uploadURL = DefaultUploadcareURL
	}
	if client == nil {
		client = outbound.NewHTTPClient(0)
	}
	return &Uploadcare{httpClient: client, uploadURL: uploadURL, publicKey: publicKey}
}

type uploadcareResponse struct {
	File string `json:"file"`
}

// UploadFile sends data as a multipart upload and returns the stored file's UUID.
func (u *Uploadcare) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	body, contentType, err := u.buildForm(filename, data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", outbound.UserAgent)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploadcare request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return "", fmt.Errorf("failed to read uploadcare response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{
			Provider:   "uploadcare",
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
		}
	}

	var out uploadcareResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to decode uploadcare response: %w", err)
	}
	if out.File == "" {
		return "", ErrMissingFileID
	}

	return out.File, nil
}

func (u *Uploadcare) buildForm(filename string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("UPLOADCARE_PUB_KEY", u.publicKey); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.WriteField("UPLOADCARE_STORE", "auto"); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to write form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
