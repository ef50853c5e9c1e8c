package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/hyjain/hyjain-api/internal/handler/dto"
	"github.com/hyjain/hyjain-api/internal/middleware"
	"github.com/hyjain/hyjain-api/internal/service"
)

// defaultMultipartMemory is how much of a multipart body is held in memory
// before parts spill to temporary files.
const defaultMultipartMemory = 8 << 20

// UploadHandler serves the image and file upload routes.
type UploadHandler struct {
	svc       *service.UploadService
	logger    *slog.Logger
	maxMemory int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{svc: svc, logger: logger, maxMemory: defaultMultipartMemory}
}

// UploadImage handles POST /api/upload-image with a multipart field "image".
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r, "image", "No image file uploaded.")
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.svc.UploadImage(r.Context(), header.Filename, file)
	if err != nil {
		middleware.Log(r.Context(), h.logger).Error("image_upload_failed",
			"filename", header.Filename,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Image upload failed: "+err.Error())
		return
	}

	middleware.Log(r.Context(), h.logger).Info("image_uploaded", "size", header.Size)
	writeJSON(w, http.StatusOK, dto.ImageUploadResponse{ImageURL: url})
}

// UploadFile handles POST /api/upload-file with a multipart field "file".
// The file is buffered in memory before it is forwarded.
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, ok := h.formFile(w, r, "file", "No file was uploaded.")
	if !ok {
		return
	}
	defer file.Close()

	log := middleware.Log(r.Context(), h.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("file_read_failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "File upload to Uploadcare failed.")
		return
	}

	id, err := h.svc.UploadFile(r.Context(), header.Filename, data)
	if err != nil {
		log.Error("file_upload_failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "File upload to Uploadcare failed.")
		return
	}

	log.Info("file_uploaded", "file_uuid", id, "size", len(data))
	writeJSON(w, http.StatusOK, dto.FileUploadResponse{FileUUID: id})
}

// formFile extracts one multipart file. It writes the error response itself
// and reports false when the request carries no usable file. The server
// removes spilled temporary files once the handler returns.
func (h *UploadHandler) formFile(w http.ResponseWriter, r *http.Request, field, missing string) (multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large.")
			return nil, nil, false
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			middleware.Log(r.Context(), h.logger).Warn("multipart_parse_failed", "error", err)
		}
		h.svc.RejectMissing(field)
		writeError(w, http.StatusBadRequest, missing)
		return nil, nil, false
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		h.svc.RejectMissing(field)
		writeError(w, http.StatusBadRequest, missing)
		return nil, nil, false
	}
	return file, header, true
}
